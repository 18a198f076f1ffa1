package entitlementerrors

import (
	"net/http"

	"go-timesheet/internal/shared/apperror"
)

var (
	ErrEntitlementNotFound = apperror.New(
		apperror.CodeNotFound,
		"entitlement not found",
		http.StatusNotFound,
	)
	ErrNoEntitlement = apperror.New(
		apperror.CodeInvalidInput,
		"no entitlement for this leave type and year",
		http.StatusBadRequest,
	)
	ErrDuplicateGrant = apperror.New(
		apperror.CodeConflict,
		"entitlement already exists for this user, leave type and year",
		http.StatusConflict,
	)
)
