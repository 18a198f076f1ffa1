package leavetypeerrors

import (
	"net/http"

	"go-timesheet/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrCodeTaken = apperror.New(
		apperror.CodeConflict,
		"leave type code already in use",
		http.StatusConflict,
	)
)
