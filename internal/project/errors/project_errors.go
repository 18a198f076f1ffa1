package projecterrors

import (
	"net/http"

	"go-timesheet/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"project not found",
		http.StatusNotFound,
	)
	ErrCodeTaken = apperror.New(
		apperror.CodeConflict,
		"project code already in use",
		http.StatusConflict,
	)
	ErrNotAMember = apperror.New(
		apperror.CodeInvalidInput,
		"user is not a member of this project",
		http.StatusBadRequest,
	)
)
