package leaveerrors

import (
	"fmt"
	"net/http"

	"go-timesheet/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"end date must be on or after start date",
		http.StatusBadRequest,
	)
	ErrStartInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start date cannot be before today",
		http.StatusBadRequest,
	)
	ErrNoBusinessDays = apperror.New(
		apperror.CodeInvalidInput,
		"the selected range contains no business days",
		http.StatusBadRequest,
	)
	ErrOverlap = apperror.New(
		apperror.CodeConflict,
		"you already have a leave request overlapping these dates",
		http.StatusConflict,
	)
	ErrNotPending = apperror.New(
		apperror.CodeConflict,
		"only pending requests can be changed",
		http.StatusConflict,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the request owner may cancel it",
		http.StatusForbidden,
	)
	ErrNotDirectManager = apperror.New(
		apperror.CodeForbidden,
		"only the employee's direct manager may decide this request",
		http.StatusForbidden,
	)
)

// InsufficientBalance reports the shortfall the way the leave form
// shows it, with the remaining days spelled out.
func InsufficientBalance(remaining float64) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("insufficient leave balance, you have %g days remaining", remaining),
		http.StatusBadRequest,
	)
}
