package timesheeterrors

import (
	"fmt"
	"net/http"

	"go-timesheet/internal/shared/apperror"
)

var (
	ErrInvalidWeek = apperror.New(
		apperror.CodeInvalidInput,
		"invalid year or week number",
		http.StatusBadRequest,
	)
	ErrEmptySubmit = apperror.New(
		apperror.CodeInvalidInput,
		"cannot submit an empty timesheet, please enter your hours first",
		http.StatusBadRequest,
	)
	ErrProjectNotBookable = apperror.New(
		apperror.CodeInvalidInput,
		"project is not active or you are not a member",
		http.StatusBadRequest,
	)
)

// CellErrors aggregates per-cell validation failures so the grid can
// mark every offending field in one round trip.
func CellErrors(details []string) *apperror.AppError {
	err := apperror.New(
		apperror.CodeInvalidInput,
		"timesheet contains invalid entries",
		http.StatusBadRequest,
	)
	err.Details = details
	return err
}

// IncompleteWeek mirrors the submission banner, spelling out the
// shortfall against the expected weekly total.
func IncompleteWeek(entered, expected float64) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf(
			"timesheet incomplete, you have entered %g hours but need %g hours for a full week, please add %g more hours before submitting",
			entered, expected, expected-entered,
		),
		http.StatusBadRequest,
	)
}
