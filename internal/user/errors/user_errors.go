package usererrors

import (
	"net/http"

	"go-timesheet/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"manager not found",
		http.StatusBadRequest,
	)
	ErrSelfManager = apperror.New(
		apperror.CodeInvalidInput,
		"a user cannot be their own manager",
		http.StatusBadRequest,
	)
	ErrManagerCycle = apperror.New(
		apperror.CodeInvalidInput,
		"assignment would create a cycle in the reporting structure",
		http.StatusBadRequest,
	)
	ErrUsernameTaken = apperror.New(
		apperror.CodeConflict,
		"username or employee number already in use",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role",
		http.StatusBadRequest,
	)
)
