package employeeerrors

import (
	"net/http"

	"dayflow/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee record not found",
		http.StatusNotFound,
	)
	ErrAlreadyProvisioned = apperror.New(
		apperror.CodeConflict,
		"user already has an employee record",
		http.StatusConflict,
	)
	ErrInvalidDateOfJoin = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date_of_join format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateOfBirth = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date_of_birth format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
)
