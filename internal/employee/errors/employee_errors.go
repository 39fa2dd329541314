package employeeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"emp_id is required",
		http.StatusBadRequest,
	)
	ErrEmployeeIDMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"emp_id in body does not match the url",
		http.StatusBadRequest,
	)
	ErrInvalidRateType = apperror.New(
		apperror.CodeInvalidInput,
		"rate_type must be monthly, daily or hourly",
		http.StatusBadRequest,
	)
	ErrNegativeBaseRate = apperror.New(
		apperror.CodeInvalidInput,
		"base_rate must not be negative",
		http.StatusBadRequest,
	)
	ErrValueOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"A value is too long or too large for its column",
		http.StatusBadRequest,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"Missing required fields",
		http.StatusBadRequest,
	)
)
