package companyerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company profile not found",
		http.StatusNotFound,
	)

	ErrEmptyUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"At least one of name, address or tin is required",
		http.StatusBadRequest,
	)
)
