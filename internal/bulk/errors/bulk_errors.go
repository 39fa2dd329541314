package bulkerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"file is required",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"file is too large",
		http.StatusRequestEntityTooLarge,
	)
	ErrUnsupportedFormat = apperror.New(
		apperror.CodeInvalidInput,
		"unsupported file format, expected .csv, .xlsx or .xls",
		http.StatusBadRequest,
	)
	ErrUnreadableFile = apperror.New(
		apperror.CodeInvalidInput,
		"file could not be read",
		http.StatusBadRequest,
	)
	ErrEmptyFile = apperror.New(
		apperror.CodeInvalidInput,
		"file has no header row",
		http.StatusBadRequest,
	)
	ErrMissingColumns = apperror.New(
		apperror.CodeInvalidInput,
		"file is missing required columns",
		http.StatusBadRequest,
	)
	ErrInvalidRow = apperror.New(
		apperror.CodeInvalidInput,
		"file has an invalid row",
		http.StatusBadRequest,
	)
	ErrUnknownTemplate = apperror.New(
		apperror.CodeNotFound,
		"unknown template, expected employees.csv or payroll.csv",
		http.StatusNotFound,
	)
	ErrUnknownExport = apperror.New(
		apperror.CodeNotFound,
		"unknown export, expected employees.csv, payroll.csv or payroll.xlsx",
		http.StatusNotFound,
	)
)
