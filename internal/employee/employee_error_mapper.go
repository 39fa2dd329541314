package employee

import (
	"errors"

	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgres SQLSTATEs an employee write can hit
const (
	pgNotNullViolation  = "23502"
	pgStringTruncation  = "22001"
	pgNumericOutOfRange = "22003"
)

// mapRepositoryError turns storage failures into employee errors. Bulk imports
// feed raw spreadsheet values here, so oversized cells must come back as 400s.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation:
			return employeeerrors.ErrMissingRequiredFields.
				WithDetails(map[string]any{"column": pgErr.ColumnName}).
				WithCause(err)
		case pgStringTruncation, pgNumericOutOfRange:
			return employeeerrors.ErrValueOutOfRange.WithCause(err)
		}
	}

	return err
}
