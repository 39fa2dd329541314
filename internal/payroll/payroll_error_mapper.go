package payroll

import (
	"errors"
	"strings"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniquePeriodConstraint = "uq_payroll_period"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniquePeriodConstraint {
			return payrollerrors.ErrPayrollConflict.WithCause(err)
		}
	}

	// sqlite reports the columns instead of the index name
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique constraint failed: payroll.") ||
		(strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniquePeriodConstraint)) {
		return payrollerrors.ErrPayrollConflict.WithCause(err)
	}

	return err
}
