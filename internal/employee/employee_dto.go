package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type UpsertEmployeeRequest struct {
	EmployeeID string          `json:"emp_id" binding:"required,max=64"`
	FullName   string          `json:"full_name" binding:"required,max=255"`
	Position   string          `json:"position" binding:"max=255"`
	Department string          `json:"department" binding:"max=255"`
	RateType   string          `json:"rate_type" binding:"omitempty,oneof=monthly daily hourly"`
	BaseRate   decimal.Decimal `json:"base_rate"`
}

// UpdateEmployeeRequest takes emp_id from the url; the body copy is optional.
type UpdateEmployeeRequest struct {
	EmployeeID string          `json:"emp_id"`
	FullName   string          `json:"full_name" binding:"required,max=255"`
	Position   string          `json:"position" binding:"max=255"`
	Department string          `json:"department" binding:"max=255"`
	RateType   string          `json:"rate_type" binding:"omitempty,oneof=monthly daily hourly"`
	BaseRate   decimal.Decimal `json:"base_rate"`
}

func (r UpdateEmployeeRequest) toUpsert(id string) UpsertEmployeeRequest {
	return UpsertEmployeeRequest{
		EmployeeID: id,
		FullName:   r.FullName,
		Position:   r.Position,
		Department: r.Department,
		RateType:   r.RateType,
		BaseRate:   r.BaseRate,
	}
}

type EmployeeResponse struct {
	EmployeeID string          `json:"emp_id"`
	FullName   string          `json:"full_name"`
	Position   string          `json:"position"`
	Department string          `json:"department"`
	RateType   string          `json:"rate_type"`
	BaseRate   decimal.Decimal `json:"base_rate"`
	CreatedAt  time.Time       `json:"created_at"`
}

// EmployeeOption is one entry of the employee picker on the payroll form.
type EmployeeOption struct {
	EmployeeID string `json:"emp_id"`
	FullName   string `json:"full_name"`
}

// DeleteResult reports what the cascade removed.
type DeleteResult struct {
	EmployeeID      string `json:"emp_id"`
	PayrollsDeleted int64  `json:"payrolls_deleted"`
	ArchivesDeleted int64  `json:"archives_deleted"`
	LoginsDeleted   int64  `json:"logins_deleted"`
}
