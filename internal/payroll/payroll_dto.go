package payroll

import (
	"github.com/shopspring/decimal"
)

// UpsertPayrollRequest carries amounts as loose JSON values; they go through
// ParseAmount, so blanks and junk become zero.
type UpsertPayrollRequest struct {
	EmployeeID      string `json:"emp_id" binding:"required"`
	PeriodStart     string `json:"period_start" binding:"required"`
	PeriodEnd       string `json:"period_end" binding:"required"`
	BasicPay        any    `json:"basic_pay"`
	OvertimePay     any    `json:"overtime_pay"`
	Allowances      any    `json:"allowances"`
	Bonus           any    `json:"bonus"`
	SSS             any    `json:"sss"`
	PhilHealth      any    `json:"philhealth"`
	PagIBIG         any    `json:"pagibig"`
	Undertime       any    `json:"undertime"`
	Late            any    `json:"late"`
	OtherDeductions any    `json:"other_deductions"`
	Tax             any    `json:"tax"`
	Notes           string `json:"notes"`
}

func (r UpsertPayrollRequest) Row() map[string]any {
	return map[string]any{
		"emp_id":             r.EmployeeID,
		"period_start":       r.PeriodStart,
		"period_end":         r.PeriodEnd,
		FieldBasicPay:        r.BasicPay,
		FieldOvertimePay:     r.OvertimePay,
		FieldAllowances:      r.Allowances,
		FieldBonus:           r.Bonus,
		FieldSSS:             r.SSS,
		FieldPhilHealth:      r.PhilHealth,
		FieldPagIBIG:         r.PagIBIG,
		FieldUndertime:       r.Undertime,
		FieldLate:            r.Late,
		FieldOtherDeductions: r.OtherDeductions,
		FieldTax:             r.Tax,
		"notes":              r.Notes,
	}
}

type ListPayrollsFilter struct {
	EmployeeID string `form:"emp_id"`
}

type PayrollKeyRequest struct {
	EmployeeID  string `form:"emp_id" binding:"required"`
	PeriodStart string `form:"period_start" binding:"required"`
	PeriodEnd   string `form:"period_end" binding:"required"`
}

type ReleasePayslipsRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	EmployeeID  string `json:"emp_id"`
}

type PayrollResponse struct {
	ID              uint                `json:"id"`
	EmployeeID      string              `json:"emp_id"`
	PeriodStart     string              `json:"period_start"`
	PeriodEnd       string              `json:"period_end"`
	BasicPay        decimal.Decimal     `json:"basic_pay"`
	OvertimePay     decimal.Decimal     `json:"overtime_pay"`
	Allowances      decimal.Decimal     `json:"allowances"`
	Bonus           decimal.NullDecimal `json:"bonus"`
	SSS             decimal.Decimal     `json:"sss"`
	PhilHealth      decimal.Decimal     `json:"philhealth"`
	PagIBIG         decimal.Decimal     `json:"pagibig"`
	Undertime       decimal.NullDecimal `json:"undertime"`
	Late            decimal.NullDecimal `json:"late"`
	OtherDeductions decimal.Decimal     `json:"other_deductions"`
	Tax             decimal.Decimal     `json:"tax"`
	Notes           string              `json:"notes"`
	CreatedAt       string              `json:"created_at"`
}

type SummaryResponse struct {
	PayrollID       uint            `json:"payroll_id"`
	EmployeeID      string          `json:"emp_id"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	Gross           decimal.Decimal `json:"gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Net             decimal.Decimal `json:"net"`
	Display         SummaryDisplay  `json:"display"`
	NegativeNet     bool            `json:"negative_net"`
}

type SummaryDisplay struct {
	Gross           string `json:"gross" yaml:"gross"`
	TotalDeductions string `json:"total_deductions" yaml:"total_deductions"`
	Net             string `json:"net" yaml:"net"`
}

type MergeResult struct {
	Policy  MergePolicy `json:"policy"`
	Groups  int         `json:"groups"`
	Removed int         `json:"removed"`
}

type ImportResult struct {
	Received   int `json:"received"`
	Superseded int `json:"superseded"`
	Upserted   int `json:"upserted"`
}

type ReleaseResponse struct {
	Queued int `json:"queued"`
}
