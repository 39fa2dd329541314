package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payroll is one pay period for one employee. (emp_id, period_start,
// period_end) is unique; bonus, undertime and late are nullable because not
// every deployment tracks them.
type Payroll struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	EmployeeID  string    `gorm:"column:emp_id;type:varchar(64);not null;uniqueIndex:uq_payroll_period,priority:1"`
	PeriodStart time.Time `gorm:"type:date;not null;uniqueIndex:uq_payroll_period,priority:2"`
	PeriodEnd   time.Time `gorm:"type:date;not null;uniqueIndex:uq_payroll_period,priority:3"`

	BasicPay    decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0"`
	OvertimePay decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0"`
	Allowances  decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0"`
	Bonus       decimal.NullDecimal `gorm:"type:numeric(14,2)"`

	SSS             decimal.Decimal     `gorm:"column:sss;type:numeric(14,2);not null;default:0"`
	PhilHealth      decimal.Decimal     `gorm:"column:philhealth;type:numeric(14,2);not null;default:0"`
	PagIBIG         decimal.Decimal     `gorm:"column:pagibig;type:numeric(14,2);not null;default:0"`
	Undertime       decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	Late            decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	OtherDeductions decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0"`
	Tax             decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0"`

	Notes     string `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time
}

func (Payroll) TableName() string {
	return "payroll"
}

// Amount returns a monetary field by column name; absent optionals are zero.
func (p Payroll) Amount(field string) decimal.Decimal {
	switch field {
	case FieldBasicPay:
		return p.BasicPay
	case FieldOvertimePay:
		return p.OvertimePay
	case FieldAllowances:
		return p.Allowances
	case FieldBonus:
		return ParseAmount(p.Bonus)
	case FieldSSS:
		return p.SSS
	case FieldPhilHealth:
		return p.PhilHealth
	case FieldPagIBIG:
		return p.PagIBIG
	case FieldUndertime:
		return ParseAmount(p.Undertime)
	case FieldLate:
		return ParseAmount(p.Late)
	case FieldOtherDeductions:
		return p.OtherDeductions
	case FieldTax:
		return p.Tax
	}
	return decimal.Zero
}

// Present reports whether a field carries a value. Required fields always do.
func (p Payroll) Present(field string) bool {
	switch field {
	case FieldBonus:
		return p.Bonus.Valid
	case FieldUndertime:
		return p.Undertime.Valid
	case FieldLate:
		return p.Late.Valid
	}
	_, ok := componentByField(field)
	return ok
}

// SetAmount writes a monetary field by column name. Setting an optional field
// marks it present.
func (p *Payroll) SetAmount(field string, v decimal.Decimal) {
	switch field {
	case FieldBasicPay:
		p.BasicPay = v
	case FieldOvertimePay:
		p.OvertimePay = v
	case FieldAllowances:
		p.Allowances = v
	case FieldBonus:
		p.Bonus = decimal.NewNullDecimal(v)
	case FieldSSS:
		p.SSS = v
	case FieldPhilHealth:
		p.PhilHealth = v
	case FieldPagIBIG:
		p.PagIBIG = v
	case FieldUndertime:
		p.Undertime = decimal.NewNullDecimal(v)
	case FieldLate:
		p.Late = decimal.NewNullDecimal(v)
	case FieldOtherDeductions:
		p.OtherDeductions = v
	case FieldTax:
		p.Tax = v
	}
}

// PayrollEmployee is the slice of the employees table a payslip needs.
type PayrollEmployee struct {
	EmployeeID string `gorm:"column:emp_id;primaryKey"`
	FullName   string `gorm:"column:full_name"`
	Position   string `gorm:"column:position"`
	Department string `gorm:"column:department"`
}

func (PayrollEmployee) TableName() string {
	return "employees"
}

// PayslipArchive keeps the rendered PDF of a released payslip.
type PayslipArchive struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	PayrollID   uint      `gorm:"not null;uniqueIndex"`
	EmployeeID  string    `gorm:"column:emp_id;type:varchar(64);not null;index"`
	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`
	Filename    string    `gorm:"type:varchar(255);not null"`
	Content     []byte    `gorm:"not null"`
	GeneratedAt time.Time `gorm:"not null"`
}

func (PayslipArchive) TableName() string {
	return "payslip_archives"
}
