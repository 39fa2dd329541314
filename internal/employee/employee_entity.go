package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RateTypeMonthly = "monthly"
	RateTypeDaily   = "daily"
	RateTypeHourly  = "hourly"
)

type Employee struct {
	EmployeeID string          `gorm:"column:emp_id;type:varchar(64);primaryKey"`
	FullName   string          `gorm:"column:full_name;type:varchar(255);not null"`
	Position   string          `gorm:"column:position;type:varchar(255)"`
	Department string          `gorm:"column:department;type:varchar(255)"`
	RateType   string          `gorm:"column:rate_type;type:varchar(16)"`
	BaseRate   decimal.Decimal `gorm:"column:base_rate;type:numeric(14,2);not null;default:0"`
	CreatedAt  time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func validRateType(v string) bool {
	switch v {
	case "", RateTypeMonthly, RateTypeDaily, RateTypeHourly:
		return true
	}
	return false
}
