package company

import (
	"time"

	"go-payroll/internal/domain"
)

// profileID is the only row of company_profile.
const profileID = 1

type Company struct {
	ID        uint   `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"type:varchar(150);not null;default:''"`
	Address   string `gorm:"type:varchar(255);not null;default:''"`
	TIN       string `gorm:"column:tin;type:varchar(32);not null;default:''"`
	UpdatedAt time.Time
}

func (Company) TableName() string {
	return "company_profile"
}

func (c Company) Profile() domain.CompanyProfile {
	return domain.CompanyProfile{Name: c.Name, Address: c.Address, TIN: c.TIN}.Trimmed()
}
