package auth

import (
	"time"
)

// Credential is a login. Employees log in with their emp_id as username; the
// admin login has no employee.
type Credential struct {
	Username   string  `gorm:"type:varchar(64);primaryKey"`
	Role       string  `gorm:"type:varchar(16);not null;index"`
	Salt       string  `gorm:"type:varchar(64);not null;default:''"`
	PwdHash    string  `gorm:"type:varchar(255);not null"`
	EmployeeID *string `gorm:"column:emp_id;type:varchar(64);index"`
	CreatedAt  time.Time
}

func (Credential) TableName() string {
	return "users"
}

// AuthEmployee is the read-only view of employees used to check that a login
// points at a real employee.
type AuthEmployee struct {
	EmployeeID string `gorm:"column:emp_id;primaryKey"`
	FullName   string `gorm:"column:full_name"`
}

func (AuthEmployee) TableName() string {
	return "employees"
}
