package employee

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindOptions(ctx context.Context) ([]EmployeeOption, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeletePayrolls(ctx context.Context, id string) (int64, error)
	DeleteArchives(ctx context.Context, id string) (int64, error)
	DeleteLogins(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.BindTx(r.db, r.tx).WithContext(ctx)
}

// Upsert keeps created_at of an existing row.
func (r *repository) Upsert(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "emp_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "position", "department", "rate_type", "base_rate"}),
		}).
		Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Order("full_name ASC").
		Order("emp_id ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptions(ctx context.Context) ([]EmployeeOption, error) {
	var opts []EmployeeOption
	err := r.conn(ctx).
		Model(&Employee{}).
		Select("emp_id", "full_name").
		Order("full_name ASC").
		Order("emp_id ASC").
		Scan(&opts).Error
	return opts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "emp_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.conn(ctx).Delete(&Employee{}, "emp_id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) DeletePayrolls(ctx context.Context, id string) (int64, error) {
	res := r.conn(ctx).Exec("DELETE FROM payroll WHERE emp_id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteArchives(ctx context.Context, id string) (int64, error) {
	res := r.conn(ctx).Exec("DELETE FROM payslip_archives WHERE emp_id = ?", id)
	return res.RowsAffected, res.Error
}

// DeleteLogins removes credentials bound to the employee, including a login
// whose username is the emp_id.
func (r *repository) DeleteLogins(ctx context.Context, id string) (int64, error) {
	res := r.conn(ctx).Exec("DELETE FROM users WHERE emp_id = ? OR (username = ? AND role <> ?)", id, id, "admin")
	return res.RowsAffected, res.Error
}
