package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var upsertColumns = []string{
	"basic_pay", "overtime_pay", "allowances", "bonus",
	"sss", "philhealth", "pagibig", "undertime", "late",
	"other_deductions", "tax", "notes", "created_at",
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]Payroll, error)
	FindByEmployee(ctx context.Context, empID string) ([]Payroll, error)
	FindByID(ctx context.Context, id uint) (*Payroll, error)
	FindByKey(ctx context.Context, key Key) (*Payroll, error)
	FindByPeriod(ctx context.Context, start, end time.Time) ([]Payroll, error)
	Upsert(ctx context.Context, payroll *Payroll) error
	DeleteByID(ctx context.Context, id uint) (int64, error)
	DeleteByKey(ctx context.Context, key Key) (int64, error)
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	ReplaceGroup(ctx context.Context, ids []uint, replacement *Payroll) error
	FindEmployee(ctx context.Context, empID string) (*PayrollEmployee, error)
	SaveArchive(ctx context.Context, archive *PayslipArchive) error
	FindArchive(ctx context.Context, payrollID uint) (*PayslipArchive, error)
	DeleteArchives(ctx context.Context, payrollIDs []uint) error
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

func (r *repository) FindAll(ctx context.Context) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.conn(ctx).
		Order("period_start DESC").
		Order("emp_id ASC").
		Order("id ASC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByEmployee(ctx context.Context, empID string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.conn(ctx).
		Where("emp_id = ?", empID).
		Order("period_start DESC").
		Order("id ASC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Payroll, error) {
	var payroll Payroll
	err := r.conn(ctx).First(&payroll, "id = ?", id).Error
	return &payroll, err
}

func (r *repository) FindByKey(ctx context.Context, key Key) (*Payroll, error) {
	var payroll Payroll
	err := r.conn(ctx).
		Where("emp_id = ? AND period_start = ? AND period_end = ?", key.EmployeeID, key.PeriodStart, key.PeriodEnd).
		Order("id DESC").
		First(&payroll).Error
	return &payroll, err
}

func (r *repository) FindByPeriod(ctx context.Context, start, end time.Time) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.conn(ctx).
		Where("period_start = ? AND period_end = ?", DateOnly(start), DateOnly(end)).
		Order("emp_id ASC").
		Find(&payrolls).Error
	return payrolls, err
}

// Upsert inserts the row or, when its period already exists, overwrites the
// amounts, notes and created_at of the existing row.
func (r *repository) Upsert(ctx context.Context, payroll *Payroll) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "emp_id"},
				{Name: "period_start"},
				{Name: "period_end"},
			},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(payroll).Error
}

func (r *repository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	res := r.conn(ctx).Delete(&Payroll{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteByKey(ctx context.Context, key Key) (int64, error) {
	res := r.conn(ctx).
		Where("emp_id = ? AND period_start = ? AND period_end = ?", key.EmployeeID, key.PeriodStart, key.PeriodEnd).
		Delete(&Payroll{})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.conn(ctx).Where("id IN ?", ids).Delete(&Payroll{})
	return res.RowsAffected, res.Error
}

// ReplaceGroup deletes the rows in ids and inserts replacement in their
// place. Run it inside a transaction.
func (r *repository) ReplaceGroup(ctx context.Context, ids []uint, replacement *Payroll) error {
	if _, err := r.DeleteByIDs(ctx, ids); err != nil {
		return err
	}
	replacement.ID = 0
	return r.conn(ctx).Create(replacement).Error
}

func (r *repository) FindEmployee(ctx context.Context, empID string) (*PayrollEmployee, error) {
	var emp PayrollEmployee
	err := r.conn(ctx).First(&emp, "emp_id = ?", empID).Error
	return &emp, err
}

func (r *repository) SaveArchive(ctx context.Context, archive *PayslipArchive) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "payroll_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"emp_id", "period_start", "period_end", "filename", "content", "generated_at"}),
		}).
		Create(archive).Error
}

func (r *repository) FindArchive(ctx context.Context, payrollID uint) (*PayslipArchive, error) {
	var archive PayslipArchive
	err := r.conn(ctx).First(&archive, "payroll_id = ?", payrollID).Error
	return &archive, err
}

func (r *repository) DeleteArchives(ctx context.Context, payrollIDs []uint) error {
	if len(payrollIDs) == 0 {
		return nil
	}
	return r.conn(ctx).Where("payroll_id IN ?", payrollIDs).Delete(&PayslipArchive{}).Error
}
