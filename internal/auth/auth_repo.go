package auth

import (
	"context"
	"database/sql"
	"errors"

	"go-payroll/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetByUsername(ctx context.Context, username string) (*Credential, error)
	CreateIfAbsent(ctx context.Context, cred *Credential) (bool, error)
	Save(ctx context.Context, cred *Credential) error
	UpdateHash(ctx context.Context, username, salt, hash string) error
	Delete(ctx context.Context, username string) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	EmployeeExists(ctx context.Context, empID string) (bool, error)
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

func (r *repository) GetByUsername(ctx context.Context, username string) (*Credential, error) {
	var cred Credential
	err := r.conn(ctx).Where("username = ?", username).First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// CreateIfAbsent inserts cred unless the username is taken. Reports whether a
// row was written.
func (r *repository) CreateIfAbsent(ctx context.Context, cred *Credential) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).
		Create(cred)
	return res.RowsAffected > 0, res.Error
}

// Save upserts on username. The role of an existing row is kept.
func (r *repository) Save(ctx context.Context, cred *Credential) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"salt", "pwd_hash", "emp_id"}),
		}).
		Create(cred).Error
}

func (r *repository) UpdateHash(ctx context.Context, username, salt, hash string) error {
	return r.conn(ctx).
		Model(&Credential{}).
		Where("username = ?", username).
		Updates(map[string]any{"salt": salt, "pwd_hash": hash}).Error
}

func (r *repository) Delete(ctx context.Context, username string) (int64, error) {
	res := r.conn(ctx).Where("username = ?", username).Delete(&Credential{})
	return res.RowsAffected, res.Error
}

func (r *repository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&Credential{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *repository) EmployeeExists(ctx context.Context, empID string) (bool, error) {
	var emp AuthEmployee
	err := r.conn(ctx).Select("emp_id").Where("emp_id = ?", empID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
