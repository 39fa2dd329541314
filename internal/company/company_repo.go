package company

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -destination=mock/company_repo_mock.go -package=mock . Repository
type Repository interface {
	Get(ctx context.Context) (*Company, error)
	Save(ctx context.Context, company *Company) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", profileID).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Save writes the single profile row, creating it on first use.
func (r *repository) Save(ctx context.Context, company *Company) error {
	company.ID = profileID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "address", "tin", "updated_at"}),
		}).
		Create(company).Error
}
