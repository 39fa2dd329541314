package company

import (
	"context"
	"errors"
	"strings"
	"time"

	companyerrors "go-payroll/internal/company/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/company_service_mock.go -package=mock . Service
type Service interface {
	Get(ctx context.Context) (*CompanyResponse, error)
	Update(ctx context.Context, p domain.Principal, req UpdateCompanyRequest) (*CompanyResponse, error)
	// Profile is what the payslip header prints.
	Profile(ctx context.Context) (domain.CompanyProfile, error)
}

type service struct {
	repo     Repository
	defaults domain.CompanyProfile
	logger   *zap.Logger
}

// NewService falls back to defaults until an admin saves a profile.
func NewService(repo Repository, defaults domain.CompanyProfile, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, defaults: defaults.Trimmed(), logger: l}
}

func (s *service) load(ctx context.Context) (*Company, error) {
	comp, err := s.repo.Get(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Company{
			ID:      profileID,
			Name:    s.defaults.Name,
			Address: s.defaults.Address,
			TIN:     s.defaults.TIN,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return comp, nil
}

func (s *service) Get(ctx context.Context) (*CompanyResponse, error) {
	comp, err := s.load(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get company profile failed", zap.Error(err))
		return nil, err
	}
	return s.mapToResponse(comp), nil
}

func (s *service) Profile(ctx context.Context) (domain.CompanyProfile, error) {
	comp, err := s.load(ctx)
	if err != nil {
		return domain.CompanyProfile{}, err
	}
	return comp.Profile(), nil
}

func (s *service) Update(ctx context.Context, p domain.Principal, req UpdateCompanyRequest) (*CompanyResponse, error) {
	if !p.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if req.Name == nil && req.Address == nil && req.TIN == nil {
		return nil, companyerrors.ErrEmptyUpdate
	}

	comp, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		comp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		comp.Address = strings.TrimSpace(*req.Address)
	}
	if req.TIN != nil {
		comp.TIN = strings.TrimSpace(*req.TIN)
	}
	comp.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, comp); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("update company profile failed", zap.Error(err))
		return nil, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("company profile updated", zap.String("by", p.Username))
	return s.mapToResponse(comp), nil
}

func (s *service) mapToResponse(c *Company) *CompanyResponse {
	resp := &CompanyResponse{
		Name:    c.Name,
		Address: c.Address,
		TIN:     c.TIN,
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
