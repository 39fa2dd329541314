package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go-payroll/internal/domain"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/metrics"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsTTL         = time.Hour
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, p domain.Principal, req UpsertEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, p domain.Principal) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, p domain.Principal) ([]EmployeeOption, error)
	GetByID(ctx context.Context, p domain.Principal, id string) (EmployeeResponse, error)
	Delete(ctx context.Context, p domain.Principal, id string) (DeleteResult, error)
	ImportEmployees(ctx context.Context, p domain.Principal, empls []Employee) (int, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func requireAdmin(p domain.Principal) error {
	if !p.IsAdmin() {
		return apperror.ErrForbidden
	}
	return nil
}

// normalize trims the text fields and checks what binding tags cannot.
func normalize(empl *Employee) error {
	empl.EmployeeID = strings.TrimSpace(empl.EmployeeID)
	empl.FullName = strings.TrimSpace(empl.FullName)
	empl.Position = strings.TrimSpace(empl.Position)
	empl.Department = strings.TrimSpace(empl.Department)
	empl.RateType = strings.ToLower(strings.TrimSpace(empl.RateType))

	if empl.EmployeeID == "" {
		return employeeerrors.ErrInvalidEmployeeID
	}
	if empl.FullName == "" {
		return apperror.RequiredField("full_name")
	}
	if !validRateType(empl.RateType) {
		return employeeerrors.ErrInvalidRateType
	}
	if empl.BaseRate.IsNegative() {
		return employeeerrors.ErrNegativeBaseRate
	}
	return nil
}

func (s *service) Upsert(ctx context.Context, p domain.Principal, req UpsertEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := requireAdmin(p); err != nil {
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Position:   req.Position,
		Department: req.Department,
		RateType:   req.RateType,
		BaseRate:   req.BaseRate,
		CreatedAt:  time.Now().UTC(),
	}
	if err := normalize(empl); err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("upsert employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Upsert(ctx, empl); err != nil {
		log.Error("upsert employee persist failed", zap.String("emp_id", empl.EmployeeID), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	stored, err := qtx.FindByID(ctx, empl.EmployeeID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("upsert employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	log.Info("upsert employee success", zap.String("emp_id", stored.EmployeeID))

	return mapToResponse(*stored), nil
}

func (s *service) GetAll(ctx context.Context, p domain.Principal) ([]EmployeeResponse, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, p domain.Principal) ([]EmployeeOption, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				metrics.CacheLookupsTotal.WithLabelValues("employee_options", "hit").Inc()
				return resp, nil
			}
		}
		metrics.CacheLookupsTotal.WithLabelValues("employee_options", "miss").Inc()
	}

	// 2. Singleflight supaya form payroll yang dibuka bersamaan cukup satu query
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		opts, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		if opts == nil {
			opts = []EmployeeOption{}
		}

		// 3. Simpan ke Redis, di-invalidate setiap ada perubahan employee
		if s.rdb != nil {
			if jsonData, err := json.Marshal(opts); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, optionsTTL)
			}
		}

		return opts, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, p domain.Principal, id string) (EmployeeResponse, error) {
	id = strings.TrimSpace(id)
	if !p.CanSee(id) {
		return EmployeeResponse{}, apperror.ErrForbidden
	}
	if id == "" {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

// Delete removes the employee together with its payroll rows, archived
// payslips and logins.
func (s *service) Delete(ctx context.Context, p domain.Principal, id string) (DeleteResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := requireAdmin(p); err != nil {
		return DeleteResult{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return DeleteResult{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete employee begin tx failed", zap.Error(err))
		return DeleteResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		return DeleteResult{}, mapRepositoryError(err)
	}

	result := DeleteResult{EmployeeID: id}
	if result.ArchivesDeleted, err = qtx.DeleteArchives(ctx, id); err != nil {
		log.Error("delete employee archives failed", zap.String("emp_id", id), zap.Error(err))
		return DeleteResult{}, err
	}
	if result.PayrollsDeleted, err = qtx.DeletePayrolls(ctx, id); err != nil {
		log.Error("delete employee payrolls failed", zap.String("emp_id", id), zap.Error(err))
		return DeleteResult{}, err
	}
	if result.LoginsDeleted, err = qtx.DeleteLogins(ctx, id); err != nil {
		log.Error("delete employee logins failed", zap.String("emp_id", id), zap.Error(err))
		return DeleteResult{}, err
	}
	if _, err := qtx.Delete(ctx, id); err != nil {
		log.Error("delete employee failed", zap.String("emp_id", id), zap.Error(err))
		return DeleteResult{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return DeleteResult{}, err
	}

	s.invalidateOptions(ctx)
	log.Info("delete employee success",
		zap.String("emp_id", id),
		zap.Int64("payrolls", result.PayrollsDeleted),
		zap.Int64("archives", result.ArchivesDeleted),
		zap.Int64("logins", result.LoginsDeleted),
	)
	return result, nil
}

// ImportEmployees upserts the batch in one transaction. A single invalid row
// rejects the whole batch.
func (s *service) ImportEmployees(ctx context.Context, p domain.Principal, empls []Employee) (int, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := requireAdmin(p); err != nil {
		return 0, err
	}
	if len(empls) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for i := range empls {
		if err := normalize(&empls[i]); err != nil {
			return 0, err
		}
		if empls[i].CreatedAt.IsZero() {
			empls[i].CreatedAt = now
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	for i := range empls {
		if err := qtx.Upsert(ctx, &empls[i]); err != nil {
			log.Error("import employee persist failed", zap.String("emp_id", empls[i].EmployeeID), zap.Error(err))
			return 0, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("import employees commit failed", zap.Error(err))
		return 0, err
	}

	s.invalidateOptions(ctx)
	metrics.RecordsImportedTotal.WithLabelValues("employees").Add(float64(len(empls)))
	log.Info("import employees success", zap.Int("count", len(empls)))
	return len(empls), nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Position:   empl.Position,
		Department: empl.Department,
		RateType:   empl.RateType,
		BaseRate:   empl.BaseRate,
		CreatedAt:  empl.CreatedAt,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
