package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/metrics"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileProvider supplies the company block printed on payslips.
type ProfileProvider interface {
	Profile(ctx context.Context) (domain.CompanyProfile, error)
}

type Options struct {
	Schema       Schema
	MergePolicy  MergePolicy
	PortalLabel  string
	Profiles     ProfileProvider
	Outbox       kafka.OutboxRepository
	PayslipTopic string
	Now          func() time.Time
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, p domain.Principal, req UpsertPayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, p domain.Principal, filter ListPayrollsFilter) ([]PayrollResponse, error)
	GetByID(ctx context.Context, p domain.Principal, id uint) (PayrollResponse, error)
	GetByKey(ctx context.Context, p domain.Principal, req PayrollKeyRequest) (PayrollResponse, error)
	GetSummary(ctx context.Context, p domain.Principal, id uint) (SummaryResponse, error)
	RenderPayslip(ctx context.Context, p domain.Principal, id uint) (Payslip, error)
	GetArchivedPayslip(ctx context.Context, p domain.Principal, id uint) (*PayslipArchive, error)
	Delete(ctx context.Context, p domain.Principal, id uint) error
	DeleteByKey(ctx context.Context, p domain.Principal, req PayrollKeyRequest) error
	MergeDuplicates(ctx context.Context, p domain.Principal) (MergeResult, error)
	ImportRecords(ctx context.Context, p domain.Principal, records []Payroll) (ImportResult, error)
	ListRecords(ctx context.Context, p domain.Principal) ([]Payroll, error)
	ReleasePayslips(ctx context.Context, p domain.Principal, req ReleasePayslipsRequest) (ReleaseResponse, error)
	GeneratePayslip(ctx context.Context, payrollID uint) (*PayslipArchive, error)
	Schema() Schema
}

type service struct {
	db       *sql.DB
	repo     Repository
	opts     Options
	composer PayslipComposer
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MergePolicy == "" {
		opts.MergePolicy = MergeSum
	}
	if opts.PayslipTopic == "" {
		opts.PayslipTopic = events.PayslipRequestedTopic
	}
	composer := NewPayslipComposer(opts.Schema, opts.PortalLabel)
	composer.Now = opts.Now

	return &service{db: db, repo: repo, opts: opts, composer: composer, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Schema() Schema {
	return s.opts.Schema
}

func requireAdmin(p domain.Principal) error {
	if !p.IsAdmin() {
		return apperror.ErrForbidden
	}
	return nil
}

func (s *service) Upsert(ctx context.Context, p domain.Principal, req UpsertPayrollRequest) (PayrollResponse, error) {
	if err := requireAdmin(p); err != nil {
		return PayrollResponse{}, err
	}

	rec, err := RecordFromRow(req.Row(), s.opts.Schema)
	if err != nil {
		return PayrollResponse{}, rowError(err)
	}
	rec.CreatedAt = s.opts.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindEmployee(ctx, rec.EmployeeID); err != nil {
		return PayrollResponse{}, employeeLookupError(err)
	}
	if err := qtx.Upsert(ctx, &rec); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	saved, err := qtx.FindByKey(ctx, KeyOf(rec))
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.warnNegativeNet(ctx, *saved)
	s.log(ctx).Info("payroll saved",
		zap.Uint("payroll_id", saved.ID),
		zap.String("emp_id", saved.EmployeeID),
		zap.String("period", PeriodLabel(saved.PeriodStart, saved.PeriodEnd)),
		zap.String("by", p.Username),
	)
	return mapToResponse(*saved), nil
}

func (s *service) GetAll(ctx context.Context, p domain.Principal, filter ListPayrollsFilter) ([]PayrollResponse, error) {
	var (
		payrolls []Payroll
		err      error
	)

	switch {
	case p.IsAdmin() && filter.EmployeeID == "":
		payrolls, err = s.repo.FindAll(ctx)
	case p.IsAdmin():
		payrolls, err = s.repo.FindByEmployee(ctx, filter.EmployeeID)
	case p.EmployeeID != "":
		// employees only ever see their own rows, whatever they ask for
		payrolls, err = s.repo.FindByEmployee(ctx, p.EmployeeID)
	default:
		return nil, apperror.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	return mapToListResponse(payrolls), nil
}

func (s *service) findVisible(ctx context.Context, p domain.Principal, id uint) (*Payroll, error) {
	if id == 0 {
		return nil, payrollerrors.ErrInvalidPayrollID
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !p.CanSee(rec.EmployeeID) {
		return nil, apperror.ErrForbidden
	}
	return rec, nil
}

func (s *service) GetByID(ctx context.Context, p domain.Principal, id uint) (PayrollResponse, error) {
	rec, err := s.findVisible(ctx, p, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) GetByKey(ctx context.Context, p domain.Principal, req PayrollKeyRequest) (PayrollResponse, error) {
	key, err := parseKey(req)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !p.CanSee(key.EmployeeID) {
		return PayrollResponse{}, apperror.ErrForbidden
	}
	rec, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rec), nil
}

func (s *service) GetSummary(ctx context.Context, p domain.Principal, id uint) (SummaryResponse, error) {
	rec, err := s.findVisible(ctx, p, id)
	if err != nil {
		return SummaryResponse{}, err
	}
	return s.summarize(*rec), nil
}

func (s *service) summarize(rec Payroll) SummaryResponse {
	totals := Aggregate(rec, s.opts.Schema)
	return SummaryResponse{
		PayrollID:       rec.ID,
		EmployeeID:      rec.EmployeeID,
		PeriodStart:     rec.PeriodStart.Format(DateLayout),
		PeriodEnd:       rec.PeriodEnd.Format(DateLayout),
		Gross:           totals.Gross,
		TotalDeductions: totals.TotalDeductions,
		Net:             totals.Net,
		Display: SummaryDisplay{
			Gross:           FormatPeso(totals.Gross),
			TotalDeductions: FormatPeso(totals.TotalDeductions),
			Net:             FormatPeso(totals.Net),
		},
		NegativeNet: totals.Net.IsNegative(),
	}
}

func (s *service) RenderPayslip(ctx context.Context, p domain.Principal, id uint) (Payslip, error) {
	rec, err := s.findVisible(ctx, p, id)
	if err != nil {
		return Payslip{}, err
	}

	slip, err := s.compose(ctx, s.repo, *rec)
	if err != nil {
		return Payslip{}, err
	}
	metrics.PayslipsRenderedTotal.WithLabelValues("download").Inc()
	return slip, nil
}

func (s *service) compose(ctx context.Context, repo Repository, rec Payroll) (Payslip, error) {
	emp, err := repo.FindEmployee(ctx, rec.EmployeeID)
	if err != nil {
		return Payslip{}, employeeLookupError(err)
	}

	var profile domain.CompanyProfile
	if s.opts.Profiles != nil {
		profile, err = s.opts.Profiles.Profile(ctx)
		if err != nil {
			return Payslip{}, err
		}
	}

	s.warnNegativeNet(ctx, rec)
	return s.composer.Compose(profile, *emp, rec), nil
}

func (s *service) GetArchivedPayslip(ctx context.Context, p domain.Principal, id uint) (*PayslipArchive, error) {
	if _, err := s.findVisible(ctx, p, id); err != nil {
		return nil, err
	}
	archive, err := s.repo.FindArchive(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayslipNotGenerated
		}
		return nil, err
	}
	return archive, nil
}

func (s *service) Delete(ctx context.Context, p domain.Principal, id uint) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if id == 0 {
		return payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	n, err := qtx.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return payrollerrors.ErrPayrollNotFound
	}
	if err := qtx.DeleteArchives(ctx, []uint{id}); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) DeleteByKey(ctx context.Context, p domain.Principal, req PayrollKeyRequest) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	key, err := parseKey(req)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByKey(ctx, key)
	if err != nil {
		return mapRepositoryError(err)
	}
	if _, err := qtx.DeleteByKey(ctx, key); err != nil {
		return err
	}
	if err := qtx.DeleteArchives(ctx, []uint{rec.ID}); err != nil {
		return err
	}

	return tx.Commit()
}

// MergeDuplicates reconciles stored rows in one transaction; any failure
// leaves the table as it was.
func (s *service) MergeDuplicates(ctx context.Context, p domain.Principal) (MergeResult, error) {
	if err := requireAdmin(p); err != nil {
		return MergeResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MergeResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	records, err := qtx.FindAll(ctx)
	if err != nil {
		return MergeResult{}, err
	}

	plan := PlanMerge(records, s.opts.MergePolicy, s.opts.Now().UTC())
	result := MergeResult{Policy: s.opts.MergePolicy, Groups: len(plan)}
	if len(plan) == 0 {
		return result, nil
	}

	for _, group := range plan {
		switch s.opts.MergePolicy {
		case MergeKeepLatest:
			if _, err := qtx.DeleteByIDs(ctx, group.RemoveIDs); err != nil {
				return MergeResult{}, fmt.Errorf("merge %s: %w", group.Key, err)
			}
		default:
			merged := group.Result
			if err := qtx.ReplaceGroup(ctx, group.RemoveIDs, &merged); err != nil {
				return MergeResult{}, fmt.Errorf("merge %s: %w", group.Key, err)
			}
		}
		if err := qtx.DeleteArchives(ctx, group.RemoveIDs); err != nil {
			return MergeResult{}, err
		}
		result.Removed += group.Removed()
	}

	if err := tx.Commit(); err != nil {
		return MergeResult{}, err
	}

	metrics.RecordsMergedTotal.WithLabelValues(string(s.opts.MergePolicy)).Add(float64(result.Removed))
	s.log(ctx).Info("duplicate payroll rows merged",
		zap.String("policy", string(s.opts.MergePolicy)),
		zap.Int("groups", result.Groups),
		zap.Int("removed", result.Removed),
	)
	return result, nil
}

// ImportRecords upserts the batch in one transaction. A key repeated in the
// batch behaves like repeated upserts: the last row wins. Every employee must
// exist.
func (s *service) ImportRecords(ctx context.Context, p domain.Principal, records []Payroll) (ImportResult, error) {
	if err := requireAdmin(p); err != nil {
		return ImportResult{}, err
	}

	now := s.opts.Now().UTC()
	rows, superseded := LastPerKey(records)
	result := ImportResult{Received: len(records), Superseded: superseded}
	if len(rows) == 0 {
		return result, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var missing []string
	checked := map[string]bool{}
	for _, rec := range rows {
		if checked[rec.EmployeeID] {
			continue
		}
		checked[rec.EmployeeID] = true
		if _, err := qtx.FindEmployee(ctx, rec.EmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = append(missing, rec.EmployeeID)
				continue
			}
			return ImportResult{}, err
		}
	}
	if len(missing) > 0 {
		return ImportResult{}, payrollerrors.ErrEmployeeNotFound.WithDetails(map[string]any{"emp_ids": missing})
	}

	for i := range rows {
		rec := rows[i]
		rec.ID = 0
		rec.CreatedAt = now
		if err := qtx.Upsert(ctx, &rec); err != nil {
			return ImportResult{}, mapRepositoryError(err)
		}
		result.Upserted++
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, err
	}

	metrics.RecordsImportedTotal.WithLabelValues("payroll").Add(float64(result.Upserted))
	s.log(ctx).Info("payroll batch imported",
		zap.Int("received", result.Received),
		zap.Int("superseded", result.Superseded),
		zap.Int("upserted", result.Upserted),
	)
	return result, nil
}

func (s *service) ListRecords(ctx context.Context, p domain.Principal) ([]Payroll, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx)
}

// ReleasePayslips queues one archive job per payroll row of the period. The
// outbox rows commit with nothing else; the worker publishes them later.
func (s *service) ReleasePayslips(ctx context.Context, p domain.Principal, req ReleasePayslipsRequest) (ReleaseResponse, error) {
	if err := requireAdmin(p); err != nil {
		return ReleaseResponse{}, err
	}
	if s.opts.Outbox == nil {
		return ReleaseResponse{}, payrollerrors.ErrReleaseUnavailable
	}

	start, err := ParseDate(req.PeriodStart)
	if err != nil {
		return ReleaseResponse{}, payrollerrors.ErrInvalidDateFormat
	}
	end, err := ParseDate(req.PeriodEnd)
	if err != nil {
		return ReleaseResponse{}, payrollerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReleaseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	otx := s.opts.Outbox.WithTx(tx)

	records, err := qtx.FindByPeriod(ctx, start, end)
	if err != nil {
		return ReleaseResponse{}, err
	}

	now := s.opts.Now().UTC()
	requestID := contextutil.GetRequestID(ctx)
	queued := 0
	for _, rec := range records {
		if req.EmployeeID != "" && rec.EmployeeID != req.EmployeeID {
			continue
		}
		payload, err := json.Marshal(events.PayslipRequestedEvent{
			EventType:   events.PayslipRequestedEventType,
			PayrollID:   rec.ID,
			EmployeeID:  rec.EmployeeID,
			PeriodStart: rec.PeriodStart.Format(DateLayout),
			PeriodEnd:   rec.PeriodEnd.Format(DateLayout),
			RequestedBy: p.Username,
			OccurredAt:  now,
		})
		if err != nil {
			return ReleaseResponse{}, err
		}
		if err := otx.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     requestID,
			AggregateType: "payroll",
			AggregateID:   strconv.FormatUint(uint64(rec.ID), 10),
			EventType:     events.PayslipRequestedEventType,
			Topic:         s.opts.PayslipTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return ReleaseResponse{}, err
		}
		queued++
	}
	if queued == 0 {
		return ReleaseResponse{}, payrollerrors.ErrNoPayrollForPeriod
	}

	if err := tx.Commit(); err != nil {
		return ReleaseResponse{}, err
	}

	s.log(ctx).Info("payslip release queued",
		zap.String("period", PeriodLabel(start, end)),
		zap.Int("queued", queued),
	)
	return ReleaseResponse{Queued: queued}, nil
}

// GeneratePayslip renders and archives one payslip. It runs on behalf of the
// release consumer, not a user.
func (s *service) GeneratePayslip(ctx context.Context, payrollID uint) (*PayslipArchive, error) {
	rec, err := s.repo.FindByID(ctx, payrollID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	slip, err := s.compose(ctx, s.repo, *rec)
	if err != nil {
		return nil, err
	}

	archive := &PayslipArchive{
		PayrollID:   rec.ID,
		EmployeeID:  rec.EmployeeID,
		PeriodStart: rec.PeriodStart,
		PeriodEnd:   rec.PeriodEnd,
		Filename:    slip.Filename,
		Content:     slip.Content,
		GeneratedAt: s.opts.Now().UTC(),
	}
	if err := s.repo.SaveArchive(ctx, archive); err != nil {
		return nil, err
	}

	metrics.PayslipsRenderedTotal.WithLabelValues("archive").Inc()
	return archive, nil
}

func (s *service) warnNegativeNet(ctx context.Context, rec Payroll) {
	totals := Aggregate(rec, s.opts.Schema)
	if !totals.Net.IsNegative() {
		return
	}
	metrics.NegativeNetTotal.Inc()
	s.log(ctx).Warn("payroll net pay is negative",
		zap.Uint("payroll_id", rec.ID),
		zap.String("emp_id", rec.EmployeeID),
		zap.String("net", totals.Net.StringFixed(2)),
	)
}

func parseKey(req PayrollKeyRequest) (Key, error) {
	if req.EmployeeID == "" {
		return Key{}, payrollerrors.ErrInvalidEmployeeID
	}
	start, err := ParseDate(req.PeriodStart)
	if err != nil {
		return Key{}, payrollerrors.ErrInvalidDateFormat
	}
	end, err := ParseDate(req.PeriodEnd)
	if err != nil {
		return Key{}, payrollerrors.ErrInvalidDateFormat
	}
	return NewKey(req.EmployeeID, start, end), nil
}

func rowError(err error) error {
	if errors.Is(err, errInvalidDate) {
		return payrollerrors.ErrInvalidDateFormat.WithCause(err)
	}
	return payrollerrors.ErrInvalidEmployeeID.WithCause(err)
}

func employeeLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrEmployeeNotFound
	}
	return err
}

func mapToResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		PeriodStart:     p.PeriodStart.Format(DateLayout),
		PeriodEnd:       p.PeriodEnd.Format(DateLayout),
		BasicPay:        p.BasicPay,
		OvertimePay:     p.OvertimePay,
		Allowances:      p.Allowances,
		Bonus:           p.Bonus,
		SSS:             p.SSS,
		PhilHealth:      p.PhilHealth,
		PagIBIG:         p.PagIBIG,
		Undertime:       p.Undertime,
		Late:            p.Late,
		OtherDeductions: p.OtherDeductions,
		Tax:             p.Tax,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, payroll := range payrolls {
		resp[i] = mapToResponse(payroll)
	}
	return resp
}
