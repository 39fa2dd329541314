package bulk

import (
	"context"
	"io"

	bulkerrors "go-payroll/internal/bulk/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=bulk_service.go -destination=mock/bulk_service_mock.go -package=mock
type Service interface {
	ImportEmployees(ctx context.Context, p domain.Principal, filename string, r io.Reader) (ImportResponse, error)
	ImportPayrolls(ctx context.Context, p domain.Principal, filename string, r io.Reader) (ImportResponse, error)
	Template(name string) (File, error)
	Export(ctx context.Context, p domain.Principal, name string) (File, error)
}

type service struct {
	employees employee.Service
	payrolls  payroll.Service
	logger    *zap.Logger
}

func NewService(employees employee.Service, payrolls payroll.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("bulk.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bulk.service")
	}
	return &service{employees: employees, payrolls: payrolls, logger: l}
}

func requireAdmin(p domain.Principal) error {
	if !p.IsAdmin() {
		return apperror.ErrForbidden
	}
	return nil
}

func (s *service) ImportEmployees(ctx context.Context, p domain.Principal, filename string, r io.Reader) (ImportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := requireAdmin(p); err != nil {
		return ImportResponse{}, err
	}

	table, err := ReadTable(r, filename)
	if err != nil {
		return ImportResponse{}, err
	}
	if err := table.Require("emp_id", "full_name"); err != nil {
		return ImportResponse{}, err
	}

	empls := make([]employee.Employee, 0, len(table.Rows))
	for _, row := range table.Rows {
		for _, col := range []string{"emp_id", "full_name"} {
			if row.Get(col) == "" {
				return ImportResponse{}, bulkerrors.ErrInvalidRow.WithDetails(RowError{
					Line:   row.Line,
					Column: col,
					Reason: col + " is required",
				})
			}
		}
		empls = append(empls, employee.Employee{
			EmployeeID: row.Get("emp_id"),
			FullName:   row.Get("full_name"),
			Position:   row.Get("position"),
			Department: row.Get("department"),
			RateType:   row.Get("rate_type"),
			BaseRate:   payroll.ParseAmount(row.Get("base_rate")),
		})
	}

	n, err := s.employees.ImportEmployees(ctx, p, empls)
	if err != nil {
		log.Warn("bulk employee import rejected", zap.String("file", filename), zap.Error(err))
		return ImportResponse{}, err
	}

	log.Info("bulk employee import done", zap.String("file", filename), zap.Int("rows", n))
	return ImportResponse{Kind: "employees", Received: len(table.Rows), Upserted: n}, nil
}

func (s *service) ImportPayrolls(ctx context.Context, p domain.Principal, filename string, r io.Reader) (ImportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := requireAdmin(p); err != nil {
		return ImportResponse{}, err
	}

	table, err := ReadTable(r, filename)
	if err != nil {
		return ImportResponse{}, err
	}
	if err := table.Require(payrollKeyColumns...); err != nil {
		return ImportResponse{}, err
	}

	schema := s.payrolls.Schema()
	records := make([]payroll.Payroll, 0, len(table.Rows))
	for _, row := range table.Rows {
		values := row.Any()
		values["period_start"] = spreadsheetDate(row.Get("period_start"))
		values["period_end"] = spreadsheetDate(row.Get("period_end"))

		rec, err := payroll.RecordFromRow(values, schema)
		if err != nil {
			return ImportResponse{}, bulkerrors.ErrInvalidRow.WithDetails(RowError{
				Line:   row.Line,
				Reason: err.Error(),
			})
		}
		records = append(records, rec)
	}

	res, err := s.payrolls.ImportRecords(ctx, p, records)
	if err != nil {
		log.Warn("bulk payroll import rejected", zap.String("file", filename), zap.Error(err))
		return ImportResponse{}, err
	}

	log.Info("bulk payroll import done",
		zap.String("file", filename),
		zap.Int("received", res.Received),
		zap.Int("superseded", res.Superseded),
		zap.Int("upserted", res.Upserted),
	)
	return ImportResponse{
		Kind:       "payroll",
		Received:   res.Received,
		Superseded: res.Superseded,
		Upserted:   res.Upserted,
	}, nil
}

func (s *service) Template(name string) (File, error) {
	var (
		data []byte
		err  error
	)
	switch name {
	case TemplateEmployees:
		data, err = EmployeesTemplate()
	case TemplatePayroll:
		data, err = PayrollTemplate(s.payrolls.Schema())
	default:
		return File{}, bulkerrors.ErrUnknownTemplate
	}
	if err != nil {
		return File{}, err
	}
	return File{Filename: "template_" + name, ContentType: contentTypeCSV, Data: data}, nil
}

func (s *service) Export(ctx context.Context, p domain.Principal, name string) (File, error) {
	if err := requireAdmin(p); err != nil {
		return File{}, err
	}

	switch name {
	case ExportEmployees:
		empls, err := s.employees.GetAll(ctx, p)
		if err != nil {
			return File{}, err
		}
		data, err := EmployeesCSV(empls)
		if err != nil {
			return File{}, err
		}
		return File{Filename: "employees_backup.csv", ContentType: contentTypeCSV, Data: data}, nil

	case ExportPayrollCSV, ExportPayrollXLSX:
		recs, err := s.payrolls.ListRecords(ctx, p)
		if err != nil {
			return File{}, err
		}
		if name == ExportPayrollCSV {
			data, err := PayrollCSV(recs)
			if err != nil {
				return File{}, err
			}
			return File{Filename: "payroll_backup.csv", ContentType: contentTypeCSV, Data: data}, nil
		}
		data, err := PayrollXLSX(recs, s.payrolls.Schema())
		if err != nil {
			return File{}, err
		}
		return File{Filename: "payroll_report.xlsx", ContentType: contentTypeXLSX, Data: data}, nil
	}

	return File{}, bulkerrors.ErrUnknownExport
}
