package bulk_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/bulk"
	bulkerrors "go-payroll/internal/bulk/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	employeeMock "go-payroll/internal/employee/mock"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	payrollMock "go-payroll/internal/payroll/mock"
	"go-payroll/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

var (
	adminPrincipal = domain.Principal{Username: "admin", Role: domain.RoleAdmin}
	emp1Principal  = domain.Principal{Username: "EMP001", Role: domain.RoleEmployee, EmployeeID: "EMP001"}
	aug1           = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	aug15          = time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
)

type bulkDeps struct {
	service   bulk.Service
	employees *employeeMock.MockService
	payrolls  *payrollMock.MockService
}

func setupBulkService(t *testing.T) *bulkDeps {
	ctrl := gomock.NewController(t)
	employees := employeeMock.NewMockService(ctrl)
	payrolls := payrollMock.NewMockService(ctrl)
	return &bulkDeps{
		service:   bulk.NewService(employees, payrolls),
		employees: employees,
		payrolls:  payrolls,
	}
}

func appErrorDetails(t *testing.T, err error) any {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	return appErr.Details
}

func TestService_ImportEmployees(t *testing.T) {
	ctx := context.Background()

	t.Run("maps and coerces columns", func(t *testing.T) {
		deps := setupBulkService(t)
		csv := "emp_id,full_name,position,department,rate_type,base_rate\n" +
			"EMP001,Juan Dela Cruz,Staff,Marketing Department,monthly,15000\n" +
			"EMP002,Ana Reyes,,,,abc\n"

		deps.employees.EXPECT().
			ImportEmployees(ctx, adminPrincipal, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Principal, empls []employee.Employee) (int, error) {
				assert.Len(t, empls, 2)
				assert.Equal(t, "Marketing Department", empls[0].Department)
				assert.True(t, empls[0].BaseRate.Equal(decimal.NewFromInt(15000)))
				assert.True(t, empls[1].BaseRate.IsZero())
				return len(empls), nil
			})

		res, err := deps.service.ImportEmployees(ctx, adminPrincipal, "employees.csv", strings.NewReader(csv))

		assert.NoError(t, err)
		assert.Equal(t, bulk.ImportResponse{Kind: "employees", Received: 2, Upserted: 2}, res)
	})

	t.Run("missing required column", func(t *testing.T) {
		deps := setupBulkService(t)

		_, err := deps.service.ImportEmployees(ctx, adminPrincipal, "employees.csv", strings.NewReader("emp_id,position\nEMP001,Staff\n"))

		assert.ErrorIs(t, err, bulkerrors.ErrMissingColumns)
		assert.Equal(t, map[string]any{"columns": []string{"full_name"}}, appErrorDetails(t, err))
	})

	t.Run("blank full_name points at the line", func(t *testing.T) {
		deps := setupBulkService(t)
		csv := "emp_id,full_name\nEMP001,Juan\nEMP002,\n"

		_, err := deps.service.ImportEmployees(ctx, adminPrincipal, "employees.csv", strings.NewReader(csv))

		assert.ErrorIs(t, err, bulkerrors.ErrInvalidRow)
		assert.Equal(t, bulk.RowError{Line: 3, Column: "full_name", Reason: "full_name is required"}, appErrorDetails(t, err))
	})

	t.Run("employees cannot import", func(t *testing.T) {
		deps := setupBulkService(t)

		_, err := deps.service.ImportEmployees(ctx, emp1Principal, "employees.csv", strings.NewReader("emp_id,full_name\n"))
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestService_ImportPayrolls(t *testing.T) {
	ctx := context.Background()

	t.Run("csv rows become records", func(t *testing.T) {
		deps := setupBulkService(t)
		csv := "EMP_ID,Period_Start,Period_End,Basic_Pay,SSS,Bonus,Notes\n" +
			"EMP001,2025-08-01,2025-08-15,7500,600,,first\n" +
			"EMP001,2025-08-01,2025-08-15,2500,,,second\n"

		deps.payrolls.EXPECT().Schema().Return(payroll.FullSchema())
		deps.payrolls.EXPECT().
			ImportRecords(ctx, adminPrincipal, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Principal, recs []payroll.Payroll) (payroll.ImportResult, error) {
				assert.Len(t, recs, 2)
				assert.Equal(t, aug1, recs[0].PeriodStart)
				assert.Equal(t, aug15, recs[0].PeriodEnd)
				assert.True(t, recs[0].BasicPay.Equal(decimal.NewFromInt(7500)))
				assert.False(t, recs[0].Bonus.Valid)
				assert.Equal(t, "second", recs[1].Notes)
				return payroll.ImportResult{Received: 2, Superseded: 1, Upserted: 1}, nil
			})

		res, err := deps.service.ImportPayrolls(ctx, adminPrincipal, "payroll.csv", strings.NewReader(csv))

		assert.NoError(t, err)
		assert.Equal(t, bulk.ImportResponse{Kind: "payroll", Received: 2, Superseded: 1, Upserted: 1}, res)
	})

	t.Run("xlsx date serials", func(t *testing.T) {
		deps := setupBulkService(t)

		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		assert.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"emp_id", "period_start", "period_end", "basic_pay"}))
		assert.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"EMP001", 45870, 45884, 7500}))
		buf, err := f.WriteToBuffer()
		assert.NoError(t, err)

		deps.payrolls.EXPECT().Schema().Return(payroll.FullSchema())
		deps.payrolls.EXPECT().
			ImportRecords(ctx, adminPrincipal, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Principal, recs []payroll.Payroll) (payroll.ImportResult, error) {
				assert.Equal(t, aug1, recs[0].PeriodStart)
				assert.Equal(t, aug15, recs[0].PeriodEnd)
				return payroll.ImportResult{Received: 1, Upserted: 1}, nil
			})

		_, err = deps.service.ImportPayrolls(ctx, adminPrincipal, "payroll.xlsx", buf)
		assert.NoError(t, err)
	})

	t.Run("bad date rejects the file", func(t *testing.T) {
		deps := setupBulkService(t)
		deps.payrolls.EXPECT().Schema().Return(payroll.FullSchema())

		csv := "emp_id,period_start,period_end\nEMP001,yesterday,2025-08-15\n"
		_, err := deps.service.ImportPayrolls(ctx, adminPrincipal, "payroll.csv", strings.NewReader(csv))

		assert.ErrorIs(t, err, bulkerrors.ErrInvalidRow)
		assert.Equal(t, 2, appErrorDetails(t, err).(bulk.RowError).Line)
	})

	t.Run("unknown employee from the payroll service", func(t *testing.T) {
		deps := setupBulkService(t)
		deps.payrolls.EXPECT().Schema().Return(payroll.FullSchema())
		deps.payrolls.EXPECT().
			ImportRecords(ctx, adminPrincipal, gomock.Any()).
			Return(payroll.ImportResult{}, payrollerrors.ErrEmployeeNotFound)

		csv := "emp_id,period_start,period_end\nEMP404,2025-08-01,2025-08-15\n"
		_, err := deps.service.ImportPayrolls(ctx, adminPrincipal, "payroll.csv", strings.NewReader(csv))
		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
	})
}

func TestService_Template(t *testing.T) {
	deps := setupBulkService(t)
	deps.payrolls.EXPECT().Schema().Return(payroll.Schema{})

	file, err := deps.service.Template("payroll.csv")
	assert.NoError(t, err)
	assert.Equal(t, "template_payroll.csv", file.Filename)
	assert.NotContains(t, string(file.Data), "bonus")

	_, err = deps.service.Template("salaries.csv")
	assert.ErrorIs(t, err, bulkerrors.ErrUnknownTemplate)
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	recs := []payroll.Payroll{{
		ID:          7,
		EmployeeID:  "EMP001",
		PeriodStart: aug1,
		PeriodEnd:   aug15,
		BasicPay:    decimal.NewFromInt(7500),
		SSS:         decimal.NewFromInt(600),
		Bonus:       decimal.NewNullDecimal(decimal.NewFromInt(250)),
		Notes:       "first",
		CreatedAt:   aug15,
	}}

	t.Run("employees csv", func(t *testing.T) {
		deps := setupBulkService(t)
		deps.employees.EXPECT().GetAll(ctx, adminPrincipal).Return([]employee.EmployeeResponse{{
			EmployeeID: "EMP001",
			FullName:   "Dela Cruz, Juan",
			RateType:   "monthly",
			BaseRate:   decimal.NewFromInt(15000),
			CreatedAt:  aug1,
		}}, nil)

		file, err := deps.service.Export(ctx, adminPrincipal, "employees.csv")

		assert.NoError(t, err)
		assert.Equal(t, "employees_backup.csv", file.Filename)
		assert.Equal(t,
			"emp_id,full_name,position,department,rate_type,base_rate,created_at\n"+
				"EMP001,\"Dela Cruz, Juan\",,,monthly,15000.00,2025-08-01T00:00:00Z\n",
			string(file.Data))
	})

	t.Run("payroll csv re-imports", func(t *testing.T) {
		deps := setupBulkService(t)
		deps.payrolls.EXPECT().ListRecords(ctx, adminPrincipal).Return(recs, nil)

		file, err := deps.service.Export(ctx, adminPrincipal, "payroll.csv")
		assert.NoError(t, err)

		table, err := bulk.ReadTable(bytes.NewReader(file.Data), file.Filename)
		assert.NoError(t, err)
		assert.Len(t, table.Rows, 1)
		assert.Equal(t, "7", table.Rows[0].Get("id"))
		assert.Equal(t, "250.00", table.Rows[0].Get("bonus"))
		assert.Equal(t, "", table.Rows[0].Get("late"))

		rec, err := payroll.RecordFromRow(table.Rows[0].Any(), payroll.FullSchema())
		assert.NoError(t, err)
		assert.True(t, rec.BasicPay.Equal(recs[0].BasicPay))
		assert.False(t, rec.Late.Valid)
	})

	t.Run("payroll xlsx carries totals", func(t *testing.T) {
		deps := setupBulkService(t)
		deps.payrolls.EXPECT().ListRecords(ctx, adminPrincipal).Return(recs, nil)
		deps.payrolls.EXPECT().Schema().Return(payroll.FullSchema())

		file, err := deps.service.Export(ctx, adminPrincipal, "payroll.xlsx")
		assert.NoError(t, err)
		assert.Equal(t, "payroll_report.xlsx", file.Filename)

		wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
		assert.NoError(t, err)
		defer wb.Close()

		rows, err := wb.GetRows("Payroll")
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		header := rows[0]
		assert.Equal(t, "net", header[len(header)-2])
		assert.Equal(t, "7150", rows[1][len(header)-2])
	})

	t.Run("unknown export", func(t *testing.T) {
		deps := setupBulkService(t)

		_, err := deps.service.Export(ctx, adminPrincipal, "users.csv")
		assert.ErrorIs(t, err, bulkerrors.ErrUnknownExport)
	})

	t.Run("admin only", func(t *testing.T) {
		deps := setupBulkService(t)

		_, err := deps.service.Export(ctx, emp1Principal, "employees.csv")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}
