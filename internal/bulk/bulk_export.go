package bulk

import (
	"fmt"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/payroll"

	"github.com/xuri/excelize/v2"
)

const payrollSheet = "Payroll"

// EmployeesCSV is the employees backup. It re-imports as is.
func EmployeesCSV(empls []employee.EmployeeResponse) ([]byte, error) {
	header := append(append([]string{}, employeeColumns...), "created_at")
	rows := make([][]string, 0, len(empls))
	for _, e := range empls {
		rows = append(rows, []string{
			e.EmployeeID,
			e.FullName,
			e.Position,
			e.Department,
			e.RateType,
			e.BaseRate.StringFixed(2),
			e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return writeCSV(header, rows)
}

func payrollCSVColumns() []string {
	cols := append([]string{"id"}, payrollKeyColumns...)
	cols = append(cols, payroll.AllFields()...)
	return append(cols, "notes", "created_at")
}

// PayrollCSV is the payroll backup with every amount column, whatever the
// schema. Absent optional amounts are blank.
func PayrollCSV(recs []payroll.Payroll) ([]byte, error) {
	header := payrollCSVColumns()
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		row := payroll.ToRow(rec)
		line := make([]string, len(header))
		for i, col := range header {
			line[i] = fmt.Sprint(row[col])
		}
		rows = append(rows, line)
	}
	return writeCSV(header, rows)
}

// PayrollXLSX is the reporting workbook: the schema's amount columns as
// numbers followed by the computed totals.
func PayrollXLSX(recs []payroll.Payroll, schema payroll.Schema) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), payrollSheet); err != nil {
		return nil, err
	}

	fields := schema.Fields()
	header := []interface{}{"id", "emp_id", "period_start", "period_end"}
	for _, field := range fields {
		header = append(header, field)
	}
	header = append(header, "gross", "total_deductions", "net", "notes")
	if err := f.SetSheetRow(payrollSheet, "A1", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(payrollSheet, 1, 1, bold); err != nil {
		return nil, err
	}

	for i, rec := range recs {
		totals := payroll.Aggregate(rec, schema)
		line := []interface{}{
			rec.ID,
			rec.EmployeeID,
			rec.PeriodStart.Format(payroll.DateLayout),
			rec.PeriodEnd.Format(payroll.DateLayout),
		}
		for _, field := range fields {
			line = append(line, rec.Amount(field).InexactFloat64())
		}
		line = append(line,
			totals.Gross.InexactFloat64(),
			totals.TotalDeductions.InexactFloat64(),
			totals.Net.InexactFloat64(),
			rec.Notes,
		)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(payrollSheet, cell, &line); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
