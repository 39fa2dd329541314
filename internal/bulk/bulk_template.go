package bulk

import (
	"bytes"
	"encoding/csv"

	"go-payroll/internal/payroll"
)

const (
	TemplateEmployees = "employees.csv"
	TemplatePayroll   = "payroll.csv"
	ExportEmployees   = "employees.csv"
	ExportPayrollCSV  = "payroll.csv"
	ExportPayrollXLSX = "payroll.xlsx"

	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var employeeColumns = []string{"emp_id", "full_name", "position", "department", "rate_type", "base_rate"}

var payrollKeyColumns = []string{"emp_id", "period_start", "period_end"}

var templateAmounts = map[string]string{
	payroll.FieldBasicPay:        "7500",
	payroll.FieldOvertimePay:     "500",
	payroll.FieldAllowances:      "1000",
	payroll.FieldBonus:           "0",
	payroll.FieldSSS:             "600",
	payroll.FieldPhilHealth:      "450",
	payroll.FieldPagIBIG:         "100",
	payroll.FieldUndertime:       "0",
	payroll.FieldLate:            "0",
	payroll.FieldOtherDeductions: "200",
	payroll.FieldTax:             "800",
}

// File is a generated download.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

func EmployeesTemplate() ([]byte, error) {
	return writeCSV(employeeColumns, [][]string{
		{"EMP001", "Juan Dela Cruz", "Staff", "Marketing Department", "monthly", "15000"},
	})
}

// PayrollTemplate lists the key columns, the schema's amount columns and notes.
func PayrollTemplate(schema payroll.Schema) ([]byte, error) {
	header := append([]string{}, payrollKeyColumns...)
	example := []string{"EMP001", "2025-08-01", "2025-08-15"}
	for _, f := range schema.Fields() {
		header = append(header, f)
		example = append(example, templateAmounts[f])
	}
	header = append(header, "notes")
	example = append(example, "Example row")

	return writeCSV(header, [][]string{example})
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
