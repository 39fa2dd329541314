package payroll

import (
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/pdf"
)

const (
	payslipMargin   = 18 * pdf.MM
	footerY         = 12 * pdf.MM
	labelValueShift = 120
	footerGray      = 0.5
)

type Payslip struct {
	Filename    string
	EmployeeID  string
	PeriodStart string
	PeriodEnd   string
	Totals      Totals
	// Lines is every string on the page in drawing order, peso signs intact.
	Lines   []string
	Content []byte
}

// PayslipFilename builds payslip_{empId}_{start}_{end}.pdf.
func PayslipFilename(empID, start, end string) string {
	safe := strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(strings.TrimSpace(empID))
	return fmt.Sprintf("payslip_%s_%s_%s.pdf", safe, start, end)
}

// PayslipComposer lays out a single A4 payslip. The caller resolves the
// employee; the composer never looks anything up.
type PayslipComposer struct {
	Schema      Schema
	PortalLabel string
	Now         func() time.Time
}

func NewPayslipComposer(schema Schema, portalLabel string) PayslipComposer {
	return PayslipComposer{
		Schema:      schema,
		PortalLabel: portalLabel,
		Now:         time.Now,
	}
}

func (c PayslipComposer) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c PayslipComposer) Compose(profile domain.CompanyProfile, emp PayrollEmployee, rec Payroll) Payslip {
	profile = profile.Trimmed()
	start := rec.PeriodStart.Format(DateLayout)
	end := rec.PeriodEnd.Format(DateLayout)
	totals := Aggregate(rec, c.Schema)

	page := pdf.NewPage(pdf.A4Width, pdf.A4Height)
	page.SetTitle("Payslip " + strings.TrimSpace(emp.EmployeeID) + " " + PeriodLabel(rec.PeriodStart, rec.PeriodEnd))

	width := page.Width
	x0 := payslipMargin
	right := width - payslipMargin
	mid := width / 2
	y := page.Height - payslipMargin

	// header
	header := false
	if profile.Name != "" {
		page.SetFont(pdf.HelveticaBold, 14)
		page.DrawString(x0, y, profile.Name)
		y -= 14
		header = true
	}
	if profile.Address != "" {
		page.SetFont(pdf.Helvetica, 10)
		page.DrawString(x0, y, profile.Address)
		y -= 12
		header = true
	}
	if profile.TIN != "" {
		page.SetFont(pdf.Helvetica, 10)
		page.DrawString(x0, y, "TIN: "+profile.TIN)
		y -= 12
		header = true
	}
	if header {
		page.Line(x0, y, right, y)
		y -= 14
	}

	labelValue := func(label, value string) {
		page.SetFont(pdf.HelveticaBold, 10)
		page.DrawString(x0, y, label)
		page.SetFont(pdf.Helvetica, 10)
		page.DrawString(x0+labelValueShift, y, value)
		y -= 12
	}
	labelValue("Employee Name:", strings.TrimSpace(emp.FullName))
	labelValue("Employee ID:", strings.TrimSpace(emp.EmployeeID))
	if v := strings.TrimSpace(emp.Position); v != "" {
		labelValue("Position:", v)
	}
	if v := strings.TrimSpace(emp.Department); v != "" {
		labelValue("Department:", v)
	}
	labelValue("Pay Period:", PeriodLabel(rec.PeriodStart, rec.PeriodEnd))

	y -= 6
	page.Line(x0, y, right, y)
	y -= 16

	page.SetFont(pdf.HelveticaBold, 11)
	page.DrawString(x0, y, "EARNINGS")
	page.DrawString(mid, y, "DEDUCTIONS")
	y -= 12

	// the two columns advance independently
	page.SetFont(pdf.Helvetica, 10)
	yl := y
	for _, comp := range c.Schema.Earnings() {
		page.DrawString(x0, yl, comp.Label)
		page.DrawRightString(mid-10, yl, FormatPeso(rec.Amount(comp.Field)))
		yl -= 12
	}
	yr := y
	for _, comp := range c.Schema.Deductions() {
		page.DrawString(mid+10, yr, comp.Label)
		page.DrawRightString(right, yr, FormatPeso(rec.Amount(comp.Field)))
		yr -= 12
	}

	y = min(yl, yr) - 10
	page.Line(x0, y, right, y)
	y -= 14

	page.SetFont(pdf.HelveticaBold, 11)
	page.DrawString(x0, y, "Gross Pay:")
	page.DrawRightString(mid-10, y, FormatPeso(totals.Gross))
	page.DrawString(mid+10, y, "Total Deductions:")
	page.DrawRightString(right, y, FormatPeso(totals.TotalDeductions))

	y -= 18
	page.SetFont(pdf.HelveticaBold, 12)
	page.DrawString(x0, y, "NET PAY:")
	page.DrawRightString(right, y, FormatPeso(totals.Net))

	y -= 20
	if notes := strings.TrimSpace(rec.Notes); notes != "" {
		page.SetFont(pdf.Helvetica, 9)
		page.DrawString(x0, y, "Notes: "+notes)
	}

	// footer sits at a fixed height whatever the content above did
	page.SetFont(pdf.Helvetica, 8)
	page.SetGray(footerGray)
	page.DrawString(x0, footerY, c.footer())
	page.SetGray(0)

	return Payslip{
		Filename:    PayslipFilename(emp.EmployeeID, start, end),
		EmployeeID:  strings.TrimSpace(emp.EmployeeID),
		PeriodStart: start,
		PeriodEnd:   end,
		Totals:      totals,
		Lines:       page.Texts(),
		Content:     page.Bytes(),
	}
}

func (c PayslipComposer) footer() string {
	label := strings.TrimSpace(c.PortalLabel)
	if label == "" {
		label = "HR"
	}
	return fmt.Sprintf("Generated on %s — %s Payroll Portal", c.now().Format("2006-01-02 15:04"), label)
}
