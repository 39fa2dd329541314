package payroll

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Column names of the monetary fields. They double as CSV headers and
// loose-row keys.
const (
	FieldBasicPay        = "basic_pay"
	FieldOvertimePay     = "overtime_pay"
	FieldAllowances      = "allowances"
	FieldBonus           = "bonus"
	FieldSSS             = "sss"
	FieldPhilHealth      = "philhealth"
	FieldPagIBIG         = "pagibig"
	FieldUndertime       = "undertime"
	FieldLate            = "late"
	FieldOtherDeductions = "other_deductions"
	FieldTax             = "tax"
)

type Component struct {
	Field    string
	Label    string
	Optional bool
}

var earningComponents = []Component{
	{Field: FieldBasicPay, Label: "Basic Pay"},
	{Field: FieldOvertimePay, Label: "Overtime Pay"},
	{Field: FieldAllowances, Label: "Allowances"},
	{Field: FieldBonus, Label: "Bonus", Optional: true},
}

var deductionComponents = []Component{
	{Field: FieldSSS, Label: "SSS"},
	{Field: FieldPhilHealth, Label: "PhilHealth"},
	{Field: FieldPagIBIG, Label: "Pag-IBIG"},
	{Field: FieldUndertime, Label: "Undertime", Optional: true},
	{Field: FieldLate, Label: "Late", Optional: true},
	{Field: FieldOtherDeductions, Label: "Other Deductions"},
	{Field: FieldTax, Label: "Withholding Tax"},
}

// Schema selects which optional components a deployment uses. The zero value
// has none of them.
type Schema struct {
	optional map[string]bool
}

func NewSchema(optional ...string) (Schema, error) {
	s := Schema{optional: map[string]bool{}}
	for _, raw := range optional {
		f := strings.ToLower(strings.TrimSpace(raw))
		if f == "" {
			continue
		}
		if !isOptionalField(f) {
			return Schema{}, fmt.Errorf("unknown optional payroll field %q", raw)
		}
		s.optional[f] = true
	}
	return s, nil
}

// FullSchema activates bonus, undertime and late.
func FullSchema() Schema {
	s, _ := NewSchema(FieldBonus, FieldUndertime, FieldLate)
	return s
}

func isOptionalField(f string) bool {
	c, ok := componentByField(f)
	return ok && c.Optional
}

func componentByField(field string) (Component, bool) {
	for _, list := range [][]Component{earningComponents, deductionComponents} {
		for _, c := range list {
			if c.Field == field {
				return c, true
			}
		}
	}
	return Component{}, false
}

func (s Schema) Active(field string) bool {
	c, ok := componentByField(field)
	if !ok {
		return false
	}
	return !c.Optional || s.optional[field]
}

// OptionalFields lists the active optional columns.
func (s Schema) OptionalFields() []string {
	var out []string
	for _, f := range s.Fields() {
		if c, _ := componentByField(f); c.Optional {
			out = append(out, f)
		}
	}
	return out
}

func (s Schema) filter(all []Component) []Component {
	out := make([]Component, 0, len(all))
	for _, c := range all {
		if s.Active(c.Field) {
			out = append(out, c)
		}
	}
	return out
}

// Earnings lists the active earning components in display order.
func (s Schema) Earnings() []Component {
	return s.filter(earningComponents)
}

// Deductions lists the active deduction components in display order.
func (s Schema) Deductions() []Component {
	return s.filter(deductionComponents)
}

// Fields returns every active monetary column, earnings first.
func (s Schema) Fields() []string {
	var out []string
	for _, c := range s.Earnings() {
		out = append(out, c.Field)
	}
	for _, c := range s.Deductions() {
		out = append(out, c.Field)
	}
	return out
}

// AllFields returns every monetary column regardless of schema.
func AllFields() []string {
	return FullSchema().Fields()
}

type Totals struct {
	Gross           decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
}

// Aggregate sums the active components of p. Net is not floored at zero.
func Aggregate(p Payroll, s Schema) Totals {
	return aggregate(p.Amount, s)
}

// AggregateRow is Aggregate over a loosely typed row with case-insensitive keys.
func AggregateRow(row map[string]any, s Schema) Totals {
	lookup := lowerKeys(row)
	return aggregate(func(field string) decimal.Decimal {
		return ParseAmount(lookup[field])
	}, s)
}

func aggregate(amount func(string) decimal.Decimal, s Schema) Totals {
	gross := decimal.Zero
	for _, c := range s.Earnings() {
		gross = gross.Add(amount(c.Field))
	}
	deductions := decimal.Zero
	for _, c := range s.Deductions() {
		deductions = deductions.Add(amount(c.Field))
	}
	return Totals{
		Gross:           gross,
		TotalDeductions: deductions,
		Net:             gross.Sub(deductions),
	}
}

func lowerKeys(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
