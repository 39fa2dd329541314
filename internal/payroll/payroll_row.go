package payroll

import (
	"fmt"
	"strings"
	"time"
)

// RecordFromRow builds a Payroll from a loosely typed row, such as a CSV line
// or a JSON body. Keys are case-insensitive. emp_id and both period dates are
// required; amounts never fail. Optional fields outside the schema, or left
// blank, stay absent.
func RecordFromRow(row map[string]any, s Schema) (Payroll, error) {
	lookup := lowerKeys(row)

	empID := strings.TrimSpace(fmt.Sprint(valueOr(lookup["emp_id"], "")))
	if empID == "" {
		return Payroll{}, fmt.Errorf("emp_id is required")
	}
	start, err := ParseDate(lookup["period_start"])
	if err != nil {
		return Payroll{}, fmt.Errorf("period_start: %w", err)
	}
	end, err := ParseDate(lookup["period_end"])
	if err != nil {
		return Payroll{}, fmt.Errorf("period_end: %w", err)
	}

	rec := Payroll{
		EmployeeID:  empID,
		PeriodStart: start,
		PeriodEnd:   end,
		Notes:       noteText(lookup["notes"]),
	}
	for _, field := range AllFields() {
		raw, ok := lookup[field]
		c, _ := componentByField(field)
		if c.Optional && (!s.Active(field) || !ok || isBlank(raw)) {
			continue
		}
		rec.SetAmount(field, ParseAmount(raw))
	}
	return rec, nil
}

// ToRow is the inverse of RecordFromRow for exports. Absent optionals are
// empty strings.
func ToRow(p Payroll) map[string]any {
	row := map[string]any{
		"id":           p.ID,
		"emp_id":       p.EmployeeID,
		"period_start": p.PeriodStart.Format(DateLayout),
		"period_end":   p.PeriodEnd.Format(DateLayout),
		"notes":        p.Notes,
		"created_at":   p.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, field := range AllFields() {
		if p.Present(field) {
			row[field] = p.Amount(field).StringFixed(2)
		} else {
			row[field] = ""
		}
	}
	return row
}

func valueOr(v any, def any) any {
	if v == nil {
		return def
	}
	return v
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	}
	return false
}

func noteText(v any) string {
	if v == nil {
		return ""
	}
	n := strings.TrimSpace(fmt.Sprint(v))
	if isBlankNote(n) {
		return ""
	}
	return n
}
