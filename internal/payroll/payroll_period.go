package payroll

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

var errInvalidDate = errors.New("invalid date")

// DateOnly drops time-of-day and zone, keeping the calendar date as written.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts the date shapes spreadsheets and forms produce.
func ParseDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return time.Time{}, errInvalidDate
		}
		return DateOnly(x), nil
	case *time.Time:
		if x == nil {
			return time.Time{}, errInvalidDate
		}
		return ParseDate(*x)
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return DateOnly(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", errInvalidDate, x)
	}
	return time.Time{}, fmt.Errorf("%w: %v", errInvalidDate, v)
}

// Key identifies a pay period of one employee.
type Key struct {
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

func NewKey(empID string, start, end time.Time) Key {
	return Key{
		EmployeeID:  strings.TrimSpace(empID),
		PeriodStart: DateOnly(start),
		PeriodEnd:   DateOnly(end),
	}
}

func KeyOf(p Payroll) Key {
	return NewKey(p.EmployeeID, p.PeriodStart, p.PeriodEnd)
}

func (k Key) String() string {
	return k.EmployeeID + "/" + k.PeriodStart.Format(DateLayout) + "/" + k.PeriodEnd.Format(DateLayout)
}

// PeriodLabel renders "2025-08-01 to 2025-08-15".
func PeriodLabel(start, end time.Time) string {
	return start.Format(DateLayout) + " to " + end.Format(DateLayout)
}
