package events

import "time"

const (
	PayslipRequestedEventType = "payroll.payslip.requested"
	PayslipRequestedTopic     = "payroll.payslip.requested.v1"
)

// PayslipRequestedEvent asks the consumer to render and archive the payslip
// of one payroll row.
type PayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	PayrollID   uint      `json:"payroll_id"`
	EmployeeID  string    `json:"emp_id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
