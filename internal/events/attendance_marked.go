package events

import "time"

const AttendanceMarkedTopic = "attendance.marked"

type AttendanceMarkedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	RecordID    string    `json:"record_id"`
	EmployeeID  string    `json:"employee_id"`
	Kind        string    `json:"kind"`
	HoursWorked *float64  `json:"hours_worked,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
