package events

import "time"

const EmployeeCreatedTopic = "employee.created"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
