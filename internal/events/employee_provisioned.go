package events

import "time"

const EmployeeProvisionedTopic = "dayflow.employee.lifecycle.v1"

type EmployeeProvisionedEvent struct {
	EventType    string    `json:"event_type"`
	EmployeeID   string    `json:"employee_id"`
	UserID       string    `json:"user_id"`
	EmployeeCode string    `json:"employee_code"`
	Department   string    `json:"department"`
	OccurredAt   time.Time `json:"occurred_at"`
}
