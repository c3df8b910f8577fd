package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// LeaveRequest covers an inclusive calendar range [FromDate, ToDate].
// Rejection intentionally records no actor or timestamp; only approval
// does.
type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	FromDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	ToDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`

	Reason       *string    `gorm:"type:text"`
	AttachmentID *uuid.UUID `gorm:"type:uuid"`

	Status     string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingLeave is the HR review projection: a pending request joined
// with the owning employee's display fields. Flat so gorm can scan the
// joined row directly.
type PendingLeave struct {
	ID           uuid.UUID
	EmployeeID   uuid.UUID
	FromDate     time.Time
	ToDate       time.Time
	Reason       *string
	AttachmentID *uuid.UUID
	Status       string
	CreatedAt    time.Time

	EmployeeName  string
	EmployeeEmail string
	Department    string
	Designation   string
}
