package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EmployeeCode string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	Department   string    `gorm:"type:varchar(100);not null;index"`
	Designation  string    `gorm:"type:varchar(100);not null"`
	DateOfJoin   time.Time `gorm:"type:date;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeProfile extends Employee 1:1 with contact details. Created
// lazily on the first profile update, never deleted.
type EmployeeProfile struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Phone                 *string    `gorm:"type:varchar(30)"`
	DateOfBirth           *time.Time `gorm:"type:date"`
	Gender                *string    `gorm:"type:varchar(20)"`
	AddressLine           *string    `gorm:"type:text"`
	City                  *string    `gorm:"type:varchar(100)"`
	State                 *string    `gorm:"type:varchar(100)"`
	Country               *string    `gorm:"type:varchar(100)"`
	Pincode               *string    `gorm:"type:varchar(20)"`
	EmergencyContactName  *string    `gorm:"type:varchar(255)"`
	EmergencyContactPhone *string    `gorm:"type:varchar(30)"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// RosterRow is the joined user+employee projection backing the HR
// roster. Flat so gorm scans it directly.
type RosterRow struct {
	UserID      uuid.UUID
	EmployeeID  uuid.UUID
	Name        string
	Email       string
	Department  string
	Designation string
	CreatedAt   time.Time
}
