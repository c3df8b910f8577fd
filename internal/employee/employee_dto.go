package employee

import "time"

type ProvisionEmployeeRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	Department  string `json:"department" binding:"required"`
	Designation string `json:"designation" binding:"required"`
	DateOfJoin  string `json:"date_of_join" binding:"required"`
}

// UpdateProfileRequest carries only the fields an employee may edit;
// absent fields are left untouched.
type UpdateProfileRequest struct {
	Phone                 *string `json:"phone"`
	DateOfBirth           *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender                *string `json:"gender"`
	AddressLine           *string `json:"address_line"`
	City                  *string `json:"city"`
	State                 *string `json:"state"`
	Country               *string `json:"country"`
	Pincode               *string `json:"pincode"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
}

type ProfileResponse struct {
	Phone                 *string `json:"phone,omitempty"`
	DateOfBirth           *string `json:"date_of_birth,omitempty"`
	Gender                *string `json:"gender,omitempty"`
	AddressLine           *string `json:"address_line,omitempty"`
	City                  *string `json:"city,omitempty"`
	State                 *string `json:"state,omitempty"`
	Country               *string `json:"country,omitempty"`
	Pincode               *string `json:"pincode,omitempty"`
	EmergencyContactName  *string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string `json:"emergency_contact_phone,omitempty"`
}

type EmployeeResponse struct {
	UserID       string           `json:"user_id"`
	EmployeeID   string           `json:"employee_id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	LoginID      string           `json:"login_id,omitempty"`
	Role         string           `json:"role,omitempty"`
	IsActive     bool             `json:"is_active"`
	EmployeeCode string           `json:"employee_code"`
	Department   string           `json:"department"`
	Designation  string           `json:"designation"`
	DateOfJoin   string           `json:"date_of_join"`
	Profile      *ProfileResponse `json:"profile,omitempty"`
}

const (
	WorkStatusPresent = "PRESENT"
	WorkStatusOnLeave = "ON_LEAVE"
	WorkStatusAbsent  = "ABSENT"
)

type RosterEntryResponse struct {
	UserID      string `json:"user_id"`
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	WorkStatus  string `json:"work_status"`
}

func mapProfile(p *EmployeeProfile) *ProfileResponse {
	if p == nil {
		return nil
	}
	resp := &ProfileResponse{
		Phone:                 p.Phone,
		Gender:                p.Gender,
		AddressLine:           p.AddressLine,
		City:                  p.City,
		State:                 p.State,
		Country:               p.Country,
		Pincode:               p.Pincode,
		EmergencyContactName:  p.EmergencyContactName,
		EmergencyContactPhone: p.EmergencyContactPhone,
	}
	if p.DateOfBirth != nil {
		v := formatDate(*p.DateOfBirth)
		resp.DateOfBirth = &v
	}
	return resp
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
