package leave

import "time"

type SubmitLeaveRequest struct {
	FromDate     string `json:"from_date" binding:"required"`
	ToDate       string `json:"to_date" binding:"required"`
	Reason       string `json:"reason"`
	AttachmentID string `json:"attachment_id" binding:"omitempty,uuid"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	FromDate     string  `json:"from_date"`
	ToDate       string  `json:"to_date"`
	Reason       *string `json:"reason,omitempty"`
	AttachmentID *string `json:"attachment_id,omitempty"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type PendingLeaveResponse struct {
	LeaveResponse
	EmployeeName  string `json:"employee_name"`
	EmployeeEmail string `json:"employee_email"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		FromDate:   l.FromDate.Format("2006-01-02"),
		ToDate:     l.ToDate.Format("2006-01-02"),
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.AttachmentID != nil {
		v := l.AttachmentID.String()
		resp.AttachmentID = &v
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapToPendingResponse(rows []PendingLeave) []PendingLeaveResponse {
	resp := make([]PendingLeaveResponse, len(rows))
	for i, r := range rows {
		resp[i] = PendingLeaveResponse{
			LeaveResponse: mapToResponse(LeaveRequest{
				ID:           r.ID,
				EmployeeID:   r.EmployeeID,
				FromDate:     r.FromDate,
				ToDate:       r.ToDate,
				Reason:       r.Reason,
				AttachmentID: r.AttachmentID,
				Status:       r.Status,
				CreatedAt:    r.CreatedAt,
			}),
			EmployeeName:  r.EmployeeName,
			EmployeeEmail: r.EmployeeEmail,
			Department:    r.Department,
			Designation:   r.Designation,
		}
	}
	return resp
}
