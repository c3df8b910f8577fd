package dashboard

const (
	TodayStatusOnLeave = "ON_LEAVE"
	TodayStatusWorking = "WORKING"
)

type EmployeeDashboardResponse struct {
	TotalLeaves    int64  `json:"total_leaves"`
	ApprovedLeaves int64  `json:"approved_leaves"`
	PendingLeaves  int64  `json:"pending_leaves"`
	TodayStatus    string `json:"today_status"`
}

type HRDashboardResponse struct {
	TotalEmployees int64 `json:"total_employees"`
	PresentToday   int64 `json:"present_today"`
	AbsentToday    int64 `json:"absent_today"`
	OnLeaveToday   int64 `json:"on_leave_today"`
	PendingLeaves  int64 `json:"pending_leaves"`
}
