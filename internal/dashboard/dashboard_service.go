package dashboard

import (
	"context"
	"errors"
	"time"

	"dayflow/internal/attendance"
	"dayflow/internal/clock"
	"dayflow/internal/leave"
	leaveerrors "dayflow/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// LeaveStats is the slice of the leave store the aggregator reads.
// Satisfied by leave.Repository.
type LeaveStats interface {
	CountForEmployee(ctx context.Context, employeeID string) (leave.LeaveCounts, error)
	FindApprovedByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error)
	CountOnLeave(ctx context.Context, day time.Time) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

// Workforce counts role-qualified identities. Satisfied by
// user.Repository.
type Workforce interface {
	CountActiveEmployees(ctx context.Context) (int64, error)
}

// EmployeeDirectory resolves the authenticated user to their employee
// record. Satisfied by employee.Repository.
type EmployeeDirectory interface {
	EmployeeIDByUser(ctx context.Context, userID string) (uuid.UUID, error)
}

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	EmployeeDashboard(ctx context.Context, userID string) (EmployeeDashboardResponse, error)
	HRDashboard(ctx context.Context) (HRDashboardResponse, error)
}

type service struct {
	leaves    LeaveStats
	workforce Workforce
	directory EmployeeDirectory
	presence  attendance.Provider
	clk       clock.Clock
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	leaves LeaveStats,
	workforce Workforce,
	directory EmployeeDirectory,
	presence attendance.Provider,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		leaves:    leaves,
		workforce: workforce,
		directory: directory,
		presence:  presence,
		clk:       clk,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) EmployeeDashboard(ctx context.Context, userID string) (EmployeeDashboardResponse, error) {
	employeeID, err := s.directory.EmployeeIDByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeDashboardResponse{}, leaveerrors.ErrEmployeeRecordNotFound
		}
		return EmployeeDashboardResponse{}, err
	}

	counts, err := s.leaves.CountForEmployee(ctx, employeeID.String())
	if err != nil {
		s.logger.Error("employee dashboard counts failed", zap.Error(err))
		return EmployeeDashboardResponse{}, err
	}

	approved, err := s.leaves.FindApprovedByEmployee(ctx, employeeID.String())
	if err != nil {
		s.logger.Error("employee dashboard approved leaves failed", zap.Error(err))
		return EmployeeDashboardResponse{}, err
	}

	todayStatus := TodayStatusWorking
	if leave.OnLeaveToday(approved, s.clk.Now()) {
		todayStatus = TodayStatusOnLeave
	}

	return EmployeeDashboardResponse{
		TotalLeaves:    counts.Total,
		ApprovedLeaves: counts.Approved,
		PendingLeaves:  counts.Pending,
		TodayStatus:    todayStatus,
	}, nil
}

// HRDashboard recomputes the org-wide summary on every call; there is
// no cache. Concurrent callers share one in-flight computation via
// singleflight, each still receiving a value computed at call time.
func (s *service) HRDashboard(ctx context.Context) (HRDashboardResponse, error) {
	v, err, _ := s.sf.Do("hr_dashboard", func() (any, error) {
		return s.computeHRDashboard(ctx)
	})
	if err != nil {
		return HRDashboardResponse{}, err
	}
	return v.(HRDashboardResponse), nil
}

func (s *service) computeHRDashboard(ctx context.Context) (HRDashboardResponse, error) {
	now := s.clk.Now()

	totalEmployees, err := s.workforce.CountActiveEmployees(ctx)
	if err != nil {
		s.logger.Error("hr dashboard count employees failed", zap.Error(err))
		return HRDashboardResponse{}, err
	}

	presentToday, err := s.presence.PresentToday(ctx, now)
	if err != nil {
		s.logger.Error("hr dashboard present count failed", zap.Error(err))
		return HRDashboardResponse{}, err
	}

	onLeaveToday, err := s.leaves.CountOnLeave(ctx, now)
	if err != nil {
		s.logger.Error("hr dashboard on-leave count failed", zap.Error(err))
		return HRDashboardResponse{}, err
	}

	pendingLeaves, err := s.leaves.CountPending(ctx)
	if err != nil {
		s.logger.Error("hr dashboard pending count failed", zap.Error(err))
		return HRDashboardResponse{}, err
	}

	// Floored at zero: the placeholder present count can disagree with
	// reality and the absent figure must never go negative.
	absentToday := totalEmployees - presentToday - onLeaveToday
	if absentToday < 0 {
		absentToday = 0
	}

	return HRDashboardResponse{
		TotalEmployees: totalEmployees,
		PresentToday:   presentToday,
		AbsentToday:    absentToday,
		OnLeaveToday:   onLeaveToday,
		PendingLeaves:  pendingLeaves,
	}, nil
}
