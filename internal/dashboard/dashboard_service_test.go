package dashboard

import (
	"context"
	"testing"
	"time"

	"dayflow/internal/attendance"
	"dayflow/internal/clock"
	"dayflow/internal/leave"
	leaveerrors "dayflow/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveStats struct {
	countForEmployeeFn       func(ctx context.Context, employeeID string) (leave.LeaveCounts, error)
	findApprovedByEmployeeFn func(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error)
	countOnLeaveFn           func(ctx context.Context, day time.Time) (int64, error)
	countPendingFn           func(ctx context.Context) (int64, error)
}

func (f *fakeLeaveStats) CountForEmployee(ctx context.Context, employeeID string) (leave.LeaveCounts, error) {
	return f.countForEmployeeFn(ctx, employeeID)
}
func (f *fakeLeaveStats) FindApprovedByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return f.findApprovedByEmployeeFn(ctx, employeeID)
}
func (f *fakeLeaveStats) CountOnLeave(ctx context.Context, day time.Time) (int64, error) {
	return f.countOnLeaveFn(ctx, day)
}
func (f *fakeLeaveStats) CountPending(ctx context.Context) (int64, error) {
	return f.countPendingFn(ctx)
}

type fakeWorkforce struct {
	countActiveEmployeesFn func(ctx context.Context) (int64, error)
}

func (f *fakeWorkforce) CountActiveEmployees(ctx context.Context) (int64, error) {
	return f.countActiveEmployeesFn(ctx)
}

type fakeDirectory struct {
	employeeIDByUserFn func(ctx context.Context, userID string) (uuid.UUID, error)
}

func (f *fakeDirectory) EmployeeIDByUser(ctx context.Context, userID string) (uuid.UUID, error) {
	return f.employeeIDByUserFn(ctx, userID)
}

func day(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func TestService_EmployeeDashboard(t *testing.T) {
	userID := uuid.New().String()
	employeeID := uuid.New()
	ctx := context.Background()
	today := day("2026-03-10").Add(9 * time.Hour)

	directory := &fakeDirectory{
		employeeIDByUserFn: func(ctx context.Context, uid string) (uuid.UUID, error) {
			assert.Equal(t, userID, uid)
			return employeeID, nil
		},
	}

	t.Run("working today", func(t *testing.T) {
		leaves := &fakeLeaveStats{
			countForEmployeeFn: func(ctx context.Context, eid string) (leave.LeaveCounts, error) {
				assert.Equal(t, employeeID.String(), eid)
				return leave.LeaveCounts{Total: 5, Approved: 3, Pending: 1}, nil
			},
			findApprovedByEmployeeFn: func(ctx context.Context, eid string) ([]leave.LeaveRequest, error) {
				return []leave.LeaveRequest{
					{FromDate: day("2026-02-01"), ToDate: day("2026-02-03"), Status: leave.StatusApproved},
				}, nil
			},
		}

		svc := NewService(leaves, &fakeWorkforce{}, directory, attendance.NewUnimplementedProvider(), clock.Fixed(today))

		resp, err := svc.EmployeeDashboard(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), resp.TotalLeaves)
		assert.Equal(t, int64(3), resp.ApprovedLeaves)
		assert.Equal(t, int64(1), resp.PendingLeaves)
		assert.Equal(t, TodayStatusWorking, resp.TodayStatus)
	})

	t.Run("on leave today", func(t *testing.T) {
		leaves := &fakeLeaveStats{
			countForEmployeeFn: func(ctx context.Context, eid string) (leave.LeaveCounts, error) {
				return leave.LeaveCounts{Total: 2, Approved: 2}, nil
			},
			findApprovedByEmployeeFn: func(ctx context.Context, eid string) ([]leave.LeaveRequest, error) {
				return []leave.LeaveRequest{
					{FromDate: day("2026-03-09"), ToDate: day("2026-03-11"), Status: leave.StatusApproved},
				}, nil
			},
		}

		svc := NewService(leaves, &fakeWorkforce{}, directory, attendance.NewUnimplementedProvider(), clock.Fixed(today))

		resp, err := svc.EmployeeDashboard(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, TodayStatusOnLeave, resp.TodayStatus)
	})

	t.Run("leave ending yesterday counts as working", func(t *testing.T) {
		leaves := &fakeLeaveStats{
			countForEmployeeFn: func(ctx context.Context, eid string) (leave.LeaveCounts, error) {
				return leave.LeaveCounts{Total: 1, Approved: 1}, nil
			},
			findApprovedByEmployeeFn: func(ctx context.Context, eid string) ([]leave.LeaveRequest, error) {
				return []leave.LeaveRequest{
					{FromDate: day("2026-03-05"), ToDate: day("2026-03-09"), Status: leave.StatusApproved},
				}, nil
			},
		}

		svc := NewService(leaves, &fakeWorkforce{}, directory, attendance.NewUnimplementedProvider(), clock.Fixed(today))

		resp, err := svc.EmployeeDashboard(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, TodayStatusWorking, resp.TodayStatus)
	})

	t.Run("negative user without employee record", func(t *testing.T) {
		orphan := &fakeDirectory{
			employeeIDByUserFn: func(ctx context.Context, uid string) (uuid.UUID, error) {
				return uuid.Nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewService(&fakeLeaveStats{}, &fakeWorkforce{}, orphan, attendance.NewUnimplementedProvider(), clock.Fixed(today))

		_, err := svc.EmployeeDashboard(ctx, userID)
		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeRecordNotFound)
	})
}

func TestService_HRDashboard(t *testing.T) {
	ctx := context.Background()
	today := day("2026-03-10").Add(9 * time.Hour)

	t.Run("success", func(t *testing.T) {
		leaves := &fakeLeaveStats{
			countOnLeaveFn: func(ctx context.Context, d time.Time) (int64, error) {
				assert.Equal(t, today, d)
				return 2, nil
			},
			countPendingFn: func(ctx context.Context) (int64, error) { return 4, nil },
		}
		workforce := &fakeWorkforce{
			countActiveEmployeesFn: func(ctx context.Context) (int64, error) { return 10, nil },
		}

		svc := NewService(leaves, workforce, &fakeDirectory{}, attendance.NewUnimplementedProvider(), clock.Fixed(today))

		resp, err := svc.HRDashboard(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), resp.TotalEmployees)
		assert.Equal(t, int64(0), resp.PresentToday)
		assert.Equal(t, int64(2), resp.OnLeaveToday)
		assert.Equal(t, int64(8), resp.AbsentToday)
		assert.Equal(t, int64(4), resp.PendingLeaves)
	})

	t.Run("absent count floors at zero", func(t *testing.T) {
		leaves := &fakeLeaveStats{
			countOnLeaveFn: func(ctx context.Context, d time.Time) (int64, error) { return 5, nil },
			countPendingFn: func(ctx context.Context) (int64, error) { return 0, nil },
		}
		workforce := &fakeWorkforce{
			countActiveEmployeesFn: func(ctx context.Context) (int64, error) { return 3, nil },
		}

		svc := NewService(leaves, workforce, &fakeDirectory{}, attendance.NewUnimplementedProvider(), clock.Fixed(today))

		resp, err := svc.HRDashboard(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), resp.AbsentToday)
	})

	t.Run("zero employees", func(t *testing.T) {
		leaves := &fakeLeaveStats{
			countOnLeaveFn: func(ctx context.Context, d time.Time) (int64, error) { return 0, nil },
			countPendingFn: func(ctx context.Context) (int64, error) { return 0, nil },
		}
		workforce := &fakeWorkforce{
			countActiveEmployeesFn: func(ctx context.Context) (int64, error) { return 0, nil },
		}

		svc := NewService(leaves, workforce, &fakeDirectory{}, attendance.NewUnimplementedProvider(), clock.Fixed(today))

		resp, err := svc.HRDashboard(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), resp.TotalEmployees)
		assert.Equal(t, int64(0), resp.AbsentToday)
	})

	t.Run("negative store failure surfaces", func(t *testing.T) {
		leaves := &fakeLeaveStats{
			countOnLeaveFn: func(ctx context.Context, d time.Time) (int64, error) {
				return 0, assert.AnError
			},
		}
		workforce := &fakeWorkforce{
			countActiveEmployeesFn: func(ctx context.Context) (int64, error) { return 10, nil },
		}

		svc := NewService(leaves, workforce, &fakeDirectory{}, attendance.NewUnimplementedProvider(), clock.Fixed(today))

		_, err := svc.HRDashboard(ctx)
		assert.Error(t, err)
	})
}
