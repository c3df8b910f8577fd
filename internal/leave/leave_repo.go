package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveCounts are the per-employee totals the dashboard shows.
type LeaveCounts struct {
	Total    int64
	Approved int64
	Pending  int64
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindApprovedByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindPending(ctx context.Context) ([]PendingLeave, error)
	Update(ctx context.Context, l *LeaveRequest) error
	HasOverlapping(ctx context.Context, employeeID string, fromDate, toDate time.Time) (bool, error)
	OnLeaveEmployeeSet(ctx context.Context, employeeIDs []uuid.UUID, day time.Time) (map[uuid.UUID]struct{}, error)
	CountOnLeave(ctx context.Context, day time.Time) (int64, error)
	CountForEmployee(ctx context.Context, employeeID string) (LeaveCounts, error)
	CountPending(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindApprovedByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindPending(ctx context.Context) ([]PendingLeave, error) {
	var rows []PendingLeave
	err := r.db.WithContext(ctx).
		Table("leave_requests AS lr").
		Select(`lr.id, lr.employee_id, lr.from_date, lr.to_date, lr.reason,
			lr.attachment_id, lr.status, lr.created_at,
			u.name AS employee_name, u.email AS employee_email,
			e.department, e.designation`).
		Joins("JOIN employees e ON e.id = lr.employee_id").
		Joins("JOIN users u ON u.id = e.user_id").
		Where("lr.status = ?", StatusPending).
		Order("lr.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// HasOverlapping checks the candidate inclusive range against the
// employee's PENDING and APPROVED requests using the half-open day
// model. REJECTED rows never conflict.
func (r *repository) HasOverlapping(ctx context.Context, employeeID string, fromDate, toDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("from_date < ?", NextDay(toDate)).
		Where("to_date >= ?", DayStart(fromDate)).
		Count(&count).Error
	return count > 0, err
}

// OnLeaveEmployeeSet resolves "who is on approved leave today" for a
// whole roster in one query, never per employee.
func (r *repository) OnLeaveEmployeeSet(ctx context.Context, employeeIDs []uuid.UUID, day time.Time) (map[uuid.UUID]struct{}, error) {
	set := make(map[uuid.UUID]struct{}, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return set, nil
	}

	today, tomorrow := DayBounds(day)

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Distinct("employee_id").
		Where("employee_id IN ?", employeeIDs).
		Where("status = ?", StatusApproved).
		Where("from_date < ?", tomorrow).
		Where("to_date >= ?", today).
		Pluck("employee_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *repository) CountOnLeave(ctx context.Context, day time.Time) (int64, error) {
	today, tomorrow := DayBounds(day)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Distinct("employee_id").
		Where("status = ?", StatusApproved).
		Where("from_date < ?", tomorrow).
		Where("to_date >= ?", today).
		Count(&count).Error
	return count, err
}

func (r *repository) CountForEmployee(ctx context.Context, employeeID string) (LeaveCounts, error) {
	var counts LeaveCounts
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS approved,
			COUNT(*) FILTER (WHERE status = ?) AS pending
		FROM leave_requests
		WHERE employee_id = ?
	`, StatusApproved, StatusPending, employeeID).Scan(&counts).Error
	return counts, err
}

func (r *repository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("status = ?", StatusPending).
		Count(&count).Error
	return count, err
}
