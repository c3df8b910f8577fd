package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dayflow/internal/clock"
	leaveerrors "dayflow/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory resolves the authenticated user to their employee
// record. Implemented by the employee repository.
type EmployeeDirectory interface {
	EmployeeIDByUser(ctx context.Context, userID string) (uuid.UUID, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, userID string, req SubmitLeaveRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, userID string) ([]LeaveResponse, error)
	ListPending(ctx context.Context) ([]PendingLeaveResponse, error)
	Approve(ctx context.Context, id, approverID string) (LeaveResponse, error)
	Reject(ctx context.Context, id string, req RejectLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	clk       clock.Clock
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory EmployeeDirectory, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{db: db, repo: repo, directory: directory, clk: clk, logger: l}
}

func (s *service) Submit(ctx context.Context, userID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("user_id", userID),
		zap.String("from_date", req.FromDate),
		zap.String("to_date", req.ToDate),
	)

	fromDate, toDate, attachmentID, err := validateSubmitRequest(req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	employeeID, err := s.resolveEmployee(ctx, userID)
	if err != nil {
		return LeaveResponse{}, err
	}

	// Overlap check and insert share one transaction; the store's
	// exclusion constraint backstops concurrent submissions that race
	// past the check.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlapping(ctx, employeeID.String(), fromDate, toDate)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("submit leave overlap detected",
			zap.String("employee_id", employeeID.String()),
			zap.String("from_date", req.FromDate),
			zap.String("to_date", req.ToDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		FromDate:     fromDate,
		ToDate:       toDate,
		AttachmentID: attachmentID,
		Status:       StatusPending,
	}
	if req.Reason != "" {
		reason := req.Reason
		l.Reason = &reason
	}

	if err := qtx.Create(ctx, l); err != nil {
		if isRangeConflict(err) {
			return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
		}
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		if isRangeConflict(err) {
			return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
		}
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID.String()),
	)

	return mapToResponse(*l), nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]LeaveResponse, error) {
	employeeID, err := s.resolveEmployee(ctx, userID)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID.String())
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListPending(ctx context.Context) ([]PendingLeaveResponse, error) {
	rows, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToPendingResponse(rows), nil
}

// Approve sets APPROVED plus approver identity and timestamp. The
// current status is intentionally not checked: re-deciding an already
// decided request is permitted, matching the product's observed
// behavior. No overlap re-check happens at approval time.
func (s *service) Approve(ctx context.Context, id, approverID string) (LeaveResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidApproverID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	now := s.clk.Now()
	l.Status = StatusApproved
	l.ApprovedBy = &approverUUID
	l.ApprovedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
	)
	return mapToResponse(*l), nil
}

// Reject sets REJECTED. A supplied reason overwrites the stored one;
// an empty reason leaves it untouched. No rejectedBy/rejectedAt fields
// exist, asymmetric with approval on purpose.
func (s *service) Reject(ctx context.Context, id string, req RejectLeaveRequest) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	l.Status = StatusRejected
	if req.Reason != "" {
		reason := req.Reason
		l.Reason = &reason
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("reject leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("reject leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("reject leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) resolveEmployee(ctx context.Context, userID string) (uuid.UUID, error) {
	employeeID, err := s.directory.EmployeeIDByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, leaveerrors.ErrEmployeeRecordNotFound
		}
		s.logger.Error("resolve employee failed", zap.String("user_id", userID), zap.Error(err))
		return uuid.Nil, err
	}
	return employeeID, nil
}

func validateSubmitRequest(req SubmitLeaveRequest) (time.Time, time.Time, *uuid.UUID, error) {
	fromDate, err := parseDate(req.FromDate)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	toDate, err := parseDate(req.ToDate)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	if fromDate.After(toDate) {
		return time.Time{}, time.Time{}, nil, leaveerrors.ErrInvalidDateRange
	}

	var attachmentID *uuid.UUID
	if req.AttachmentID != "" {
		id, err := uuid.Parse(req.AttachmentID)
		if err != nil {
			return time.Time{}, time.Time{}, nil, leaveerrors.ErrInvalidAttachmentID
		}
		attachmentID = &id
	}
	return fromDate, toDate, attachmentID, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// isRangeConflict recognizes the postgres exclusion (or unique)
// constraint firing on the employee/date-range pair.
func isRangeConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23P01" || pgErr.Code == "23505"
}
