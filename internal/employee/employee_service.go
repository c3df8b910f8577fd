package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dayflow/internal/attendance"
	"dayflow/internal/clock"
	employeeerrors "dayflow/internal/employee/errors"
	"dayflow/internal/events"
	"dayflow/internal/messaging/kafka"
	"dayflow/internal/shared/contextutil"
	"dayflow/internal/shared/counter"
	"dayflow/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeaveLookup is the slice of the leave store the roster needs: the
// single batched on-leave query. Satisfied by leave.Repository.
type LeaveLookup interface {
	OnLeaveEmployeeSet(ctx context.Context, employeeIDs []uuid.UUID, day time.Time) (map[uuid.UUID]struct{}, error)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Provision(ctx context.Context, req ProvisionEmployeeRequest) (EmployeeResponse, error)
	Me(ctx context.Context, userID string) (EmployeeResponse, error)
	UpdateMyProfile(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)
	Roster(ctx context.Context, search, department string) ([]RosterEntryResponse, error)
	GetByID(ctx context.Context, userID string) (EmployeeResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	users    user.Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	leaves   LeaveLookup
	presence attendance.Provider
	clk      clock.Clock
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	leaves LeaveLookup,
	presence attendance.Provider,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:       db,
		repo:     repo,
		users:    users,
		counter:  counterRepo,
		outbox:   outboxRepo,
		leaves:   leaves,
		presence: presence,
		clk:      clk,
		logger:   l,
	}
}

func (s *service) Provision(ctx context.Context, req ProvisionEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("provision employee requested",
		zap.String("request_id", rid),
		zap.String("user_id", req.UserID),
		zap.String("department", req.Department),
	)

	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidUserID
	}
	dateOfJoin, err := time.Parse("2006-01-02", req.DateOfJoin)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateOfJoin
	}

	u, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrUserNotFound
		}
		return EmployeeResponse{}, err
	}

	nextVal, err := s.counter.GetNextValue(ctx, "employee_code")
	if err != nil {
		s.logger.Error("provision employee generate code failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	code := fmt.Sprintf("EMP-%04d", nextVal)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("provision employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Employee{
		ID:           uuid.New(),
		UserID:       userUUID,
		EmployeeCode: code,
		Department:   req.Department,
		Designation:  req.Designation,
		DateOfJoin:   dateOfJoin,
	}
	if err := qtx.Create(ctx, e); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrAlreadyProvisioned
		}
		s.logger.Error("provision employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if s.outbox != nil {
		payload, err := json.Marshal(events.EmployeeProvisionedEvent{
			EventType:    "employee.provisioned",
			EmployeeID:   e.ID.String(),
			UserID:       e.UserID.String(),
			EmployeeCode: e.EmployeeCode,
			Department:   e.Department,
			OccurredAt:   s.clk.Now(),
		})
		if err != nil {
			return EmployeeResponse{}, err
		}
		event := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   e.ID.String(),
			EventType:     "employee.provisioned",
			Topic:         events.EmployeeProvisionedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("provision employee outbox append failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrAlreadyProvisioned
		}
		s.logger.Error("provision employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("provision employee success",
		zap.String("employee_id", e.ID.String()),
		zap.String("employee_code", code),
	)

	return EmployeeResponse{
		UserID:       u.ID.String(),
		EmployeeID:   e.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		IsActive:     u.IsActive,
		EmployeeCode: e.EmployeeCode,
		Department:   e.Department,
		Designation:  e.Designation,
		DateOfJoin:   formatDate(e.DateOfJoin),
	}, nil
}

func (s *service) Me(ctx context.Context, userID string) (EmployeeResponse, error) {
	return s.buildEmployeeView(ctx, userID, false)
}

func (s *service) GetByID(ctx context.Context, userID string) (EmployeeResponse, error) {
	return s.buildEmployeeView(ctx, userID, true)
}

func (s *service) buildEmployeeView(ctx context.Context, userID string, includeIdentity bool) (EmployeeResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	e, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	resp := EmployeeResponse{
		UserID:       u.ID.String(),
		EmployeeID:   e.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		LoginID:      u.LoginID,
		IsActive:     u.IsActive,
		EmployeeCode: e.EmployeeCode,
		Department:   e.Department,
		Designation:  e.Designation,
		DateOfJoin:   formatDate(e.DateOfJoin),
	}
	if includeIdentity {
		resp.Role = u.Role
	}

	profile, err := s.repo.FindProfile(ctx, e.ID.String())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, err
		}
		// No profile yet: the extension is created lazily.
	} else {
		resp.Profile = mapProfile(profile)
	}

	return resp, nil
}

// UpdateMyProfile merges the provided fields over the stored profile
// and upserts the result, so the row appears on first update and
// untouched fields survive later partial updates.
func (s *service) UpdateMyProfile(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error) {
	e, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, employeeerrors.ErrEmployeeRecordNotFound
		}
		return ProfileResponse{}, err
	}

	profile, err := s.repo.FindProfile(ctx, e.ID.String())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, err
		}
		profile = &EmployeeProfile{
			ID:         uuid.New(),
			EmployeeID: e.ID,
		}
	}

	if err := applyProfilePatch(profile, req); err != nil {
		return ProfileResponse{}, err
	}

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		s.logger.Error("update profile persist failed",
			zap.String("employee_id", e.ID.String()),
			zap.Error(err),
		)
		return ProfileResponse{}, err
	}
	s.logger.Info("update profile success", zap.String("employee_id", e.ID.String()))

	return *mapProfile(profile), nil
}

func (s *service) Roster(ctx context.Context, search, department string) ([]RosterEntryResponse, error) {
	rows, err := s.repo.Roster(ctx, search, department)
	if err != nil {
		return nil, err
	}
	// An empty roster is a valid empty result, not an error.
	if len(rows) == 0 {
		return []RosterEntryResponse{}, nil
	}

	employeeIDs := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		employeeIDs[i] = row.EmployeeID
	}

	now := s.clk.Now()

	// One batched query for the whole roster, never one per employee.
	onLeaveSet, err := s.leaves.OnLeaveEmployeeSet(ctx, employeeIDs, now)
	if err != nil {
		return nil, err
	}
	presentSet, err := s.presence.PresentSet(ctx, now)
	if err != nil {
		return nil, err
	}

	resp := make([]RosterEntryResponse, len(rows))
	for i, row := range rows {
		status := WorkStatusAbsent
		if _, ok := presentSet[row.EmployeeID]; ok {
			status = WorkStatusPresent
		} else if _, ok := onLeaveSet[row.EmployeeID]; ok {
			status = WorkStatusOnLeave
		}
		resp[i] = RosterEntryResponse{
			UserID:      row.UserID.String(),
			EmployeeID:  row.EmployeeID.String(),
			Name:        row.Name,
			Email:       row.Email,
			Department:  row.Department,
			Designation: row.Designation,
			WorkStatus:  status,
		}
	}
	return resp, nil
}

func applyProfilePatch(p *EmployeeProfile, req UpdateProfileRequest) error {
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return employeeerrors.ErrInvalidDateOfBirth
		}
		p.DateOfBirth = &dob
	}
	if req.Gender != nil {
		p.Gender = req.Gender
	}
	if req.AddressLine != nil {
		p.AddressLine = req.AddressLine
	}
	if req.City != nil {
		p.City = req.City
	}
	if req.State != nil {
		p.State = req.State
	}
	if req.Country != nil {
		p.Country = req.Country
	}
	if req.Pincode != nil {
		p.Pincode = req.Pincode
	}
	if req.EmergencyContactName != nil {
		p.EmergencyContactName = req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		p.EmergencyContactPhone = req.EmergencyContactPhone
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505"
}
