package employee

import (
	"context"
	"database/sql"

	"dayflow/internal/rbac"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	EmployeeIDByUser(ctx context.Context, userID string) (uuid.UUID, error)
	FindProfile(ctx context.Context, employeeID string) (*EmployeeProfile, error)
	UpsertProfile(ctx context.Context, p *EmployeeProfile) error
	Roster(ctx context.Context, search, department string) ([]RosterRow, error)
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "user_id = ?", userID).Error
	return &e, err
}

func (r *repository) EmployeeIDByUser(ctx context.Context, userID string) (uuid.UUID, error) {
	e, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	return e.ID, nil
}

func (r *repository) FindProfile(ctx context.Context, employeeID string) (*EmployeeProfile, error) {
	var p EmployeeProfile
	err := r.db.WithContext(ctx).First(&p, "employee_id = ?", employeeID).Error
	return &p, err
}

// UpsertProfile creates the profile row on first update and patches it
// afterwards; employee_id is unique so the conflict target is stable.
func (r *repository) UpsertProfile(ctx context.Context, p *EmployeeProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"phone", "date_of_birth", "gender", "address_line", "city",
				"state", "country", "pincode", "emergency_contact_name",
				"emergency_contact_phone", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *repository) Roster(ctx context.Context, search, department string) ([]RosterRow, error) {
	q := r.db.WithContext(ctx).
		Table("users AS u").
		Select(`u.id AS user_id, e.id AS employee_id, u.name, u.email,
			e.department, e.designation, u.created_at`).
		Joins("JOIN employees e ON e.user_id = u.id").
		Where("u.role = ?", rbac.RoleEmployee).
		Where("u.is_active = ?", true)

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("u.name ILIKE ? OR u.email ILIKE ?", pattern, pattern)
	}
	if department != "" {
		q = q.Where("e.department = ?", department)
	}

	var rows []RosterRow
	err := q.Order("u.created_at DESC").Scan(&rows).Error
	return rows, err
}
