package user

import (
	"context"

	"dayflow/internal/rbac"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	// CountActiveEmployees counts users with an active EMPLOYEE role
	// and a linked employee record.
	CountActiveEmployees(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) CountActiveEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("role = ?", rbac.RoleEmployee).
		Where("is_active = ?", true).
		Where("EXISTS (SELECT 1 FROM employees e WHERE e.user_id = users.id)").
		Count(&count).Error
	return count, err
}
