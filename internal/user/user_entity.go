package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a read model over the identity service's records. This
// service never writes users; accounts and roles are owned by the
// external auth collaborator.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(255)"`
	Email     string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	LoginID   string    `gorm:"column:login_id;type:varchar(100)"`
	Role      string    `gorm:"column:role;type:varchar(50);default:EMPLOYEE"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}
