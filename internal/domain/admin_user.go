package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"

	AdminStatusActive   = "active"
	AdminStatusInactive = "inactive"
)

type AdminUser struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	Name      string    `gorm:"column:name" json:"name"`
	Role      string    `gorm:"not null;default:'admin';column:role" json:"role"`
	Status    string    `gorm:"not null;default:'active';column:status" json:"status"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (AdminUser) TableName() string {
	return "admin_user"
}

// Sanitized returns a copy safe to hand back to callers. The password hash is
// hidden from JSON anyway, but responses built from maps or exports must never
// see it either.
func (u *AdminUser) Sanitized() *AdminUser {
	if u == nil {
		return nil
	}
	c := *u
	c.Password = ""
	return &c
}
