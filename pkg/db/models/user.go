package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// User represents the canonical identity entity. The username doubles as the
// buyer key once the user is authenticated.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string         `gorm:"column:username;type:text;not null;uniqueIndex"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Roles        pq.StringArray `gorm:"column:roles;type:text[];not null;default:ARRAY['member']::text[]"`
	Address      *UserAddress   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// UserAddress stores the buyer's saved shipping address, one row per user.
type UserAddress struct {
	UserID    uuid.UUID     `gorm:"column:user_id;type:uuid;primaryKey"`
	Address   types.Address `gorm:"embedded"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
