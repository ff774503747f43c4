package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Roles       []string   `json:"roles"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
	Roles        []enums.Role
}

// FromModel maps the persisted user onto its API shape.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Roles:       append([]string(nil), []string(u.Roles)...),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToModel builds the persistence model, defaulting the member role.
func (c CreateUserDTO) ToModel() *models.User {
	roles := c.Roles
	if len(roles) == 0 {
		roles = []enums.Role{enums.RoleMember}
	}
	names := make(pq.StringArray, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}
	return &models.User{
		ID:           uuid.New(),
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Roles:        names,
	}
}
