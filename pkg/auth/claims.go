package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Username string
	Roles    []enums.Role
}

// AccessTokenClaims represents the typed JWT issued to clients. Username is the
// authenticated buyer key used by basket and order operations.
type AccessTokenClaims struct {
	UserID   uuid.UUID    `json:"user_id"`
	Username string       `json:"username"`
	Roles    []enums.Role `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry the given role.
func (c *AccessTokenClaims) HasRole(role enums.Role) bool {
	if c == nil {
		return false
	}
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
