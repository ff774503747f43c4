package auth

import (
	"github.com/angelmondragon/storefront-backend/internal/basket"
	"github.com/angelmondragon/storefront-backend/internal/users"
)

// RegisterRequest captures the payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse carries the token plus the state the storefront needs after
// login or a current-user refresh.
type SessionResponse struct {
	AccessToken string            `json:"token"`
	User        *users.UserDTO    `json:"user"`
	Basket      *basket.BasketDTO `json:"basket,omitempty"`
}
