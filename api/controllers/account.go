package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	authsvc "github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/identity"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// AccountRegister creates a member account.
func AccountRegister(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body authsvc.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// AccountLogin authenticates and merges any anonymous basket into the user's.
// The anonymous cookie is cleared once its basket has been adopted.
func AccountLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		anonymousKey := identity.ReadBuyerCookie(r)
		session, err := svc.Login(r.Context(), body, anonymousKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if anonymousKey != "" {
			identity.ClearBuyerCookie(w)
		}
		responses.WriteSuccess(w, session)
	}
}

// AccountCurrentUser re-issues a session for the authenticated user.
func AccountCurrentUser(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.UsernameFromContext(r.Context())
		if username == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		session, err := svc.CurrentUser(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// AccountSavedAddress returns the user's saved shipping address, or null.
func AccountSavedAddress(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.UsernameFromContext(r.Context())
		if username == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		address, err := svc.SavedAddress(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, address)
	}
}
