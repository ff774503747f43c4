package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-backend/api/responses"
	pkgauth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(cfg, r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := contextWithClaims(r.Context(), claims, logg)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth seeds the context from a bearer token when one is presented but
// lets anonymous requests through untouched. A token that is present and
// invalid is still rejected.
func OptionalAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.TrimSpace(r.Header.Get("Authorization")) == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := claimsFromRequest(cfg, r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := contextWithClaims(r.Context(), claims, logg)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFromRequest(cfg config.JWTConfig, r *http.Request) (*pkgauth.AccessTokenClaims, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	claims, err := pkgauth.ParseAccessToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.Username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing subject")
	}
	return claims, nil
}

func contextWithClaims(ctx context.Context, claims *pkgauth.AccessTokenClaims, logg *logger.Logger) context.Context {
	roles := make([]string, 0, len(claims.Roles))
	for _, role := range claims.Roles {
		roles = append(roles, string(role))
	}

	ctx = context.WithValue(ctx, ctxUsername, claims.Username)
	ctx = context.WithValue(ctx, ctxRoles, roles)

	if logg != nil {
		ctx = logg.WithUsername(ctx, claims.Username)
	}
	return ctx
}
