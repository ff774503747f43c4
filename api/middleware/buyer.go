package middleware

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/internal/identity"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// BuyerKey resolves who the basket belongs to: the authenticated username when
// a token was presented, otherwise the anonymous buyerId cookie. Requests with
// neither pass through with no key; handlers that need one mint the cookie.
func BuyerKey(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key := identity.Authenticated(UsernameFromContext(ctx))
			if !key.Present() {
				key = identity.Anonymous(identity.ReadBuyerCookie(r))
			}

			if key.Present() {
				ctx = WithBuyerKey(ctx, key.Value)
				if logg != nil {
					ctx = logg.WithBuyerKey(ctx, key.Value)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
