package identity

import (
	"net/http"
	"time"
)

// CookieName is the anonymous buyer identifier cookie.
const CookieName = "buyerId"

// ReadBuyerCookie returns the buyer cookie value, or "" when absent.
func ReadBuyerCookie(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// WriteBuyerCookie refreshes the buyer cookie with the configured TTL.
func WriteBuyerCookie(w http.ResponseWriter, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearBuyerCookie expires the buyer cookie. Used after a login merges the
// anonymous basket into the user's, and to evict a stale cookie when a
// request resolves to no buyer.
func ClearBuyerCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
