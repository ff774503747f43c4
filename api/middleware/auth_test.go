package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "storefront-test", ExpirationMinutes: 30}
}

func mintTestToken(t *testing.T, username string) string {
	t.Helper()

	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: username,
		Roles:    []enums.Role{enums.RoleMember},
	})
	require.NoError(t, err)
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	var gotUsername string
	var gotRoles []string
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUsername = UsernameFromContext(r.Context())
		gotRoles = RolesFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, "sam"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sam", gotUsername)
	assert.Equal(t, []string{"member"}, gotRoles)
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/api/orders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	called := false
	handler := OptionalAuth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Empty(t, UsernameFromContext(r.Context()))
	}))

	req := httptest.NewRequest("GET", "/api/basket", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthStillRejectsBadTokens(t *testing.T) {
	handler := OptionalAuth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/api/basket", nil)
	req.Header.Set("Authorization", "Bearer expired-or-garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBuyerKeyPrefersUsernameOverCookie(t *testing.T) {
	var got string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = BuyerKeyFromContext(r.Context())
	})
	handler := Auth(testJWTConfig(), nil)(BuyerKey(nil)(inner))

	req := httptest.NewRequest("GET", "/api/basket", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, "sam"))
	req.AddCookie(&http.Cookie{Name: "buyerId", Value: "anon-123"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "sam", got)
}

func TestBuyerKeyFallsBackToCookie(t *testing.T) {
	var got string
	handler := BuyerKey(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = BuyerKeyFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/basket", nil)
	req.AddCookie(&http.Cookie{Name: "buyerId", Value: "anon-123"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "anon-123", got)

	req = httptest.NewRequest("GET", "/api/basket", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, BuyerKeyFromContext(req.Context()))
}
