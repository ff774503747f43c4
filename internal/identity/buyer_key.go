package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Source describes where a buyer key came from.
type Source string

const (
	// SourceAuthenticated means the key is the username from a verified token.
	SourceAuthenticated Source = "authenticated"
	// SourceAnonymous means the key is the opaque id from the buyer cookie.
	SourceAnonymous Source = "anonymous"
	// SourceNone means the request carried no identity at all.
	SourceNone Source = "none"
)

// BuyerKey identifies the owner of a basket or order. Authenticated keys win
// over anonymous ones when both are present on a request.
type BuyerKey struct {
	Value  string
	Source Source
}

// Authenticated builds a key from a verified username.
func Authenticated(username string) BuyerKey {
	username = strings.TrimSpace(username)
	if username == "" {
		return None()
	}
	return BuyerKey{Value: username, Source: SourceAuthenticated}
}

// Anonymous builds a key from the buyer cookie value.
func Anonymous(id string) BuyerKey {
	id = strings.TrimSpace(id)
	if id == "" {
		return None()
	}
	return BuyerKey{Value: id, Source: SourceAnonymous}
}

// None is the absent buyer key.
func None() BuyerKey {
	return BuyerKey{Source: SourceNone}
}

// Present reports whether the key identifies anyone.
func (k BuyerKey) Present() bool {
	return k.Source != SourceNone && k.Value != ""
}

// IsAuthenticated reports whether the key belongs to a logged-in user.
func (k BuyerKey) IsAuthenticated() bool {
	return k.Source == SourceAuthenticated && k.Value != ""
}

// NewAnonymousID mints a fresh cookie identifier for first-time buyers.
func NewAnonymousID() string {
	return uuid.NewString()
}
