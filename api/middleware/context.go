package middleware

import "context"

type contextKey string

const (
	ctxUsername contextKey = "username"
	ctxRoles    contextKey = "roles"
	ctxBuyerKey contextKey = "buyer_key"
)

func UsernameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUsername).(string); ok {
		return v
	}
	return ""
}

func RolesFromContext(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxRoles).([]string); ok {
		return v
	}
	return nil
}

func BuyerKeyFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxBuyerKey).(string); ok {
		return v
	}
	return ""
}

// WithUsername injects the authenticated username into the context.
func WithUsername(ctx context.Context, username string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUsername, username)
}

// WithBuyerKey injects the resolved buyer key into the context.
func WithBuyerKey(ctx context.Context, buyerKey string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxBuyerKey, buyerKey)
}
