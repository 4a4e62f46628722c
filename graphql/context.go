package graphql

import "context"

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeySessionID contextKey = "sessionID"

// WithSessionID attaches the cart session to the request context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxKeySessionID, id)
}

// SessionIDFromContext returns the cart session for the current request.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeySessionID).(string)
	return id
}
