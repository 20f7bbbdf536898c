// Package ctxkeys holds shared context keys for the API layer.
// Extracted to a leaf package to avoid import cycles between api and server.
package ctxkeys

import "context"

// Key is the unexported named type for all API context keys.
// Using a named type avoids collisions with string keys from other packages
// at runtime (context.Value compares both type and value).
type Key string

// ActorID is the context key for the authenticated caller.
// Injected by the auth middleware, read by the invocation audit trail.
const ActorID Key = "actor_id"

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

// String returns the string stored under key, or fallback when absent/empty.
func String(ctx context.Context, key Key, fallback string) string {
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return fallback
	}
	return v
}
