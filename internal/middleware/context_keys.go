package middleware

// ContextKey is a private type for context keys to avoid collisions.
type ContextKey string

// UserIDCtxKey carries the authenticated user's id through the request context.
const UserIDCtxKey = ContextKey("user_id")
