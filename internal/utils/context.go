// Package utils collects small helpers shared across layers: password
// hashing, JWT minting and validation, JSON response writing, and the typed
// context key carrying the authenticated user.
package utils

import "context"

// ctxKey is unexported so no other package can collide with the values this
// package stores in a context.
type ctxKey string

// String returns the key's name, mostly for log output.
func (c ctxKey) String() string {
	return string(c)
}

// UserIDCtxKey carries the authenticated user's id through a request context.
// The auth middleware stores it after token verification; handlers read it
// back with GetUserIDFromContext instead of re-parsing the token.
var UserIDCtxKey = ctxKey("user_id")

// GetUserIDFromContext returns the user id stored under UserIDCtxKey.
// ok is false when the value is absent or is not an int64.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
