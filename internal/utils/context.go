// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, JWT token generation and validation,
// identifier generation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SessionCtxKey is the key used to store the verified session data in the
// context. Used together with GetSessionFromContext for type-safe retrieval
// of the authenticated account identity from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.SessionCtxKey, utils.Session{AccountID: id})
var SessionCtxKey = contextKey("session")

// Session is the authenticated identity attached to a request context after
// a successful bearer token verification.
type Session struct {
	// AccountID is the "sub" claim of the verified token.
	AccountID string

	// Admin is the "admin" claim of the verified token.
	Admin bool
}

// GetSessionFromContext retrieves the verified session from the context.
//
// Returns the session and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
//
// Example usage:
//
//	session, ok := utils.GetSessionFromContext(ctx)
//	if !ok {
//	    // handle missing session in context
//	}
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(Session)
	return session, ok
}
