// Package contextkeys defines the keys used to pass the authenticated
// caller's identity through the request context.
package contextkeys

const (
	// UserID is the authenticated user's id, set by the auth middleware.
	UserID = "userID"

	// Role is the authenticated user's role.
	Role = "role"
)
