package domain

import "fmt"

// NotFoundError reports an operation targeting a nonexistent record.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError reports a violated uniqueness invariant: a duplicate staff
// email, or an apartment that already has an active occupant.
type ConflictError struct {
	Entity EntityType
	Field  string
	Value  string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s conflict on %s %q", e.Entity, e.Field, e.Value)
}

// ValidationError reports a malformed draft rejected before it reaches state.
type ValidationError struct {
	Entity EntityType
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

// AuthError reports a failed credential check.
type AuthError struct {
	Reason string
}

func (e AuthError) Error() string {
	return "authentication failed: " + e.Reason
}
