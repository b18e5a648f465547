// Package scheduler decides whether a new class session can be booked
// into a (teacher, date, shift, room) slot without double-booking.
// Every function here is a pure computation over the session snapshot
// supplied by the caller; the check is advisory and the MySQL unique
// keys on the sessions table remain the final authority.  A storage
// rejection after a locally clean check is the expected outcome of a
// race, not a bug, and is surfaced as the same conflict kind.
package scheduler

import "fmt"

// Conflict kinds reported by RequestSession.  Handlers use the kind
// to tell "teacher already booked" from "room already booked" in 409
// responses.
const (
	ConflictTeacher = "teacher-double-booked"
	ConflictRoom    = "room-double-booked"
)

// ConflictError reports that a requested slot is already occupied.
// It names the first violated invariant; callers needing every cause
// must re-query per policy.  Conflicts are always recoverable by
// choosing a different slot.
type ConflictError struct {
	Kind      string // ConflictTeacher or ConflictRoom
	SessionID uint64 // the session occupying the slot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflict: %s (session %d)", e.Kind, e.SessionID)
}

// ValidationError reports a malformed booking request, e.g. a missing
// room or an undefined shift ordinal.  No partial effect occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
