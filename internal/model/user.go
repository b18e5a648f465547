package model

import "time"

// User represents an application user record as stored in the
// `users` table. Accounts are created and authenticated by the
// separate auth service; this API only reads users to resolve
// teacher and student references on classes and sessions. The
// json tags are omitted because these structs are used internally
// by the repository layer; handlers define separate response
// types with appropriate JSON tags.
//
// Fields:
//  ID        – primary key identifier of the user.
//  Username  – unique login name (e.g. "trangnt253").
//  FullName  – display name shown on rosters and calendars.
//  Email     – unique email address.
//  Role      – role name (ADMIN, TEACHER or STUDENT).
//  IsActive  – whether the account is active.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type User struct {
	ID        uint64    // users.id
	Username  string    // users.username
	FullName  string    // users.full_name
	Email     string    // users.email
	Role      string    // users.role
	IsActive  bool      // users.is_active
	CreatedAt time.Time // users.created_at
	UpdatedAt time.Time // users.updated_at
}

// Role names stored in users.role and carried in the JWT "role" claim.
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
)
