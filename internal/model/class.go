package model

import "time"

// Class represents a row in the `classes` table.  A class binds a
// subject and a teacher to an enrolled set of students; sessions and
// attendance always hang off a class.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – class code shown in the UI (e.g. "CNTT01-K15").
//  SubjectID     – subject taught in this class.
//  SubjectName   – denormalized subject name for display and search.
//  MajorID       – major the class belongs to.
//  TeacherID     – teacher who owns the class and its sessions.
//  StartDate     – civil date of the first planned session.
//  TotalSessions – number of sessions planned for the course.
//  MaxStudents   – enrollment cap (zero means unlimited).
//  Description   – optional free-text description.
//  DeletedAt     – soft-delete timestamp.
//  CreatedAt     – timestamp of creation.
type Class struct {
	ID            uint64     // classes.id
	Name          string     // classes.name
	SubjectID     uint64     // classes.subject_id
	SubjectName   string     // subjects.name (joined)
	MajorID       uint64     // classes.major_id
	TeacherID     uint64     // classes.teacher_id
	StartDate     string     // classes.start_date ("2006-01-02")
	TotalSessions int        // classes.total_sessions
	MaxStudents   int        // classes.max_students
	Description   string     // classes.description
	DeletedAt     *time.Time // classes.deleted_at (nullable)
	CreatedAt     time.Time  // classes.created_at
}

// StudentRef identifies one enrolled student of a class.  The
// attendance engine treats the roster as read-only input; enrollment
// changes go through class management and never touch historical
// attendance records.
//
// Fields:
//  ID       – user ID of the student.
//  Code     – student code shown in tables (e.g. "SV001").
//  FullName – display name.
type StudentRef struct {
	ID       uint64 // users.id
	Code     string // users.student_code
	FullName string // users.full_name
}
