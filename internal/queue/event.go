// Package queue defines message payloads exchanged over the message broker.
package queue

// AttendanceSavedEvent is published after a session's attendance has
// been upserted successfully. It carries enough information for
// downstream consumers to log, notify, or feed reporting without
// querying the primary database.
type AttendanceSavedEvent struct {
	SessionID   uint64 `json:"session_id"`
	ClassID     uint64 `json:"class_id"`
	ClassName   string `json:"class_name"`
	TeacherID   uint64 `json:"teacher_id"`
	SessionDate string `json:"session_date"`
	Shift       uint8  `json:"shift"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
	Late        int    `json:"late"`
	SavedAt     string `json:"saved_at"`
}
