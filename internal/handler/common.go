package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in getUserID
	"strconv" // strconv converts strings to numeric types

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/huylq/training-center-api/internal/repository" // repository holds data access layer
)

// TeacherHandler bundles the repositories behind the scheduling and
// attendance endpoints used by teachers and admins.
type TeacherHandler struct {
	SessionRepo    *repository.SessionRepo    // SessionRepo provides session persistence
	ClassRepo      *repository.ClassRepo      // ClassRepo provides class and roster persistence
	RoomRepo       *repository.RoomRepo       // RoomRepo provides room persistence
	AttendanceRepo *repository.AttendanceRepo // AttendanceRepo provides attendance persistence
}

// NewTeacherHandler constructs a TeacherHandler and panics if any dependency is nil.
func NewTeacherHandler(sessionRepo *repository.SessionRepo, classRepo *repository.ClassRepo, roomRepo *repository.RoomRepo, attendanceRepo *repository.AttendanceRepo) *TeacherHandler {
	if sessionRepo == nil || classRepo == nil || roomRepo == nil || attendanceRepo == nil {
		panic("nil repository passed to NewTeacherHandler")
	}
	return &TeacherHandler{
		SessionRepo:    sessionRepo,
		ClassRepo:      classRepo,
		RoomRepo:       roomRepo,
		AttendanceRepo: attendanceRepo,
	}
}

// CalendarHandler serves the week grid and month listing views for
// any authenticated role.
type CalendarHandler struct {
	CalendarRepo *repository.CalendarRepo // CalendarRepo loads denormalized session entries
}

// NewCalendarHandler constructs a CalendarHandler and panics on a nil dependency.
func NewCalendarHandler(calendarRepo *repository.CalendarRepo) *CalendarHandler {
	if calendarRepo == nil {
		panic("nil repository passed to NewCalendarHandler")
	}
	return &CalendarHandler{CalendarRepo: calendarRepo}
}

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// The JWT middleware stores the raw claim, whose type depends on how the
// auth service encoded it, so several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the role claim injected by the JWT middleware.
func getRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}
