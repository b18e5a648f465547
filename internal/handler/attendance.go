package handler // handler package contains attendance reconciliation handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/huylq/training-center-api/internal/attendance"
	"github.com/huylq/training-center-api/internal/model"
	"github.com/huylq/training-center-api/internal/queue"
	"github.com/huylq/training-center-api/internal/repository"
	queue_publisher "github.com/huylq/training-center-api/internal/service"
)

// studentRowResponse is one reconciled roster line in the matrix view.
// Statuses is keyed by the session ID rendered as a string so the JSON
// object keys stay stable across clients.
type studentRowResponse struct {
	StudentID   uint64            `json:"student_id"`
	StudentCode string            `json:"student_code"`
	FullName    string            `json:"full_name"`
	Statuses    map[string]string `json:"statuses"`
	Present     int               `json:"present"`
	Absent      int               `json:"absent"`
	Late        int               `json:"late"`
	Rate        int               `json:"attendance_rate"`
	Tier        string            `json:"tier"`
}

// GetClassAttendance handles GET /v1/classes/:id/attendance and returns
// the complete reconciled matrix with per-student and class statistics.
// Every roster×session pair is present exactly once; pairs without a
// saved record come back as NOT_TAKEN.
func (h *TeacherHandler) GetClassAttendance(c echo.Context) error {
	classID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid class id"})
	}
	ctx := c.Request().Context()
	if _, err := h.ClassRepo.GetByID(ctx, classID); err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load class"})
	}
	roster, err := h.ClassRepo.Roster(ctx, classID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load roster"})
	}
	sessions, err := h.SessionRepo.ListByClass(ctx, classID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load sessions"})
	}
	records, err := h.AttendanceRepo.ListByClass(ctx, classID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load attendance"})
	}

	matrix := attendance.BuildMatrix(roster, sessions, records)
	rows := make([]studentRowResponse, 0, len(matrix.Rows))
	for _, row := range matrix.Rows {
		statuses := make(map[string]string, len(row.Statuses))
		for sessID, status := range row.Statuses {
			statuses[strconv.FormatUint(sessID, 10)] = status
		}
		rows = append(rows, studentRowResponse{
			StudentID:   row.Student.ID,
			StudentCode: row.Student.Code,
			FullName:    row.Student.FullName,
			Statuses:    statuses,
			Present:     row.Present,
			Absent:      row.Absent,
			Late:        row.Late,
			Rate:        row.Rate,
			Tier:        row.Tier,
		})
	}
	sessionHeaders := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		sessionHeaders = append(sessionHeaders, toSessionResponse(&sessions[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"class_id": classID,
		"sessions": sessionHeaders,
		"rows":     rows,
		"stats":    attendance.Stats(matrix),
	})
}

// GetPendingSessions handles GET /v1/classes/:id/attendance/pending and
// returns the sessions that have no attendance saved yet — the list the
// attendance-taking workflow offers. Once a session has any record it
// is RECORDED permanently and never reappears here.
func (h *TeacherHandler) GetPendingSessions(c echo.Context) error {
	classID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid class id"})
	}
	ctx := c.Request().Context()
	sessions, err := h.SessionRepo.ListByClass(ctx, classID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load sessions"})
	}
	records, err := h.AttendanceRepo.ListByClass(ctx, classID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load attendance"})
	}
	pending := attendance.PendingSessions(sessions, records)
	items := make([]sessionResponse, 0, len(pending))
	for i := range pending {
		items = append(items, toSessionResponse(&pending[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// SaveAttendance handles POST /v1/sessions/:id/attendance. The edit
// set must cover the session's roster exactly once; anything else is a
// 400 with no partial effect. On success all records are upserted in
// one transaction and an attendance.saved event is published
// best-effort.
func (h *TeacherHandler) SaveAttendance(c echo.Context) error {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid session id"})
	}
	var body struct {
		Edits []struct {
			StudentID uint64 `json:"student_id"`
			Status    string `json:"status"`
			Note      string `json:"note"`
		} `json:"edits"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	sess, err := h.SessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load session"})
	}
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	if sess.TeacherID != callerID && getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	}
	roster, err := h.ClassRepo.Roster(ctx, sess.ClassID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load roster"})
	}

	edits := make([]attendance.Edit, 0, len(body.Edits))
	for _, e := range body.Edits {
		edits = append(edits, attendance.Edit{StudentID: e.StudentID, Status: e.Status, Note: e.Note})
	}
	records, err := attendance.ValidateSave(sessionID, roster, edits)
	if err != nil {
		var invalid *attendance.ValidationError
		if errors.As(err, &invalid) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": invalid.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "validation failed"})
	}
	if err := h.AttendanceRepo.UpsertSession(ctx, sessionID, records); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save attendance"})
	}

	// Publish the domain event; a broker outage must not fail the save.
	event := queue.AttendanceSavedEvent{
		SessionID:   sessionID,
		ClassID:     sess.ClassID,
		TeacherID:   sess.TeacherID,
		SessionDate: sess.Date,
		Shift:       uint8(sess.Shift),
		SavedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if cls, err := h.ClassRepo.GetByID(ctx, sess.ClassID); err == nil {
		event.ClassName = cls.Name
	}
	for _, rec := range records {
		switch rec.Status {
		case model.AttendancePresent:
			event.Present++
		case model.AttendanceAbsent:
			event.Absent++
		case model.AttendanceLate:
			event.Late++
		}
	}
	_ = queue_publisher.PublishAttendanceSaved(ctx, event)

	return c.JSON(http.StatusOK, map[string]any{"session_id": sessionID, "saved": len(records)})
}
