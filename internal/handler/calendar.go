package handler // handler defines http handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/huylq/training-center-api/internal/calendar"
	"github.com/huylq/training-center-api/internal/model"
)

// loadEntries fetches the caller's calendar entries for [from, to] based
// on the role claim: students see the sessions of their enrolled
// classes, teachers see their own sessions. Admins may inspect another
// teacher's calendar via the teacher_id query parameter.
func (h *CalendarHandler) loadEntries(c echo.Context, from, to string) ([]calendar.Entry, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, err
	}
	ctx := c.Request().Context()
	switch getRole(c) {
	case model.RoleStudent:
		return h.CalendarRepo.ListForStudent(ctx, userID, from, to)
	case model.RoleAdmin:
		if raw := c.QueryParam("teacher_id"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				return h.CalendarRepo.ListForTeacher(ctx, id, from, to)
			}
		}
		return h.CalendarRepo.ListForTeacher(ctx, userID, from, to)
	default:
		return h.CalendarRepo.ListForTeacher(ctx, userID, from, to)
	}
}

// GetWeek handles GET /v1/calendar/week. The anchor date defaults to
// today and can be any day of the target week; offset shifts the week
// by whole weeks relative to the anchor. The response is a slots×7
// grid where each cell holds the entries landing on that (day, slot).
func (h *CalendarHandler) GetWeek(c echo.Context) error {
	anchor := calendar.Today()
	if raw := c.QueryParam("date"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		}
		anchor = d
	}
	if raw := c.QueryParam("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "offset must be an integer"})
		}
		anchor = calendar.AdvanceWeek(anchor, n)
	}
	slots := calendar.DefaultSlots
	if raw := c.QueryParam("slots"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			slots = n
		}
	}

	week := calendar.WeekOf(anchor)
	from := week[0].Format(model.DateLayout)
	to := week[6].Format(model.DateLayout)

	entries, err := h.loadEntries(c, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load calendar"})
	}
	entries = calendar.Filter(entries, c.QueryParam("q"))

	days := make([]string, 7)
	for i, d := range week {
		days[i] = d.Format(model.DateLayout)
	}
	grid := make([][][]calendar.Entry, slots)
	for slot := 0; slot < slots; slot++ {
		grid[slot] = make([][]calendar.Entry, 7)
		for day := 0; day < 7; day++ {
			cell := calendar.Cell(entries, week[0], day, slot, slots)
			if cell == nil {
				cell = []calendar.Entry{}
			}
			grid[slot][day] = cell
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"week_start": from,
		"week_end":   to,
		"days":       days,
		"slots":      slots,
		"grid":       grid,
	})
}

// GetMonth handles GET /v1/calendar/month and returns the month's
// entries as a flat listing sorted by date then slot. Year and month
// default to the current civil date.
func (h *CalendarHandler) GetMonth(c echo.Context) error {
	now := calendar.Today()
	year := now.Year()
	month := now.Month()
	if raw := c.QueryParam("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "year must be an integer"})
		}
		year = n
	}
	if raw := c.QueryParam("month"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 12 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "month must be 1-12"})
		}
		month = time.Month(n)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	entries, err := h.loadEntries(c, first.Format(model.DateLayout), last.Format(model.DateLayout))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load calendar"})
	}
	entries = calendar.Filter(entries, c.QueryParam("q"))

	items := calendar.MonthListing(entries, year, month, calendar.DefaultSlots)
	if items == nil {
		items = []calendar.Entry{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"year":  year,
		"month": int(month),
		"items": items,
	})
}
