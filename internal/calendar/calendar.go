// Package calendar projects a session list onto a day×time-slot grid
// for week views and a sorted listing for month views.  It is a pure,
// stateless projection: every call recomputes from the session list
// the caller supplies, and all date math is civil-date only so a
// session never drifts across a day boundary under timezone
// arithmetic.
package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/huylq/training-center-api/internal/model"
)

// DefaultSlots is the number of time-slot rows the week grid renders.
// Shift ordinals above it clamp to the last row, which protects the
// grid against shift values added after the layout was fixed.
const DefaultSlots = 5

// Entry is one session enriched with the display fields the calendar
// searches over.  Handlers build entries by joining sessions with
// their class, subject and teacher.
type Entry struct {
	SessionID   uint64      `json:"session_id"`
	ClassID     uint64      `json:"class_id"`
	ClassName   string      `json:"class_name"`
	SubjectName string      `json:"subject_name"`
	TeacherName string      `json:"teacher_name"`
	Room        string      `json:"room"`
	Date        string      `json:"date"` // civil date, model.DateLayout
	Shift       model.Shift `json:"shift"`
}

// WeekOf returns the Monday..Sunday civil dates of the week containing
// d.  The input may be any day of that week, including the Monday and
// Sunday themselves.
func WeekOf(d time.Time) [7]time.Time {
	day := civil(d)
	offset := int(day.Weekday()) - 1 // Monday -> 0
	if offset < 0 {
		offset = 6 // Sunday belongs to the week it ends
	}
	monday := day.AddDate(0, 0, -offset)
	var week [7]time.Time
	for i := 0; i < 7; i++ {
		week[i] = monday.AddDate(0, 0, i)
	}
	return week
}

// AdvanceWeek moves a reference date by n whole weeks.  Negative n
// navigates backwards.
func AdvanceWeek(d time.Time, n int) time.Time {
	return civil(d).AddDate(0, 0, 7*n)
}

// Today returns the current civil date.
func Today() time.Time {
	return civil(time.Now())
}

// DayIndex maps a date to its column in the week grid: Monday=0 ..
// Sunday=6.
func DayIndex(d time.Time) int {
	idx := int(d.Weekday()) - 1
	if idx < 0 {
		idx = 6
	}
	return idx
}

// SlotIndex maps a shift ordinal to its zero-based row, clamped into
// [0, slots).  Non-positive slots falls back to DefaultSlots.
func SlotIndex(shift model.Shift, slots int) int {
	if slots <= 0 {
		slots = DefaultSlots
	}
	idx := int(shift) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= slots {
		idx = slots - 1
	}
	return idx
}

// Cell returns the entries landing in one (day, slot) cell of the
// week starting at weekStart (a Monday).  The result is recomputed on
// every call; nothing is cached between queries.
func Cell(entries []Entry, weekStart time.Time, dayIdx, slotIdx, slots int) []Entry {
	var out []Entry
	start := civil(weekStart)
	end := start.AddDate(0, 0, 7)
	for _, e := range entries {
		d, err := model.ParseDate(e.Date)
		if err != nil {
			continue
		}
		if d.Before(start) || !d.Before(end) {
			continue
		}
		if DayIndex(d) == dayIdx && SlotIndex(e.Shift, slots) == slotIdx {
			out = append(out, e)
		}
	}
	return out
}

// Filter keeps entries whose subject, teacher or class name contains
// the query, case-insensitively.  An empty query matches everything.
func Filter(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.SubjectName), q) ||
			strings.Contains(strings.ToLower(e.TeacherName), q) ||
			strings.Contains(strings.ToLower(e.ClassName), q) {
			out = append(out, e)
		}
	}
	return out
}

// MonthListing returns the entries of one calendar month sorted by
// (date, slot) ascending, the order of the tabular month view.
func MonthListing(entries []Entry, year int, month time.Month, slots int) []Entry {
	var out []Entry
	for _, e := range entries {
		d, err := model.ParseDate(e.Date)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return SlotIndex(out[i].Shift, slots) < SlotIndex(out[j].Shift, slots)
	})
	return out
}

// civil truncates a time to its civil date at UTC midnight so that
// all arithmetic happens on whole days.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
