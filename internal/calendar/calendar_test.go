package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/huylq/training-center-api/internal/model"
)

func date(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWeekOf(t *testing.T) {
	cases := []struct {
		name   string
		anchor string
		monday string
	}{
		{"midweek", "2025-09-03", "2025-09-01"},
		{"monday itself", "2025-09-01", "2025-09-01"},
		{"sunday ends its week", "2025-09-07", "2025-09-01"},
		{"next monday starts a new week", "2025-09-08", "2025-09-08"},
		{"across a month boundary", "2025-08-31", "2025-08-25"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			week := WeekOf(date(tc.anchor))
			assert.Equal(t, date(tc.monday), week[0])
			assert.Equal(t, date(tc.monday).AddDate(0, 0, 6), week[6])
			for i := 1; i < 7; i++ {
				assert.Equal(t, week[i-1].AddDate(0, 0, 1), week[i])
			}
		})
	}
}

func TestAdvanceWeek(t *testing.T) {
	assert.Equal(t, date("2025-09-10"), AdvanceWeek(date("2025-09-03"), 1))
	assert.Equal(t, date("2025-08-20"), AdvanceWeek(date("2025-09-03"), -2))
	assert.Equal(t, date("2025-09-03"), AdvanceWeek(date("2025-09-03"), 0))
}

func TestDayIndex(t *testing.T) {
	assert.Equal(t, 0, DayIndex(date("2025-09-01"))) // Monday
	assert.Equal(t, 2, DayIndex(date("2025-09-03"))) // Wednesday
	assert.Equal(t, 6, DayIndex(date("2025-09-07"))) // Sunday
}

func TestSlotIndex(t *testing.T) {
	cases := []struct {
		shift model.Shift
		slots int
		want  int
	}{
		{model.Shift1, 5, 0},
		{model.Shift3, 5, 2},
		{model.Shift5, 5, 4},
		{model.Shift6, 5, 4}, // beyond the grid clamps to the last row
		{model.Shift2, 0, 1}, // non-positive slots falls back to the default
		{model.Shift(0), 5, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SlotIndex(tc.shift, tc.slots), "shift %d slots %d", tc.shift, tc.slots)
	}
}

func entry(id uint64, day string, shift model.Shift) Entry {
	return Entry{SessionID: id, Date: day, Shift: shift}
}

func TestCell(t *testing.T) {
	entries := []Entry{
		entry(1, "2025-09-03", model.Shift3), // Wednesday, row 2
		entry(2, "2025-09-03", model.Shift1), // Wednesday, row 0
		entry(3, "2025-09-04", model.Shift3), // Thursday
		entry(4, "2025-09-10", model.Shift3), // next week
		entry(5, "2025-08-31", model.Shift3), // previous week
	}
	monday := date("2025-09-01")

	got := Cell(entries, monday, 2, 2, DefaultSlots)
	assert.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].SessionID)

	assert.Len(t, Cell(entries, monday, 2, 0, DefaultSlots), 1)
	assert.Empty(t, Cell(entries, monday, 2, 4, DefaultSlots))
	assert.Len(t, Cell(entries, monday, 3, 2, DefaultSlots), 1)
	// Out-of-week entries never land, whatever the cell.
	assert.Empty(t, Cell(entries, monday, 6, 2, DefaultSlots))
}

func TestCellClampsOverflowShift(t *testing.T) {
	entries := []Entry{entry(1, "2025-09-03", model.Shift6)}
	got := Cell(entries, date("2025-09-01"), 2, DefaultSlots-1, DefaultSlots)
	assert.Len(t, got, 1)
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{SessionID: 1, ClassName: "CNTT01-K15", SubjectName: "Mathematics", TeacherName: "Nguyen Van A"},
		{SessionID: 2, ClassName: "KT02-K15", SubjectName: "Physics", TeacherName: "Tran Thi B"},
	}

	assert.Len(t, Filter(entries, ""), 2)
	assert.Len(t, Filter(entries, "  "), 2)

	got := Filter(entries, "math")
	assert.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].SessionID)

	// Matches across class, subject and teacher, case-insensitively.
	assert.Len(t, Filter(entries, "tran"), 1)
	assert.Len(t, Filter(entries, "K15"), 2)
	assert.Empty(t, Filter(entries, "chemistry"))
}

func TestMonthListing(t *testing.T) {
	entries := []Entry{
		entry(1, "2025-09-15", model.Shift4),
		entry(2, "2025-09-01", model.Shift2),
		entry(3, "2025-09-01", model.Shift1),
		entry(4, "2025-08-31", model.Shift1), // previous month
		entry(5, "2025-10-01", model.Shift1), // next month
	}

	got := MonthListing(entries, 2025, time.September, DefaultSlots)
	ids := make([]uint64, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.SessionID)
	}
	assert.Equal(t, []uint64{3, 2, 1}, ids)
}
