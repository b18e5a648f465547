package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftTimeRange(t *testing.T) {
	assert.Equal(t, "07:00 - 09:00", Shift1.TimeRange())
	assert.Equal(t, "17:00 - 19:00", Shift6.TimeRange())
	assert.Equal(t, "", Shift(0).TimeRange())
	assert.Equal(t, "", Shift(7).TimeRange())
}

func TestShiftValid(t *testing.T) {
	assert.False(t, Shift(0).Valid())
	assert.True(t, Shift1.Valid())
	assert.True(t, Shift6.Valid())
	assert.False(t, Shift(7).Valid())
}

func TestAllShifts(t *testing.T) {
	all := AllShifts()
	assert.Len(t, all, ShiftCount)
	assert.Equal(t, Shift1, all[0])
	assert.Equal(t, Shift6, all[len(all)-1])
}

func TestNormalizeSessionStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"SCHEDULED", SessionScheduled, true},
		{"upcoming", SessionScheduled, true},
		{" completed ", SessionCompleted, true},
		{"Cancelled", SessionCancelled, true},
		{"DONE", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeSessionStatus(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got, "raw %q", tc.raw)
	}
}

func TestNormalizeAttendanceStatus(t *testing.T) {
	got, ok := NormalizeAttendanceStatus("late ")
	assert.True(t, ok)
	assert.Equal(t, AttendanceLate, got)

	_, ok = NormalizeAttendanceStatus("NOT_TAKEN")
	assert.False(t, ok)
}
