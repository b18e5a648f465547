package model

// Shift is an ordinal identifying one of the fixed daily time
// windows a session can occupy.  Valid values are 1..ShiftCount;
// index 1 is the earliest window of the day.  The set of windows
// is global and immutable, so it lives here rather than in a
// database table.
type Shift uint8

// The six daily teaching windows.
const (
	Shift1 Shift = iota + 1 // 07:00 - 09:00
	Shift2                  // 09:00 - 11:00
	Shift3                  // 11:00 - 13:00
	Shift4                  // 13:00 - 15:00
	Shift5                  // 15:00 - 17:00
	Shift6                  // 17:00 - 19:00
)

// ShiftCount is the number of defined shifts per day.
const ShiftCount = 6

// shiftTimes maps each shift to its human-readable time window.
var shiftTimes = [ShiftCount]string{
	"07:00 - 09:00",
	"09:00 - 11:00",
	"11:00 - 13:00",
	"13:00 - 15:00",
	"15:00 - 17:00",
	"17:00 - 19:00",
}

// Valid reports whether s is one of the defined shift ordinals.
func (s Shift) Valid() bool {
	return s >= Shift1 && s <= ShiftCount
}

// TimeRange returns the wall-clock window of the shift, or an empty
// string for an undefined ordinal.
func (s Shift) TimeRange() string {
	if !s.Valid() {
		return ""
	}
	return shiftTimes[s-1]
}

// AllShifts returns every defined shift in ascending order.  The
// slice is freshly allocated so callers may reorder or filter it.
func AllShifts() []Shift {
	out := make([]Shift, 0, ShiftCount)
	for s := Shift1; s <= ShiftCount; s++ {
		out = append(out, s)
	}
	return out
}
