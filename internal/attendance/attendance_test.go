package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huylq/training-center-api/internal/model"
)

func roster(ids ...uint64) []model.StudentRef {
	out := make([]model.StudentRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.StudentRef{ID: id})
	}
	return out
}

func sessions(ids ...uint64) []model.Session {
	out := make([]model.Session, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Session{ID: id, Status: model.SessionCompleted})
	}
	return out
}

func rec(sessionID, studentID uint64, status string) model.AttendanceRecord {
	return model.AttendanceRecord{SessionID: sessionID, StudentID: studentID, Status: status}
}

func TestBuildMatrixIsComplete(t *testing.T) {
	m := BuildMatrix(roster(1, 2, 3), sessions(10, 11), []model.AttendanceRecord{
		rec(10, 1, model.AttendancePresent),
	})

	assert.Len(t, m.Rows, 3)
	for _, row := range m.Rows {
		assert.Len(t, row.Statuses, 2)
	}
	assert.Len(t, m.Cells(), 6)

	// The single saved record resolves; every other pair defaults.
	assert.Equal(t, model.AttendancePresent, m.Rows[0].Statuses[10])
	assert.Equal(t, model.AttendanceNotTaken, m.Rows[0].Statuses[11])
	assert.Equal(t, model.AttendanceNotTaken, m.Rows[2].Statuses[10])
}

func TestBuildMatrixRate(t *testing.T) {
	// LATE counts toward the recorded denominator but not the present
	// numerator: 3 present of 4 recorded -> 75.
	m := BuildMatrix(roster(1), sessions(10, 11, 12, 13, 14), []model.AttendanceRecord{
		rec(10, 1, model.AttendancePresent),
		rec(11, 1, model.AttendancePresent),
		rec(12, 1, model.AttendancePresent),
		rec(13, 1, model.AttendanceLate),
		// session 14 has no record and must not dilute the rate
	})

	row := m.Rows[0]
	assert.Equal(t, 3, row.Present)
	assert.Equal(t, 1, row.Late)
	assert.Equal(t, 4, row.Recorded)
	assert.Equal(t, 75, row.Rate)
	assert.Equal(t, TierWarning, row.Tier)
}

func TestBuildMatrixRateRounds(t *testing.T) {
	// 2 of 3 -> 66.67 rounds to 67.
	m := BuildMatrix(roster(1), sessions(10, 11, 12), []model.AttendanceRecord{
		rec(10, 1, model.AttendancePresent),
		rec(11, 1, model.AttendancePresent),
		rec(12, 1, model.AttendanceAbsent),
	})
	assert.Equal(t, 67, m.Rows[0].Rate)
}

func TestBuildMatrixNoRecords(t *testing.T) {
	m := BuildMatrix(roster(1), sessions(10, 11), nil)
	row := m.Rows[0]
	assert.Equal(t, 0, row.Recorded)
	assert.Equal(t, 0, row.Rate)
	assert.Equal(t, TierDanger, row.Tier)
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		rate int
		want string
	}{
		{100, TierGood},
		{80, TierGood},
		{79, TierWarning},
		{60, TierWarning},
		{59, TierDanger},
		{0, TierDanger},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierFor(tc.rate), "rate %d", tc.rate)
	}
}

func TestStats(t *testing.T) {
	// Student 1: 4/4 -> 100 GOOD.  Student 2: 3/4 -> 75 WARNING.
	// Student 3: 1/4 -> 25 DANGER.
	records := []model.AttendanceRecord{
		rec(10, 1, model.AttendancePresent), rec(11, 1, model.AttendancePresent),
		rec(12, 1, model.AttendancePresent), rec(13, 1, model.AttendancePresent),
		rec(10, 2, model.AttendancePresent), rec(11, 2, model.AttendancePresent),
		rec(12, 2, model.AttendancePresent), rec(13, 2, model.AttendanceAbsent),
		rec(10, 3, model.AttendancePresent), rec(11, 3, model.AttendanceAbsent),
		rec(12, 3, model.AttendanceAbsent), rec(13, 3, model.AttendanceLate),
	}
	st := Stats(BuildMatrix(roster(1, 2, 3), sessions(10, 11, 12, 13), records))

	assert.Equal(t, 3, st.TotalStudents)
	assert.Equal(t, 1, st.Good)
	assert.Equal(t, 1, st.Warning)
	assert.Equal(t, 1, st.Danger)
	assert.Equal(t, 1, st.BelowWarning)
	// Simple mean of 100, 75, 25 rounded to 2 decimals.
	assert.Equal(t, 66.67, st.AverageRate)
}

func TestStatsEmptyClass(t *testing.T) {
	st := Stats(BuildMatrix(nil, sessions(10), nil))
	assert.Equal(t, 0, st.TotalStudents)
	assert.Equal(t, 0.0, st.AverageRate)
}

func TestPendingSessions(t *testing.T) {
	active := sessions(10, 11, 12)
	cancelled := model.Session{ID: 13, Status: model.SessionCancelled}
	all := append(active, cancelled)

	pending := PendingSessions(all, []model.AttendanceRecord{
		rec(11, 1, model.AttendancePresent), // one record is enough to leave pending
	})

	ids := make([]uint64, 0, len(pending))
	for _, s := range pending {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []uint64{10, 12}, ids)
}

func TestValidateSave(t *testing.T) {
	r := roster(1, 2)

	t.Run("valid save normalizes statuses", func(t *testing.T) {
		out, err := ValidateSave(10, r, []Edit{
			{StudentID: 1, Status: "present"},
			{StudentID: 2, Status: "Late", Note: "bus"},
		})
		assert.NoError(t, err)
		assert.Len(t, out, 2)
		assert.Equal(t, model.AttendancePresent, out[0].Status)
		assert.Equal(t, model.AttendanceLate, out[1].Status)
		assert.Equal(t, "bus", out[1].Note)
		assert.Equal(t, uint64(10), out[0].SessionID)
	})

	t.Run("missing roster member", func(t *testing.T) {
		_, err := ValidateSave(10, r, []Edit{{StudentID: 1, Status: "PRESENT"}})
		assert.Error(t, err)
	})

	t.Run("duplicate student", func(t *testing.T) {
		_, err := ValidateSave(10, r, []Edit{
			{StudentID: 1, Status: "PRESENT"},
			{StudentID: 1, Status: "ABSENT"},
			{StudentID: 2, Status: "PRESENT"},
		})
		assert.Error(t, err)
	})

	t.Run("student not on roster", func(t *testing.T) {
		_, err := ValidateSave(10, r, []Edit{
			{StudentID: 1, Status: "PRESENT"},
			{StudentID: 2, Status: "PRESENT"},
			{StudentID: 99, Status: "PRESENT"},
		})
		assert.Error(t, err)
	})

	t.Run("NOT_TAKEN is not persistable", func(t *testing.T) {
		_, err := ValidateSave(10, r, []Edit{
			{StudentID: 1, Status: "NOT_TAKEN"},
			{StudentID: 2, Status: "PRESENT"},
		})
		assert.Error(t, err)
	})
}
