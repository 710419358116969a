package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
)

func records(valid ...bool) []Attendance {
	out := make([]Attendance, len(valid))
	for i, v := range valid {
		out[i] = Attendance{IsValid: v}
	}
	return out
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name string
		in   []Attendance
		want int
	}{
		{name: "empty", in: nil, want: 0},
		{name: "all valid", in: records(true, true), want: 100},
		{name: "none valid", in: records(false, false, false), want: 0},
		{name: "three of four", in: records(true, true, true, false), want: 75},
		{name: "one of three rounds down", in: records(true, false, false), want: 33},
		{name: "two of three rounds up", in: records(true, true, false), want: 67},
		{name: "half up", in: records(true, false, false, false, false, false, false, false), want: 13}, // 12.5
		{name: "one of two hundred", in: append(records(true), records(make([]bool, 199)...)...), want: 1}, // 0.5
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, got >= 0 && got <= 100)
		})
	}
}

func TestSessionCount(t *testing.T) {
	atts := []Attendance{
		{SessionID: "s1", IsValid: true},
		{SessionID: "s1", IsValid: false},
		{SessionID: "s2", IsValid: true},
	}
	assert.Equal(t, 2, SessionCount(atts, "s1"), "invalid records count too")
	assert.Equal(t, 1, SessionCount(atts, "s2"))
	assert.Equal(t, 0, SessionCount(atts, "s3"))
}

func TestEventRate(t *testing.T) {
	enrollments := []enrollment.Enrollment{
		{ID: "1", EventID: "e1", Status: enrollment.StatusConfirmed},
		{ID: "2", EventID: "e1", Status: enrollment.StatusConfirmed},
		{ID: "3", EventID: "e1", Status: enrollment.StatusPending},
	}
	atts := []Attendance{
		{EnrollmentID: "1", SessionID: "s1"},
		{EnrollmentID: "1", SessionID: "s2"},
		{EnrollmentID: "2", SessionID: "s1"},
		{EnrollmentID: "3", SessionID: "s1"},
	}
	assert.Equal(t, 75, EventRate(enrollments, atts, 2))
	assert.Equal(t, 0, EventRate(enrollments, atts, 0))
	assert.Equal(t, 0, EventRate(nil, atts, 2))
}

func TestEventStats(t *testing.T) {
	enrollments := []enrollment.Enrollment{
		{ID: "1", EventID: "e1", Status: enrollment.StatusConfirmed},
		{ID: "2", EventID: "e1", Status: enrollment.StatusConfirmed},
		{ID: "3", EventID: "e2", Status: enrollment.StatusConfirmed},
	}
	atts := []Attendance{
		{EnrollmentID: "1", SessionID: "s1", IsValid: true},
		{EnrollmentID: "2", SessionID: "s1", IsValid: false},
		{EnrollmentID: "1", SessionID: "s2", IsValid: true},
		{EnrollmentID: "3", SessionID: "x1", IsValid: true},
	}

	st := EventStats("e1", []string{"s1", "s2", "s3"}, enrollments, atts)
	assert.Equal(t, 2, st.Enrolled)
	assert.Equal(t, 3, st.TotalAttendances)
	assert.Equal(t, 50, st.Rate)
	assert.Equal(t, []SessionStats{
		{SessionID: "s1", Attendances: 2, Rate: 100},
		{SessionID: "s2", Attendances: 1, Rate: 50},
		{SessionID: "s3", Attendances: 0, Rate: 0},
	}, st.Sessions)

	empty := EventStats("e9", nil, enrollments, atts)
	assert.Equal(t, Stats{Sessions: []SessionStats{}}, empty)
}

func TestForEnrollmentAndLastCheckIn(t *testing.T) {
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	atts := []Attendance{
		{ID: "a", EnrollmentID: "1", CheckedInAt: base},
		{ID: "b", EnrollmentID: "1", CheckedInAt: base.Add(48 * time.Hour)},
		{ID: "c", EnrollmentID: "1", CheckedInAt: base.Add(24 * time.Hour)},
		{ID: "d", EnrollmentID: "2", CheckedInAt: base.Add(72 * time.Hour)},
	}
	assert.Len(t, ForEnrollment(atts, "1"), 3)
	assert.Empty(t, ForEnrollment(atts, "9"))

	last, ok := LastCheckIn(atts, "1")
	assert.True(t, ok)
	assert.Equal(t, "b", last.ID)

	_, ok = LastCheckIn(atts, "9")
	assert.False(t, ok)
}
