package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
)

func TestRecorder_CheckIn(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	r := &Recorder{
		Now:   func() time.Time { return now },
		NewID: func() string { return "att-1" },
	}
	enrollments := []enrollment.Enrollment{
		{ID: "1", EventID: "e1", Status: enrollment.StatusConfirmed, QRCode: "QR-1"},
		{ID: "2", EventID: "e1", Status: enrollment.StatusCancelled, QRCode: "QR-2"},
	}

	t.Run("selection required", func(t *testing.T) {
		for _, scan := range []Scan{
			{SessionID: "s1", QRCode: "QR-1"},
			{EventID: "e1", QRCode: "QR-1"},
			{EventID: "e1", SessionID: "s1", QRCode: "  "},
		} {
			_, err := r.CheckIn(scan, enrollments, nil)
			assert.True(t, core.IsValidation(err))
		}
	})

	t.Run("unknown or unconfirmed code", func(t *testing.T) {
		_, err := r.CheckIn(Scan{EventID: "e1", SessionID: "s1", QRCode: "QR-2"}, enrollments, nil)
		assert.True(t, core.IsNotFound(err))
		_, err = r.CheckIn(Scan{EventID: "e2", SessionID: "s1", QRCode: "QR-1"}, enrollments, nil)
		assert.True(t, core.IsNotFound(err))
	})

	var atts []Attendance

	res, err := r.CheckIn(Scan{EventID: "e1", SessionID: "s1", QRCode: " QR-1 "}, enrollments, atts)
	assert.NoError(t, err)
	assert.Equal(t, KindCheckIn, res.Kind)
	assert.Equal(t, Attendance{ID: "att-1", EnrollmentID: "1", SessionID: "s1", CheckedInAt: now, IsValid: true}, res.Attendance)
	assert.Equal(t, "1", res.Enrollment.ID)
	atts = append(atts, res.Attendance)

	later := now.Add(2 * time.Hour)
	r.Now = func() time.Time { return later }
	res, err = r.CheckIn(Scan{EventID: "e1", SessionID: "s1", QRCode: "QR-1"}, enrollments, atts)
	assert.NoError(t, err)
	assert.Equal(t, KindCheckOut, res.Kind)
	assert.Equal(t, "att-1", res.Attendance.ID)
	if assert.NotNil(t, res.Attendance.CheckedOutAt) {
		assert.Equal(t, later, *res.Attendance.CheckedOutAt)
	}
	assert.True(t, atts[0].IsOpen(), "stored record is not mutated")
	atts[0] = res.Attendance

	_, err = r.CheckIn(Scan{EventID: "e1", SessionID: "s1", QRCode: "QR-1"}, enrollments, atts)
	assert.True(t, core.IsValidation(err))

	res, err = r.CheckIn(Scan{EventID: "e1", SessionID: "s2", QRCode: "QR-1"}, enrollments, atts)
	assert.NoError(t, err)
	assert.Equal(t, KindCheckIn, res.Kind)
}
