package attendance

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
)

var ErrAlreadyCheckedOut = errors.New("student already checked in and out of this session")

type Kind string

const (
	KindCheckIn  Kind = "check-in"
	KindCheckOut Kind = "check-out"
)

// Scan is a QR code read at the door of a session.
type Scan struct {
	EventID   string
	SessionID string
	QRCode    string
}

// Result carries the record to store: a new attendance on check-in, the closed one on check-out.
type Result struct {
	Kind       Kind
	Attendance Attendance
	Enrollment enrollment.Enrollment
}

// Recorder turns scans into attendance records.
type Recorder struct {
	Now   func() time.Time
	NewID func() string
}

func NewRecorder() *Recorder {
	return &Recorder{Now: time.Now, NewID: core.NewID}
}

// CheckIn resolves the scanned code to a confirmed enrollment of the event. The first scan of a session
// checks in, the second checks out and any later one is rejected.
func (r *Recorder) CheckIn(scan Scan, enrollments []enrollment.Enrollment, attendances []Attendance) (Result, error) {
	code := strings.TrimSpace(scan.QRCode)
	if scan.EventID == "" || scan.SessionID == "" || code == "" {
		return Result{}, core.NewValidationError(core.ErrSelectionRequired)
	}

	enr, ok := enrollment.ByQRCode(enrollments, scan.EventID, code)
	if !ok {
		return Result{}, core.NewNotFoundError("confirmed enrollment for qr code", code)
	}

	for _, a := range attendances {
		if a.EnrollmentID != enr.ID || a.SessionID != scan.SessionID {
			continue
		}
		if !a.IsOpen() {
			return Result{}, core.NewValidationError(ErrAlreadyCheckedOut)
		}
		out := r.Now()
		a.CheckedOutAt = &out
		return Result{Kind: KindCheckOut, Attendance: a, Enrollment: enr}, nil
	}

	return Result{
		Kind: KindCheckIn,
		Attendance: Attendance{
			ID:           r.NewID(),
			EnrollmentID: enr.ID,
			SessionID:    scan.SessionID,
			CheckedInAt:  r.Now(),
			IsValid:      true,
		},
		Enrollment: enr,
	}, nil
}
