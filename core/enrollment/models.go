package enrollment

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusWaitlist  Status = "waitlist"
	StatusCancelled Status = "cancelled"
)

// ParseStatus normalizes a backend status. Both spellings of cancelled are accepted; anything unknown
// is pending.
func ParseStatus(s string) Status {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusConfirmed, StatusWaitlist, StatusCancelled:
		return st
	case "canceled":
		return StatusCancelled
	default:
		return StatusPending
	}
}

// Enrollment links a student to an event. QRCode is the opaque value printed on the badge and scanned
// at check-in.
type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	EventID    string    `json:"event_id"`
	Status     Status    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
	QRCode     string    `json:"qr_code"`
}

func (e Enrollment) IsConfirmed() bool {
	return e.Status == StatusConfirmed
}

// Confirmed returns the confirmed enrollments of eventID, keeping their order.
func Confirmed(enrollments []Enrollment, eventID string) []Enrollment {
	out := make([]Enrollment, 0, len(enrollments))
	for _, e := range enrollments {
		if e.EventID == eventID && e.IsConfirmed() {
			out = append(out, e)
		}
	}
	return out
}

// ByQRCode finds the confirmed enrollment of eventID carrying code.
func ByQRCode(enrollments []Enrollment, eventID, code string) (Enrollment, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Enrollment{}, false
	}
	for _, e := range enrollments {
		if e.EventID == eventID && e.IsConfirmed() && e.QRCode == code {
			return e, true
		}
	}
	return Enrollment{}, false
}

// NewEnrollment is the enrollment request. The dashboard always asks for idempotent enrollment with
// reactivation of cancelled enrollments.
type NewEnrollment struct {
	StudentID            string `json:"student_id" validate:"required"`
	Idempotent           bool   `json:"idempotent"`
	ReactivateIfCanceled bool   `json:"reactivate_if_canceled"`
}
