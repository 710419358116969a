package certificate

import (
	"time"

	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/attendance"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
)

var ErrAlreadyRevoked = errors.New("certificate is already revoked")

// IsEligible reports whether pct meets the minimum; meeting it exactly qualifies.
func IsEligible(pct, min int) bool {
	return pct >= min
}

// issuedFor returns the issued certificate of an enrollment, if any. Revoked ones do not count.
func issuedFor(certs []Certificate, enrollmentID string) *Certificate {
	for i := range certs {
		if certs[i].EnrollmentID == enrollmentID && certs[i].IsIssued() {
			return &certs[i]
		}
	}
	return nil
}

// Engine issues certificates. Its clock and generators are replaceable for tests.
type Engine struct {
	Now     func() time.Time
	NewID   func() string
	NewCode func() string
}

func NewEngine() *Engine {
	return &Engine{Now: time.Now, NewID: core.NewID, NewCode: core.NewVerificationCode}
}

// GenerateForEnrollment returns a new issued certificate, or nil when the event or student is
// unresolved, attendance is below the event minimum, or an issued certificate already exists.
func (eng *Engine) GenerateForEnrollment(
	enr enrollment.Enrollment,
	ev *event.Event,
	st *student.Student,
	attendances []attendance.Attendance,
	existing []Certificate,
) *Certificate {
	if ev == nil || st == nil {
		return nil
	}
	pct := attendance.Percentage(attendance.ForEnrollment(attendances, enr.ID))
	if !IsEligible(pct, ev.MinAttendancePercentage) {
		return nil
	}
	if issuedFor(existing, enr.ID) != nil {
		return nil
	}
	return &Certificate{
		ID:               eng.NewID(),
		EnrollmentID:     enr.ID,
		IssuedAt:         eng.Now(),
		VerificationCode: eng.uniqueCode(existing),
		Status:           StatusIssued,
	}
}

func (eng *Engine) uniqueCode(existing []Certificate) string {
	used := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		used[c.VerificationCode] = struct{}{}
	}
	for {
		code := eng.NewCode()
		if _, ok := used[code]; !ok {
			return code
		}
	}
}

// BatchGenerate issues certificates for every confirmed enrollment of eventID, in order. onCreate is
// called once per new certificate. A zero count is not an error.
func (eng *Engine) BatchGenerate(eventID string, data Data, onCreate func(Certificate)) (int, error) {
	if eventID == "" {
		return 0, core.NewValidationError(core.ErrSelectionRequired)
	}

	ev := data.event(eventID)
	working := make([]Certificate, len(data.Certificates), len(data.Certificates)+len(data.Enrollments))
	copy(working, data.Certificates)

	count := 0
	for _, enr := range enrollment.Confirmed(data.Enrollments, eventID) {
		cert := eng.GenerateForEnrollment(enr, ev, data.student(enr.StudentID), data.Attendances, working)
		if cert == nil {
			continue
		}
		working = append(working, *cert)
		count++
		if onCreate != nil {
			onCreate(*cert)
		}
	}
	return count, nil
}

// Candidates lists the preview rows of an event: every confirmed enrollment whose student resolves,
// with its attendance rate, eligibility and existing certificate.
func (eng *Engine) Candidates(eventID string, data Data) []Candidate {
	ev := data.event(eventID)
	if ev == nil {
		return []Candidate{}
	}
	out := make([]Candidate, 0)
	for _, enr := range enrollment.Confirmed(data.Enrollments, eventID) {
		st := data.student(enr.StudentID)
		if st == nil {
			continue
		}
		records := attendance.ForEnrollment(data.Attendances, enr.ID)
		pct := attendance.Percentage(records)

		var existing *Certificate
		for i := range data.Certificates {
			if data.Certificates[i].EnrollmentID == enr.ID {
				c := data.Certificates[i]
				existing = &c
				if c.IsIssued() {
					break
				}
			}
		}
		out = append(out, Candidate{
			Enrollment:     enr,
			Student:        *st,
			Event:          *ev,
			AttendanceRate: pct,
			Attended:       len(records),
			Eligible:       IsEligible(pct, ev.MinAttendancePercentage),
			Certificate:    existing,
		})
	}
	return out
}

// Summarize counts certificates overall: issued ones, distinct events certified against active events,
// and the share of enrollments holding a certificate.
func Summarize(data Data) Summary {
	s := Summary{Total: len(data.Certificates)}
	events := make(map[string]struct{})
	for _, c := range data.Certificates {
		if c.IsIssued() {
			s.Issued++
		}
		if enr, ok := data.enrollment(c.EnrollmentID); ok {
			events[enr.EventID] = struct{}{}
		}
	}
	s.EventsWithCertificates = len(events)
	for _, ev := range data.Events {
		if ev.IsActive() {
			s.AvailableEvents++
		}
	}
	if n := len(data.Enrollments); n > 0 {
		s.CertificationRate = (200*s.Total + n) / (2 * n)
	}
	return s
}

// Revoke marks an issued certificate revoked, after which the enrollment may be issued a new one.
func Revoke(c Certificate) (Certificate, error) {
	if !c.IsIssued() {
		return c, core.NewValidationError(ErrAlreadyRevoked)
	}
	c.Status = StatusRevoked
	return c, nil
}
