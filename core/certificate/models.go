package certificate

import (
	"time"

	"github.com/SotorivaXL/academic-event-manag-main/core/attendance"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
)

type Status string

const (
	StatusIssued  Status = "issued"
	StatusRevoked Status = "revoked"
)

type Certificate struct {
	ID               string    `json:"id"`
	EnrollmentID     string    `json:"enrollment_id"`
	IssuedAt         time.Time `json:"issued_at"`
	VerificationCode string    `json:"verification_code"`
	Status           Status    `json:"status"`
	PDFPath          string    `json:"pdf_path,omitempty"`
}

func (c Certificate) IsIssued() bool {
	return c.Status == StatusIssued
}

// Data is the working set the engine reads: everything it needs to resolve an enrollment.
type Data struct {
	Events       []event.Event
	Students     []student.Student
	Enrollments  []enrollment.Enrollment
	Attendances  []attendance.Attendance
	Certificates []Certificate
}

func (d Data) event(id string) *event.Event {
	for i := range d.Events {
		if d.Events[i].ID == id {
			return &d.Events[i]
		}
	}
	return nil
}

func (d Data) student(id string) *student.Student {
	for i := range d.Students {
		if d.Students[i].ID == id {
			return &d.Students[i]
		}
	}
	return nil
}

func (d Data) enrollment(id string) (enrollment.Enrollment, bool) {
	for _, e := range d.Enrollments {
		if e.ID == id {
			return e, true
		}
	}
	return enrollment.Enrollment{}, false
}

// Candidate is one row of the issuance preview.
type Candidate struct {
	Enrollment     enrollment.Enrollment
	Student        student.Student
	Event          event.Event
	AttendanceRate int
	Attended       int
	Eligible       bool
	Certificate    *Certificate
}

func (c Candidate) HasCertificate() bool {
	return c.Certificate != nil
}

// Summary is the certificates dashboard header.
type Summary struct {
	Total                  int
	Issued                 int
	EventsWithCertificates int
	AvailableEvents        int
	CertificationRate      int
}
