package attendance

import "time"

// Attendance is one check-in of an enrollment into a session, closed by an optional check-out.
type Attendance struct {
	ID           string     `json:"id"`
	EnrollmentID string     `json:"enrollment_id"`
	SessionID    string     `json:"session_id"`
	CheckedInAt  time.Time  `json:"checked_in_at"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	IsValid      bool       `json:"is_valid"`
}

func (a Attendance) IsOpen() bool {
	return a.CheckedOutAt == nil
}

// SessionStats is the tally of one session of an event.
type SessionStats struct {
	SessionID   string
	Attendances int
	Rate        int
}

// Stats summarizes attendance of an event's confirmed enrollments.
type Stats struct {
	Enrolled         int
	TotalAttendances int
	Rate             int
	Sessions         []SessionStats
}
