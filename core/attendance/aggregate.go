package attendance

import (
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
)

// ratio returns round(100*num/den) rounding half up, or 0 when den is 0.
func ratio(num, den int) int {
	if den <= 0 || num <= 0 {
		return 0
	}
	return (200*num + den) / (2 * den)
}

// Percentage is the share of valid records, 0 for no records.
func Percentage(records []Attendance) int {
	valid := 0
	for _, a := range records {
		if a.IsValid {
			valid++
		}
	}
	return ratio(valid, len(records))
}

// SessionCount counts the records of a session whatever their validity.
func SessionCount(attendances []Attendance, sessionID string) int {
	n := 0
	for _, a := range attendances {
		if a.SessionID == sessionID {
			n++
		}
	}
	return n
}

// ForEnrollment returns the records of one enrollment, keeping their order.
func ForEnrollment(attendances []Attendance, enrollmentID string) []Attendance {
	out := make([]Attendance, 0)
	for _, a := range attendances {
		if a.EnrollmentID == enrollmentID {
			out = append(out, a)
		}
	}
	return out
}

// ofEnrollments returns the records belonging to any of the given enrollments.
func ofEnrollments(attendances []Attendance, enrollments []enrollment.Enrollment) []Attendance {
	ids := make(map[string]struct{}, len(enrollments))
	for _, e := range enrollments {
		ids[e.ID] = struct{}{}
	}
	out := make([]Attendance, 0)
	for _, a := range attendances {
		if _, ok := ids[a.EnrollmentID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// EventRate is round(100*records / (confirmed enrollments × sessions)), where enrollments are those of a
// single event and records are the attendances of its confirmed enrollments.
func EventRate(enrollments []enrollment.Enrollment, attendances []Attendance, sessionCount int) int {
	confirmed := make([]enrollment.Enrollment, 0, len(enrollments))
	for _, e := range enrollments {
		if e.IsConfirmed() {
			confirmed = append(confirmed, e)
		}
	}
	return ratio(len(ofEnrollments(attendances, confirmed)), len(confirmed)*sessionCount)
}

// EventStats computes the attendance panel of an event: confirmed enrollments, their records, the
// overall rate and a per-session tally against the number enrolled.
func EventStats(eventID string, sessionIDs []string, enrollments []enrollment.Enrollment, attendances []Attendance) Stats {
	confirmed := enrollment.Confirmed(enrollments, eventID)
	records := ofEnrollments(attendances, confirmed)

	st := Stats{
		Enrolled:         len(confirmed),
		TotalAttendances: len(records),
		Rate:             ratio(len(records), len(confirmed)*len(sessionIDs)),
		Sessions:         make([]SessionStats, 0, len(sessionIDs)),
	}
	for _, id := range sessionIDs {
		n := SessionCount(attendances, id)
		st.Sessions = append(st.Sessions, SessionStats{SessionID: id, Attendances: n, Rate: ratio(n, st.Enrolled)})
	}
	return st
}

// LastCheckIn returns the most recent record of an enrollment.
func LastCheckIn(attendances []Attendance, enrollmentID string) (Attendance, bool) {
	var (
		last  Attendance
		found bool
	)
	for _, a := range attendances {
		if a.EnrollmentID != enrollmentID {
			continue
		}
		if !found || a.CheckedInAt.After(last.CheckedInAt) {
			last, found = a, true
		}
	}
	return last, found
}
