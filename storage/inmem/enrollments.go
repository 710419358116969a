package inmemdb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	statusConfirmed = "confirmed"
	statusWaitlist  = "waitlist"
	statusCancelled = "cancelled"
)

func qrCode(id int64) string {
	return fmt.Sprintf("ENR-%d-%s", id, strings.ToUpper(uuid.New().String()[:8]))
}

func (db *DB) ListEnrollments(eventID int64) []Enrollment {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]Enrollment, 0)
	for _, e := range db.t.enrollments {
		if eventID == 0 || e.EventID == eventID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Enroll enrolls a student into an event. An existing (student, event) pair is returned as is when
// idempotent, and brought back when cancelled and reactivate is set; without idempotent it is
// ErrConflict. New and reactivated enrollments are confirmed while the event has room, else waitlisted.
func (db *DB) Enroll(eventID, studentID int64, idempotent, reactivate bool) (Enrollment, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	ev, ok := db.t.events[eventID]
	if !ok {
		return Enrollment{}, false, ErrNotFound
	}
	if _, ok = db.t.students[studentID]; !ok {
		return Enrollment{}, false, ErrNotFound
	}

	var (
		existing  Enrollment
		found     bool
		confirmed int
	)
	for _, e := range db.t.enrollments {
		if e.EventID != eventID {
			continue
		}
		if e.StudentID == studentID {
			existing, found = e, true
		}
		if e.Status == statusConfirmed {
			confirmed++
		}
	}

	status := statusConfirmed
	if ev.CapacityTotal > 0 && confirmed >= ev.CapacityTotal {
		status = statusWaitlist
	}

	if found {
		if !idempotent {
			return Enrollment{}, false, ErrConflict
		}
		if existing.Status == statusCancelled && reactivate {
			existing.Status = status
			db.t.enrollments[existing.ID] = existing
		}
		return existing, false, nil
	}

	e := Enrollment{
		ID:         db.t.nextID(),
		StudentID:  studentID,
		EventID:    eventID,
		Status:     status,
		EnrolledAt: db.now().UTC(),
	}
	e.QRCode = qrCode(e.ID)
	db.t.enrollments[e.ID] = e
	return e, true, nil
}

func (db *DB) CancelEnrollment(id int64) (Enrollment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	e, ok := db.t.enrollments[id]
	if !ok {
		return Enrollment{}, ErrNotFound
	}
	e.Status = statusCancelled
	db.t.enrollments[id] = e
	return e, nil
}
