package mirror

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core/attendance"
	"github.com/SotorivaXL/academic-event-manag-main/core/certificate"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
)

// Snapshot is the serializable content of a State.
type Snapshot struct {
	Events       []event.Event             `json:"events"`
	Students     []student.Student         `json:"students"`
	Enrollments  []enrollment.Enrollment   `json:"enrollments"`
	Attendances  []attendance.Attendance   `json:"attendances"`
	Certificates []certificate.Certificate `json:"certificates"`
}

func (s Snapshot) normalized() Snapshot {
	if s.Events == nil {
		s.Events = []event.Event{}
	}
	if s.Students == nil {
		s.Students = []student.Student{}
	}
	if s.Enrollments == nil {
		s.Enrollments = []enrollment.Enrollment{}
	}
	if s.Attendances == nil {
		s.Attendances = []attendance.Attendance{}
	}
	if s.Certificates == nil {
		s.Certificates = []certificate.Certificate{}
	}
	return s
}

// State is the dashboard's local copy of server data plus the records only kept locally (attendances
// and certificates). It is safe for concurrent use.
type State struct {
	mu      sync.RWMutex
	initial Snapshot
	data    Snapshot
}

// New returns a State holding a copy of initial; Reset goes back to it.
func New(initial Snapshot) *State {
	initial = initial.normalized()
	return &State{initial: initial, data: initial.clone()}
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Events:       append([]event.Event{}, s.Events...),
		Students:     append([]student.Student{}, s.Students...),
		Enrollments:  append([]enrollment.Enrollment{}, s.Enrollments...),
		Attendances:  append([]attendance.Attendance{}, s.Attendances...),
		Certificates: append([]certificate.Certificate{}, s.Certificates...),
	}
}

// Clear drops everything, whatever the state was built from.
func (st *State) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.data = Snapshot{}.normalized()
}

// Reset goes back to the snapshot the state was built from.
func (st *State) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.data = st.initial.clone()
}

// Snapshot returns a copy of the current content.
func (st *State) Snapshot() Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.data.clone()
}

// CertificateData is the working set for the certificate engine.
func (st *State) CertificateData() certificate.Data {
	s := st.Snapshot()
	return certificate.Data{
		Events:       s.Events,
		Students:     s.Students,
		Enrollments:  s.Enrollments,
		Attendances:  s.Attendances,
		Certificates: s.Certificates,
	}
}

func (st *State) SetEvents(events []event.Event) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.data.Events = append([]event.Event{}, events...)
}

// PutEvent replaces the event with the same id, or appends it.
func (st *State) PutEvent(ev event.Event) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range st.data.Events {
		if st.data.Events[i].ID == ev.ID {
			st.data.Events[i] = ev
			return
		}
	}
	st.data.Events = append(st.data.Events, ev)
}

func (st *State) Event(id string) (event.Event, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, ev := range st.data.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return event.Event{}, false
}

// DeleteEvent drops the event along with its enrollments and their attendances and certificates.
func (st *State) DeleteEvent(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	events := st.data.Events[:0]
	for _, ev := range st.data.Events {
		if ev.ID != id {
			events = append(events, ev)
		}
	}
	st.data.Events = events

	dropped := make(map[string]struct{})
	enrollments := st.data.Enrollments[:0]
	for _, e := range st.data.Enrollments {
		if e.EventID == id {
			dropped[e.ID] = struct{}{}
			continue
		}
		enrollments = append(enrollments, e)
	}
	st.data.Enrollments = enrollments

	attendances := st.data.Attendances[:0]
	for _, a := range st.data.Attendances {
		if _, ok := dropped[a.EnrollmentID]; !ok {
			attendances = append(attendances, a)
		}
	}
	st.data.Attendances = attendances

	certs := st.data.Certificates[:0]
	for _, c := range st.data.Certificates {
		if _, ok := dropped[c.EnrollmentID]; !ok {
			certs = append(certs, c)
		}
	}
	st.data.Certificates = certs
}

func (st *State) SetStudents(students []student.Student) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.data.Students = append([]student.Student{}, students...)
}

func (st *State) PutStudent(s student.Student) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range st.data.Students {
		if st.data.Students[i].ID == s.ID {
			st.data.Students[i] = s
			return
		}
	}
	st.data.Students = append(st.data.Students, s)
}

func (st *State) DeleteStudent(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	students := st.data.Students[:0]
	for _, s := range st.data.Students {
		if s.ID != id {
			students = append(students, s)
		}
	}
	st.data.Students = students
}

// SetEnrollments replaces the enrollments of one event, leaving the other events' alone.
func (st *State) SetEnrollments(eventID string, enrollments []enrollment.Enrollment) {
	st.mu.Lock()
	defer st.mu.Unlock()
	kept := make([]enrollment.Enrollment, 0, len(st.data.Enrollments)+len(enrollments))
	for _, e := range st.data.Enrollments {
		if e.EventID != eventID {
			kept = append(kept, e)
		}
	}
	st.data.Enrollments = append(kept, enrollments...)
}

func (st *State) PutEnrollment(e enrollment.Enrollment) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range st.data.Enrollments {
		if st.data.Enrollments[i].ID == e.ID {
			st.data.Enrollments[i] = e
			return
		}
	}
	st.data.Enrollments = append(st.data.Enrollments, e)
}

// PutAttendance stores a check-in, or replaces the record on check-out.
func (st *State) PutAttendance(a attendance.Attendance) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range st.data.Attendances {
		if st.data.Attendances[i].ID == a.ID {
			st.data.Attendances[i] = a
			return
		}
	}
	st.data.Attendances = append(st.data.Attendances, a)
}

func (st *State) PutCertificate(c certificate.Certificate) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range st.data.Certificates {
		if st.data.Certificates[i].ID == c.ID {
			st.data.Certificates[i] = c
			return
		}
	}
	st.data.Certificates = append(st.data.Certificates, c)
}

func (st *State) Certificate(id string) (certificate.Certificate, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, c := range st.data.Certificates {
		if c.ID == id || c.VerificationCode == id {
			return c, true
		}
	}
	return certificate.Certificate{}, false
}

// Load reads a State saved by Save. A missing file yields an empty State.
func Load(path string) (*State, error) {
	b, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return New(Snapshot{}), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading state")
	}
	var snap Snapshot
	if err = json.Unmarshal(b, &snap); err != nil {
		return nil, errors.Wrapf(err, "decoding state %s", path)
	}
	return New(snap), nil
}

func (st *State) Save(path string) error {
	b, err := json.MarshalIndent(st.Snapshot(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding state")
	}
	if err = os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(err, "creating state dir")
	}
	return errors.Wrap(ioutil.WriteFile(path, b, 0600), "writing state")
}
