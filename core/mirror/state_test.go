package mirror

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SotorivaXL/academic-event-manag-main/core/attendance"
	"github.com/SotorivaXL/academic-event-manag-main/core/certificate"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
)

func seed() Snapshot {
	return Snapshot{
		Events:   []event.Event{{ID: "e1", Title: "A"}, {ID: "e2", Title: "B"}},
		Students: []student.Student{{ID: "s1", Name: "Ana"}},
		Enrollments: []enrollment.Enrollment{
			{ID: "n1", EventID: "e1", StudentID: "s1"},
			{ID: "n2", EventID: "e2", StudentID: "s1"},
		},
		Attendances: []attendance.Attendance{
			{ID: "a1", EnrollmentID: "n1"},
			{ID: "a2", EnrollmentID: "n2"},
		},
		Certificates: []certificate.Certificate{
			{ID: "c1", EnrollmentID: "n1"},
			{ID: "c2", EnrollmentID: "n2", VerificationCode: "ABCD1234"},
		},
	}
}

func TestState_DeleteEventCascades(t *testing.T) {
	st := New(seed())
	st.DeleteEvent("e1")

	snap := st.Snapshot()
	assert.Equal(t, []event.Event{{ID: "e2", Title: "B"}}, snap.Events)
	assert.Equal(t, []enrollment.Enrollment{{ID: "n2", EventID: "e2", StudentID: "s1"}}, snap.Enrollments)
	assert.Equal(t, []attendance.Attendance{{ID: "a2", EnrollmentID: "n2"}}, snap.Attendances)
	assert.Equal(t, []certificate.Certificate{{ID: "c2", EnrollmentID: "n2", VerificationCode: "ABCD1234"}}, snap.Certificates)
	assert.Len(t, snap.Students, 1, "students are not owned by events")
}

func TestState_Reset(t *testing.T) {
	st := New(seed())
	st.DeleteEvent("e1")
	st.PutStudent(student.Student{ID: "s2"})
	st.Reset()
	assert.Equal(t, seed(), st.Snapshot())

	empty := New(Snapshot{})
	empty.PutEvent(event.Event{ID: "x"})
	empty.Reset()
	assert.Empty(t, empty.Snapshot().Events)
	assert.NotNil(t, empty.Snapshot().Events)
}

func TestState_ClearLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	assert.NoError(t, New(seed()).Save(path))

	st, err := Load(path)
	if !assert.NoError(t, err) {
		return
	}
	st.Clear()

	snap := st.Snapshot()
	assert.Equal(t, Snapshot{}.normalized(), snap)
	assert.NotNil(t, snap.Certificates)

	st.Reset()
	assert.Equal(t, seed(), st.Snapshot(), "reset still returns to the loaded snapshot")
}

func TestState_Put(t *testing.T) {
	st := New(seed())

	st.PutEvent(event.Event{ID: "e1", Title: "A2"})
	st.PutEvent(event.Event{ID: "e3"})
	ev, ok := st.Event("e1")
	assert.True(t, ok)
	assert.Equal(t, "A2", ev.Title)
	assert.Len(t, st.Snapshot().Events, 3)

	st.PutAttendance(attendance.Attendance{ID: "a1", EnrollmentID: "n1", IsValid: true})
	st.PutAttendance(attendance.Attendance{ID: "a3", EnrollmentID: "n1"})
	atts := st.Snapshot().Attendances
	assert.Len(t, atts, 3)
	assert.True(t, atts[0].IsValid)

	st.SetEnrollments("e1", []enrollment.Enrollment{{ID: "n9", EventID: "e1"}})
	enrs := st.Snapshot().Enrollments
	assert.Len(t, enrs, 2)
	assert.Equal(t, "n2", enrs[0].ID)
	assert.Equal(t, "n9", enrs[1].ID)

	c, ok := st.Certificate("ABCD1234")
	assert.True(t, ok)
	assert.Equal(t, "c2", c.ID)
	st.PutCertificate(certificate.Certificate{ID: "c2", Status: certificate.StatusRevoked})
	c, _ = st.Certificate("c2")
	assert.Equal(t, certificate.StatusRevoked, c.Status)

	st.DeleteStudent("s1")
	assert.Empty(t, st.Snapshot().Students)
	assert.Len(t, st.CertificateData().Enrollments, 2)
}

func TestState_SnapshotIsACopy(t *testing.T) {
	st := New(seed())
	snap := st.Snapshot()
	snap.Events[0].Title = "changed"
	ev, _ := st.Event("e1")
	assert.Equal(t, "A", ev.Title)
}

func TestState_Concurrent(t *testing.T) {
	st := New(Snapshot{})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st.PutAttendance(attendance.Attendance{ID: string(rune('a' + i))})
			_ = st.Snapshot()
		}(i)
	}
	wg.Wait()
	assert.Len(t, st.Snapshot().Attendances, 20)
}

func TestLoadSave(t *testing.T) {
	dir, err := ioutil.TempDir("", "mirror")
	if !assert.NoError(t, err) {
		return
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "nested", "state.json")

	st, err := Load(path)
	assert.NoError(t, err)
	assert.Empty(t, st.Snapshot().Events)

	st = New(seed())
	assert.NoError(t, st.Save(path))

	loaded, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, seed(), loaded.Snapshot())

	assert.NoError(t, ioutil.WriteFile(path, []byte("{"), 0600))
	_, err = Load(path)
	assert.Error(t, err)
}
