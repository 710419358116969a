package inmemdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestDB(t *testing.T) *DB {
	seed := DefaultSeed()
	seed.PasswordCost = bcrypt.MinCost
	db, err := New(seed)
	require.NoError(t, err)
	return db
}

func eventByTitle(t *testing.T, db *DB, title string) Event {
	for _, ev := range db.ListEvents() {
		if ev.Title == title {
			return ev
		}
	}
	t.Fatalf("event %q not seeded", title)
	return Event{}
}

func TestDB_Authenticate(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name     string
		username string
		password string
		role     string
		wantErr  bool
	}{
		{"admin", "admin@demo.edu", "admin123", "admin", false},
		{"case insensitive email", " ADMIN@demo.edu ", "admin123", "admin", false},
		{"gatekeeper", "portaria@demo.edu", "portaria123", "gatekeeper", false},
		{"wrong password", "admin@demo.edu", "nope", "", true},
		{"unknown user", "x@demo.edu", "admin123", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			usr, err := db.Authenticate(tc.username, tc.password)
			if tc.wantErr {
				assert.Equal(t, ErrNotFound, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.role, usr.Role)
		})
	}
}

func TestDB_RefreshTokenSingleUse(t *testing.T) {
	db := newTestDB(t)
	db.SaveRefreshToken("jti-1", 1)

	id, err := db.UseRefreshToken("jti-1")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = db.UseRefreshToken("jti-1")
	assert.Equal(t, ErrNotFound, err)
}

func TestDB_DeleteEvent(t *testing.T) {
	db := newTestDB(t)
	semana := eventByTitle(t, db, "Semana Academica de Computacao")
	workshop := eventByTitle(t, db, "Workshop de Pesquisa")

	assert.Equal(t, ErrConflict, db.DeleteEvent(semana.ID))
	assert.Equal(t, ErrNotFound, db.DeleteEvent(999))

	require.NoError(t, db.DeleteEvent(workshop.ID))
	_, err := db.GetEvent(workshop.ID)
	assert.Equal(t, ErrNotFound, err)

	days, err := db.ListDays(semana.ID)
	require.NoError(t, err)
	require.Len(t, days, 3)
	for _, d := range days {
		require.NoError(t, db.DeleteDay(semana.ID, d.ID))
	}
	require.NoError(t, db.DeleteEvent(semana.ID))
	assert.Empty(t, db.ListEnrollments(semana.ID))
}

func TestDB_ListDaysOrdered(t *testing.T) {
	db := newTestDB(t)
	semana := eventByTitle(t, db, "Semana Academica de Computacao")

	late, err := db.CreateDay(EventDay{EventID: semana.ID, Date: "2000-01-01", StartTime: "14:00", EndTime: "15:00"})
	require.NoError(t, err)
	early, err := db.CreateDay(EventDay{EventID: semana.ID, Date: "2000-01-01", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	days, err := db.ListDays(semana.ID)
	require.NoError(t, err)
	assert.Equal(t, early.ID, days[0].ID)
	assert.Equal(t, late.ID, days[1].ID)

	_, err = db.ListDays(999)
	assert.Equal(t, ErrNotFound, err)
	_, err = db.CreateDay(EventDay{EventID: 999})
	assert.Equal(t, ErrNotFound, err)
}

func TestDB_SearchStudents(t *testing.T) {
	db := newTestDB(t)

	names := func(ss []Student) []string {
		out := make([]string, len(ss))
		for i, s := range ss {
			out[i] = s.Name
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		page  int
		size  int
		want  []string
		total int
	}{
		{"all", "", 1, 10, []string{"Ana Souza", "Bruno Lima", "Carla Mendes", "Diego Santos"}, 4},
		{"substring", "lim", 1, 10, []string{"Bruno Lima"}, 1},
		{"typo", "brunu", 1, 10, []string{"Bruno Lima"}, 1},
		{"cpf", "111444", 1, 10, []string{"Bruno Lima"}, 1},
		{"ra", "2021003", 1, 10, []string{"Carla Mendes"}, 1},
		{"second page", "", 2, 3, []string{"Diego Santos"}, 4},
		{"past the end", "", 3, 3, []string{}, 4},
		{"no match", "zzzzzz", 1, 10, []string{}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			found, total := db.SearchStudents(tc.query, tc.page, tc.size)
			assert.Equal(t, tc.want, names(found))
			assert.Equal(t, tc.total, total)
		})
	}
}

func TestDB_CreateStudentDuplicateCPF(t *testing.T) {
	db := newTestDB(t)
	_, err := db.CreateStudent(Student{Name: "Outra Ana", CPF: "52998224725", RA: "x"})
	assert.Equal(t, ErrConflict, err)

	s, err := db.CreateStudent(Student{Name: "Eva", CPF: "39053344705", RA: "2021005"})
	require.NoError(t, err)
	assert.NotZero(t, s.ClientID)
}

func TestDB_Enroll(t *testing.T) {
	db := newTestDB(t)
	db.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	semana := eventByTitle(t, db, "Semana Academica de Computacao")

	byName := map[string]int64{}
	all, _ := db.SearchStudents("", 1, 0)
	for _, s := range all {
		byName[s.Name] = s.ID
	}

	t.Run("existing is returned when idempotent", func(t *testing.T) {
		e, created, err := db.Enroll(semana.ID, byName["Ana Souza"], true, true)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, statusConfirmed, e.Status)
	})

	t.Run("existing conflicts when not idempotent", func(t *testing.T) {
		_, _, err := db.Enroll(semana.ID, byName["Ana Souza"], false, false)
		assert.Equal(t, ErrConflict, err)
	})

	t.Run("cancelled is reactivated", func(t *testing.T) {
		e, created, err := db.Enroll(semana.ID, byName["Carla Mendes"], true, true)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, statusConfirmed, e.Status)
	})

	t.Run("new enrollment", func(t *testing.T) {
		e, created, err := db.Enroll(semana.ID, byName["Diego Santos"], true, true)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, statusConfirmed, e.Status)
		assert.Equal(t, db.now(), e.EnrolledAt)
		assert.Regexp(t, `^ENR-\d+-[0-9A-F]{8}$`, e.QRCode)
	})

	t.Run("unknown references", func(t *testing.T) {
		_, _, err := db.Enroll(999, byName["Ana Souza"], true, true)
		assert.Equal(t, ErrNotFound, err)
		_, _, err = db.Enroll(semana.ID, 999, true, true)
		assert.Equal(t, ErrNotFound, err)
	})
}

func TestDB_EnrollWaitlist(t *testing.T) {
	db := newTestDB(t)
	ev := db.CreateEvent(Event{Title: "Lotado", CapacityTotal: 1})
	students, _ := db.SearchStudents("", 1, 0)

	first, _, err := db.Enroll(ev.ID, students[0].ID, true, true)
	require.NoError(t, err)
	second, _, err := db.Enroll(ev.ID, students[1].ID, true, true)
	require.NoError(t, err)

	assert.Equal(t, statusConfirmed, first.Status)
	assert.Equal(t, statusWaitlist, second.Status)

	cancelled, err := db.CancelEnrollment(first.ID)
	require.NoError(t, err)
	assert.Equal(t, statusCancelled, cancelled.Status)

	_, err = db.CancelEnrollment(999)
	assert.Equal(t, ErrNotFound, err)
}

func TestDB_ReactivateWhenFull(t *testing.T) {
	db := newTestDB(t)
	ev := db.CreateEvent(Event{Title: "Lotado", CapacityTotal: 1})
	students, _ := db.SearchStudents("", 1, 0)

	first, _, err := db.Enroll(ev.ID, students[0].ID, true, true)
	require.NoError(t, err)
	_, err = db.CancelEnrollment(first.ID)
	require.NoError(t, err)

	second, created, err := db.Enroll(ev.ID, students[1].ID, true, true)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, statusConfirmed, second.Status)

	back, created, err := db.Enroll(ev.ID, students[0].ID, true, true)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, back.ID)
	assert.Equal(t, statusWaitlist, back.Status)

	_, err = db.CancelEnrollment(second.ID)
	require.NoError(t, err)
	_, err = db.CancelEnrollment(back.ID)
	require.NoError(t, err)
	again, _, err := db.Enroll(ev.ID, students[0].ID, true, true)
	require.NoError(t, err)
	assert.Equal(t, statusConfirmed, again.Status)
}

func TestDB_Client(t *testing.T) {
	db := newTestDB(t)

	cl, err := db.GetClient()
	require.NoError(t, err)
	assert.Equal(t, "demo", cl.Slug)

	_, err = db.CreateClient(Client{Name: "x"})
	assert.Equal(t, ErrConflict, err)

	cl.Name = "Faculdade Renomeada"
	updated, err := db.UpdateClient(cl)
	require.NoError(t, err)
	assert.Equal(t, cl.ID, updated.ID)
}

func TestDB_Reset(t *testing.T) {
	db := newTestDB(t)
	before := db.ListEvents()

	db.CreateEvent(Event{Title: "Temporario"})
	_, err := db.CreateStudent(Student{Name: "Eva", CPF: "39053344705"})
	require.NoError(t, err)
	db.SaveRefreshToken("jti", 1)

	db.Reset()
	assert.Equal(t, before, db.ListEvents())
	_, total := db.SearchStudents("", 1, 0)
	assert.Equal(t, 4, total)
	_, err = db.UseRefreshToken("jti")
	assert.Equal(t, ErrNotFound, err)
}
