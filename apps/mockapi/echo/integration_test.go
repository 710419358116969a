package echoapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/auth"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
	"github.com/SotorivaXL/academic-event-manag-main/services/restapi"
)

func newRestClient(t *testing.T) (*restapi.Client, *auth.MemoryStore) {
	t.Helper()
	srv, _ := setup(t)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	store := auth.NewMemoryStore()
	return restapi.New(ts.URL+base, 5*time.Second, store, core.NewNopLogger()), store
}

func TestRestClient_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"admin", "admin@demo.edu", "admin123", nil},
		{"gatekeeper is not allowed", "portaria@demo.edu", "portaria123", auth.ErrRoleNotAllowed},
		{"bad credentials", "admin@demo.edu", "nope", auth.ErrInvalidCredentials},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, store := newRestClient(t)
			usr, err := c.Session().Login(ctx, tc.username, tc.password)
			if tc.wantErr != nil {
				assert.Equal(t, tc.wantErr, err)
				assert.Empty(t, store.Load().Access)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", usr.Role)
			assert.True(t, c.Session().IsAuthenticated())
		})
	}
}

func TestRestClient_RefreshOnUnauthorized(t *testing.T) {
	ctx := context.Background()
	c, store := newRestClient(t)
	_, err := c.Session().Login(ctx, "admin@demo.edu", "admin123")
	require.NoError(t, err)

	st := store.Load()
	refresh := st.Refresh
	st.Access = "stale"
	require.NoError(t, store.Save(st))

	events, err := c.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	st = store.Load()
	assert.NotEqual(t, "stale", st.Access)
	assert.NotEqual(t, refresh, st.Refresh)

	// both tokens rejected: the session ends
	st.Access, st.Refresh = "stale", refresh
	require.NoError(t, store.Save(st))
	_, err = c.ListEvents(ctx)
	assert.Equal(t, auth.ErrSessionExpired, err)
	assert.False(t, c.Session().IsAuthenticated())
}

func TestRestClient_Services(t *testing.T) {
	ctx := context.Background()
	c, _ := newRestClient(t)
	_, err := c.Session().Login(ctx, "admin@demo.edu", "admin123")
	require.NoError(t, err)

	validate, translator := core.NewValidator()
	events := event.NewService(c, validate, translator, core.NewNopLogger())
	students := student.NewService(c, validate, translator)
	enrollments := enrollment.NewService(c)

	list, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	semana := list[0]
	assert.Equal(t, "Semana Academica de Computacao", semana.Title)
	assert.Len(t, semana.Days, 3)

	assert.Equal(t, event.ErrEventHasDays, events.Delete(ctx, semana.ID))

	found, err := students.List(ctx, "brunu", 1, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bruno Lima", found[0].Name)

	diego, err := students.List(ctx, "diego", 1, 10)
	require.NoError(t, err)
	require.Len(t, diego, 1)

	e, err := enrollments.Enroll(ctx, semana.ID, diego[0].ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusConfirmed, e.Status)
	assert.NotEmpty(t, e.QRCode)

	again, err := enrollments.Enroll(ctx, semana.ID, diego[0].ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, again.ID)

	cancelled, err := enrollments.Cancel(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusCancelled, cancelled.Status)

	reactivated, err := enrollments.Enroll(ctx, semana.ID, diego[0].ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusConfirmed, reactivated.Status)

	_, err = enrollments.Enroll(ctx, "999", diego[0].ID)
	assert.True(t, core.IsNotFound(err), "%v", err)

	ev, err := events.Create(ctx, event.NewEvent{Title: "Oficina", Capacity: 20})
	require.NoError(t, err)
	require.NoError(t, events.Delete(ctx, ev.ID))
}
