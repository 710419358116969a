package restapi

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/auth"
	"github.com/SotorivaXL/academic-event-manag-main/core/enrollment"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
)

func newTestClient(t *testing.T, h http.Handler, st auth.State) (*Client, *auth.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := auth.NewMemoryStore()
	if st.Access != "" || st.Refresh != "" {
		_ = store.Save(st)
	}
	return New(srv.URL+"/api/v1/demo", 5*time.Second, store, core.NewNopLogger()), store
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func loggedIn() auth.State {
	return auth.State{Tokens: auth.Tokens{Access: "old", Refresh: "r1"}, User: &auth.User{ID: 1, Role: "admin"}}
}

func TestClient_ConcurrentUnauthorizedRefreshOnce(t *testing.T) {
	const callers = 5
	var (
		refreshCalls int32
		arrived      sync.WaitGroup
	)
	arrived.Add(callers)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/demo/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		var body refreshRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.RefreshToken != "r1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		time.Sleep(300 * time.Millisecond)
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "new", "refresh_token": "r2"})
	})
	mux.HandleFunc("/api/v1/demo/events", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer new" {
			writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": 1, "title": "Semana"}})
			return
		}
		arrived.Done()
		arrived.Wait()
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, store := newTestClient(t, mux, loggedIn())

	var wg sync.WaitGroup
	errs := make([]error, callers)
	results := make([][]event.Event, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.ListEvents(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	for i := 0; i < callers; i++ {
		assert.NoError(t, errs[i])
		if assert.Len(t, results[i], 1) {
			assert.Equal(t, "1", results[i][0].ID)
		}
	}
	assert.Equal(t, auth.Tokens{Access: "new", Refresh: "r2"}, store.Load().Tokens)
}

func TestClient_RefreshFailureEndsSession(t *testing.T) {
	tests := []struct {
		name    string
		refresh http.HandlerFunc
	}{
		{name: "rejected", refresh: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusUnauthorized) }},
		{name: "no access token", refresh: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"refresh_token": "r2"})
		}},
		{name: "not json", refresh: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("<html>")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var eventCalls int32
			mux := http.NewServeMux()
			mux.HandleFunc("/api/v1/demo/auth/refresh", tt.refresh)
			mux.HandleFunc("/api/v1/demo/events", func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&eventCalls, 1)
				w.WriteHeader(http.StatusUnauthorized)
			})
			c, store := newTestClient(t, mux, loggedIn())

			_, err := c.ListEvents(context.Background())
			assert.Equal(t, auth.ErrSessionExpired, err)
			assert.True(t, core.IsAuth(err))
			assert.Equal(t, int32(1), atomic.LoadInt32(&eventCalls), "no retry after a failed refresh")
			assert.Equal(t, auth.State{}, store.Load())
			assert.False(t, c.Session().IsAuthenticated())
		})
	}
}

func TestClient_Responses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/demo/events/1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"id": 1, "title": "Semana", "venue": "Auditório", "capacity_total": 100,
				"min_presence_pct": 75, "start_at": "2024-05-01", "end_at": nil, "status": "published",
			})
		}
	})
	mux.HandleFunc("/api/v1/demo/events/2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"event has days"}`))
	})
	mux.HandleFunc("/api/v1/demo/events/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 3, "title": "", "min_presence_pct": 150})
	})
	mux.HandleFunc("/api/v1/demo/events/4", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	c, _ := newTestClient(t, mux, loggedIn())
	ctx := context.Background()

	ev, err := c.GetEvent(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, "Auditório", ev.Location)
	assert.Equal(t, 100, ev.Capacity)
	assert.Equal(t, "2024-05-01", ev.StartDate)
	assert.Equal(t, "", ev.EndDate)
	assert.Equal(t, event.StatusPublished, ev.Status)

	assert.NoError(t, c.DeleteEvent(ctx, "1"))

	err = c.DeleteEvent(ctx, "2")
	assert.Equal(t, http.StatusConflict, core.APIStatus(err))
	assert.Contains(t, err.Error(), "409 Conflict - {\"detail\":\"event has days\"}")

	_, err = c.GetEvent(ctx, "3")
	assert.Error(t, err)
	assert.Equal(t, 0, core.APIStatus(err), "shape errors carry no status")

	_, err = c.GetEvent(ctx, "4")
	assert.NoError(t, err, "an empty body is no value")

	_, err = c.GetEvent(ctx, "404")
	assert.Equal(t, http.StatusNotFound, core.APIStatus(err))
}

func TestClient_Headers(t *testing.T) {
	var got http.Header
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/demo/students", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "ana", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("size"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data":  []map[string]interface{}{{"id": 7, "name": "Ana", "cpf": "52998224725"}},
			"total": 1, "page": 2, "size": 5,
		})
	})
	c, _ := newTestClient(t, mux, loggedIn())

	students, err := c.ListStudents(context.Background(), "ana", 2, 5)
	assert.NoError(t, err)
	if assert.Len(t, students, 1) {
		assert.Equal(t, "7", students[0].ID)
	}
	assert.Equal(t, "Bearer old", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))

	c.Session().Logout()
	_, _ = c.ListStudents(context.Background(), "ana", 2, 5)
	assert.Empty(t, got.Get("Authorization"))
}

func TestClient_Login(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		status   int
		wantErr  error
		wantAuth bool
	}{
		{name: "admin", role: "admin", status: http.StatusOK, wantAuth: true},
		{name: "cliente", role: "Cliente", status: http.StatusOK, wantAuth: true},
		{name: "gatekeeper", role: "gatekeeper", status: http.StatusOK, wantErr: auth.ErrRoleNotAllowed},
		{name: "bad credentials", status: http.StatusUnauthorized, wantErr: auth.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/api/v1/demo/auth/login", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
				assert.Empty(t, r.Header.Get("Authorization"))
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "admin@demo", r.PostForm.Get("username"))
				assert.Equal(t, "secret", r.PostForm.Get("password"))
				if tt.status != http.StatusOK {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, http.StatusOK, map[string]interface{}{
					"access_token": "a", "refresh_token": "r", "token_type": "bearer",
					"user": map[string]interface{}{"id": 1, "name": "Admin", "email": "admin@demo", "roles": []string{tt.role}},
				})
			})
			c, _ := newTestClient(t, mux, auth.State{})

			_, err := c.Session().Login(context.Background(), " admin@demo ", "secret")
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.wantAuth, c.Session().IsAuthenticated())
		})
	}
}

func TestClient_Enroll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/demo/events/3/enrollments", func(w http.ResponseWriter, r *http.Request) {
		b, _ := ioutil.ReadAll(r.Body)
		assert.JSONEq(t, `{"student_id":7,"idempotent":true,"reactivate_if_canceled":true}`, string(b))
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"id": 11, "student_id": 7, "event_id": 3, "status": "confirmed", "qr_code": "ENR-11",
			"enrolled_at": "2024-05-01T10:00:00Z",
		})
	})
	mux.HandleFunc("/api/v1/demo/enrollments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("event_id"))
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"id": 11, "student_id": 7, "event_id": 3, "status": "canceled", "qr_code": "ENR-11"},
		})
	})
	c, _ := newTestClient(t, mux, loggedIn())
	svc := enrollment.NewService(c)

	e, err := svc.Enroll(context.Background(), "3", "7")
	assert.NoError(t, err)
	assert.Equal(t, enrollment.Enrollment{
		ID: "11", StudentID: "7", EventID: "3", Status: enrollment.StatusConfirmed, QRCode: "ENR-11",
		EnrolledAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}, e)

	list, err := svc.List(context.Background(), "3")
	assert.NoError(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, enrollment.StatusCancelled, list[0].Status)
		assert.False(t, list[0].EnrolledAt.IsZero())
	}
}
