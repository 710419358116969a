package auth

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/SotorivaXL/academic-event-manag-main/core"
)

const refreshKey = "refresh"

// Refresher makes sure only one refresh call is outstanding at a time: callers arriving while a refresh
// is in flight wait for it and share its outcome. The in-flight marker is dropped as soon as the call
// settles, so the next wave of 401s starts a new cycle.
type Refresher struct {
	store  TokenStore
	authn  Authenticator
	logger core.Logger
	group  singleflight.Group
}

func NewRefresher(store TokenStore, authn Authenticator, logger core.Logger) *Refresher {
	return &Refresher{store: store, authn: authn, logger: logger}
}

// Refresh returns true when new tokens were stored. On any failure every token is cleared (fail closed).
func (r *Refresher) Refresh(ctx context.Context) bool {
	// the refresh is shared: one caller giving up must not cancel it for the others
	ctx = context.WithoutCancel(ctx)
	ok, _, _ := r.group.Do(refreshKey, func() (interface{}, error) {
		return r.refresh(ctx), nil
	})
	return ok.(bool)
}

func (r *Refresher) refresh(ctx context.Context) bool {
	st := r.store.Load()
	if st.Refresh == "" {
		_ = r.store.Clear()
		return false
	}

	tokens, err := r.authn.Refresh(ctx, st.Refresh)
	if err != nil || tokens.Access == "" {
		if err != nil && r.logger != nil {
			r.logger.Warn("refreshing access token", err)
		}
		_ = r.store.Clear()
		return false
	}
	if tokens.Refresh == "" {
		tokens.Refresh = st.Refresh
	}

	st.Tokens = tokens
	if err = r.store.Save(st); err != nil {
		if r.logger != nil {
			r.logger.Error("storing refreshed tokens", err)
		}
		_ = r.store.Clear()
		return false
	}
	return true
}
