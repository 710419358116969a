package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core"
)

var (
	// errors
	ErrInvalidCredentials = core.NewAuthError("invalid credentials")
	ErrRoleNotAllowed     = core.NewAuthError("this user is not allowed to access the dashboard (invalid role)")
	ErrSessionExpired     = core.NewAuthError("session expired, please log in again")
)

// Session is the client side session store: it holds the token pair and answers IsAuthenticated.
type Session struct {
	store     TokenStore
	authn     Authenticator
	refresher *Refresher
}

func NewSession(store TokenStore, authn Authenticator, logger core.Logger) *Session {
	return &Session{
		store:     store,
		authn:     authn,
		refresher: NewRefresher(store, authn, logger),
	}
}

// Login exchanges credentials for a token pair. Users whose role is not allowed are logged out again
// and ErrRoleNotAllowed is returned.
func (s *Session) Login(ctx context.Context, username, password string) (User, error) {
	res, err := s.authn.Login(ctx, core.CleanString(username), password)
	if err != nil {
		if core.APIStatus(err) != 0 || core.IsAuth(err) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "logging in")
	}

	usr := res.User
	usr.Role = usr.ResolvedRole()
	if err = s.store.Save(State{Tokens: res.Tokens, User: &usr}); err != nil {
		return User{}, errors.Wrap(err, "storing tokens")
	}

	if !RoleAllowed(usr.Role) {
		s.Logout()
		return User{}, ErrRoleNotAllowed
	}
	return usr, nil
}

// Logout clears both tokens. It never fails.
func (s *Session) Logout() {
	_ = s.store.Clear()
}

func (s *Session) IsAuthenticated() bool {
	return s.store.Load().Access != ""
}

// AuthHeaders returns the bearer Authorization header, or an empty map when logged out.
func (s *Session) AuthHeaders() map[string]string {
	if token := s.store.Load().Access; token != "" {
		return map[string]string{"Authorization": "Bearer " + token}
	}
	return map[string]string{}
}

// CurrentUser returns the user remembered at login.
func (s *Session) CurrentUser() (User, bool) {
	st := s.store.Load()
	if st.Access == "" || st.User == nil {
		return User{}, false
	}
	return *st.User, true
}

// Restore validates a session persisted by an earlier run. Sessions without a remembered user, or whose
// user no longer has an allowed role, are cleared.
func (s *Session) Restore() bool {
	st := s.store.Load()
	if st.Access == "" {
		return false
	}
	if st.User == nil || !RoleAllowed(st.User.ResolvedRole()) {
		s.Logout()
		return false
	}
	return true
}

// Refresh runs (or joins) the single in-flight refresh cycle.
func (s *Session) Refresh(ctx context.Context) bool {
	return s.refresher.Refresh(ctx)
}
