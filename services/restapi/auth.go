package restapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SotorivaXL/academic-event-manag-main/core/auth"
)

// authenticator performs the raw auth calls for the client's Session. Auth paths never trigger a refresh.
type authenticator struct {
	c *Client
}

var _ auth.Authenticator = authenticator{}

func (a authenticator) Login(ctx context.Context, username, password string) (auth.LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var res loginResponse
	err := a.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   []byte(form.Encode()),
		ctype:  "application/x-www-form-urlencoded",
	}, &res)
	if err != nil {
		return auth.LoginResult{}, err
	}
	return res.result(), nil
}

func (a authenticator) Refresh(ctx context.Context, refreshToken string) (auth.Tokens, error) {
	var res refreshResponse
	if err := a.c.write(ctx, http.MethodPost, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &res); err != nil {
		return auth.Tokens{}, err
	}
	return auth.Tokens{Access: res.AccessToken, Refresh: res.RefreshToken}, nil
}
