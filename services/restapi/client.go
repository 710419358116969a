package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	"github.com/SotorivaXL/academic-event-manag-main/core/auth"
)

const authPrefix = "/auth"

// Client talks to the tenant-scoped REST backend. It satisfies the repositories of the core packages
// and provides the Authenticator of its own Session.
type Client struct {
	baseURL  string
	http     *http.Client
	session  *auth.Session
	validate *validator.Validate
	logger   core.Logger
}

// New returns a client for baseURL (already scoped to the tenant) whose session keeps its tokens in store.
func New(baseURL string, timeout time.Duration, store auth.TokenStore, logger core.Logger) *Client {
	validate, _ := core.NewValidator()
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		validate: validate,
		logger:   logger,
	}
	c.session = auth.NewSession(store, authenticator{c}, logger)
	return c
}

func NewFromConfig(conf *core.Config, store auth.TokenStore, logger core.Logger) *Client {
	return New(conf.BaseURL(), conf.API.Timeout, store, logger)
}

func (c *Client) Session() *auth.Session {
	return c.session
}

type request struct {
	method string
	path   string
	query  url.Values
	body   []byte
	ctype  string
}

func jsonRequest(method, path string, in interface{}) (request, error) {
	req := request{method: method, path: path, ctype: "application/json"}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return req, errors.Wrap(err, "encoding request body")
		}
		req.body = b
	}
	return req, nil
}

// send performs one round trip and returns the status and the whole body.
func (c *Client) send(ctx context.Context, r request) (int, []byte, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "building request")
	}
	ctype := r.ctype
	if ctype == "" {
		ctype = "application/json"
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", ctype)
	if !strings.HasPrefix(r.path, authPrefix) {
		for k, v := range c.session.AuthHeaders() {
			req.Header.Set(k, v)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "%s %s", r.method, r.path)
	}
	defer res.Body.Close()
	b, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, errors.Wrap(err, "reading response")
	}
	return res.StatusCode, b, nil
}

// do sends r and decodes the response into out (when not nil). A 401 outside the auth endpoints runs
// (or joins) the single refresh cycle and replays the request once; a failed refresh ends the session.
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	status, body, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized && !strings.HasPrefix(r.path, authPrefix) {
		if !c.session.Refresh(ctx) {
			c.session.Logout()
			return auth.ErrSessionExpired
		}
		if status, body, err = c.send(ctx, r); err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		return core.NewAPIError(status, strings.TrimSpace(string(body)))
	}
	if out == nil || status == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err = json.Unmarshal(body, out); err != nil {
		return core.NewAPIError(0, "unexpected response from "+r.path+": "+err.Error())
	}
	return c.check(r.path, out)
}

// check validates a decoded payload (or each element of a decoded list) against its validate tags.
func (c *Client) check(path string, out interface{}) error {
	v := reflect.Indirect(reflect.ValueOf(out))
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			if err := c.checkOne(path, v.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}
	return c.checkOne(path, v.Interface())
}

func (c *Client) checkOne(path string, v interface{}) error {
	if reflect.Indirect(reflect.ValueOf(v)).Kind() != reflect.Struct {
		return nil
	}
	if err := c.validate.Struct(v); err != nil {
		return core.NewAPIError(0, "unexpected response from "+path+": "+err.Error())
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

// write sends in as JSON with method (POST, PUT or DELETE).
func (c *Client) write(ctx context.Context, method, path string, in, out interface{}) error {
	r, err := jsonRequest(method, path, in)
	if err != nil {
		return err
	}
	return c.do(ctx, r, out)
}

func escape(id string) string {
	return url.PathEscape(id)
}
