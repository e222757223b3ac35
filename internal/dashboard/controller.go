// Package dashboard holds the client-side state of the tracker: who is
// logged in, the current application list, and the summary counts.
//
// Local collections are never patched. Every successful write is followed by
// a full list fetch and a summary fetch, and the results replace what was
// held before.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/jobtrack/jobtrack-go/internal/model"
)

// Messages shown to the user. Request failures collapse to one line per
// action; the underlying error is returned to the caller unchanged.
const (
	MsgLoginFailed  = "Invalid username or password"
	MsgSignupFailed = "Signup failed"
	MsgLoadFailed   = "Failed to load data"
	MsgCreateFailed = "Failed to create application"
	MsgUpdateFailed = "Failed to update status"
	MsgDeleteFailed = "Failed to delete application"
)

var ErrNotLoggedIn = errors.New("not logged in")

// API is the subset of the API client the controller drives.
type API interface {
	Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error)
	Signup(ctx context.Context, creds model.Credentials) (model.User, error)
	ListApplications(ctx context.Context) ([]model.Application, error)
	CreateApplication(ctx context.Context, app model.NewApplication) (model.Application, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) (model.Application, error)
	DeleteApplication(ctx context.Context, id int64) error
	Summary(ctx context.Context) (model.Summary, error)
}

// Session is the token holder the controller logs in and out of.
type Session interface {
	SetToken(token string) error
	SetUser(username string)
	LoadToken() (string, error)
	Clear() error
	Username() string
}

// State is a snapshot of the dashboard. When LoggedIn is false every other
// field except Error is zero.
type State struct {
	LoggedIn     bool
	Username     string
	Loading      bool
	Error        string
	Applications []model.Application
	Summary      *model.Summary
}

// Controller owns the dashboard state.
type Controller struct {
	api     API
	session Session

	mu    sync.Mutex
	state State
	// epoch changes on every login and logout so that a fetch started under
	// one session cannot write into the next.
	epoch uint64
}

// NewController creates a logged-out controller.
func NewController(api API, session Session) *Controller {
	return &Controller{api: api, session: session}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state
	st.Applications = slices.Clone(c.state.Applications)
	if c.state.Summary != nil {
		summary := *c.state.Summary
		summary.ByStatus = maps.Clone(summary.ByStatus)
		st.Summary = &summary
	}
	return st
}

// Restore picks up a token saved by an earlier run. With a token present the
// controller becomes logged in and loads data; without one it stays logged
// out and returns nil.
func (c *Controller) Restore(ctx context.Context) error {
	ok, err := c.Resume()
	if err != nil || !ok {
		return err
	}
	return c.Refresh(ctx)
}

// Resume is Restore without the initial data load. It reports whether a
// stored token was found.
func (c *Controller) Resume() (bool, error) {
	token, err := c.session.LoadToken()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	c.enter(c.session.Username())
	return true, nil
}

// Login submits the login/signup form. Signup mode creates the account and
// then logs in with the same credentials. Any failure leaves the controller
// logged out with an error message set.
func (c *Controller) Login(ctx context.Context, form LoginForm) error {
	if err := form.Validate(); err != nil {
		c.setError(formMessage(err))
		return err
	}
	creds := form.credentials()

	if form.Mode == ModeSignup {
		if _, err := c.api.Signup(ctx, creds); err != nil {
			c.setError(MsgSignupFailed)
			return err
		}
	}

	resp, err := c.api.Login(ctx, creds)
	if err != nil {
		c.setError(MsgLoginFailed)
		return err
	}

	if err := c.session.SetToken(resp.Token); err != nil {
		slog.Warn("failed to persist session token", "error", err)
	}
	c.session.SetUser(resp.Username)

	c.enter(resp.Username)
	return c.Refresh(ctx)
}

// Logout clears the session and every cached collection.
func (c *Controller) Logout() error {
	err := c.session.Clear()

	c.mu.Lock()
	c.epoch++
	c.state = State{}
	c.mu.Unlock()

	return err
}

// Refresh fetches the application list and then the summary. Both are
// replaced together; on failure the previous snapshot stays and the error
// message is set.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.LoggedIn {
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	epoch := c.epoch
	c.state.Loading = true
	c.state.Error = ""
	c.mu.Unlock()

	apps, err := c.api.ListApplications(ctx)
	var summary model.Summary
	if err == nil {
		summary, err = c.api.Summary(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		slog.Debug("discarding data fetched for an ended session")
		return ErrNotLoggedIn
	}

	c.state.Loading = false
	if err != nil {
		slog.Warn("loading dashboard data failed", "error", err)
		c.state.Error = MsgLoadFailed
		return err
	}

	c.state.Applications = apps
	c.state.Summary = &summary
	return nil
}

// AddApplication validates and submits the form. On success the form is
// reset and the data refetched.
func (c *Controller) AddApplication(ctx context.Context, form *ApplicationForm) error {
	if !c.loggedIn() {
		return ErrNotLoggedIn
	}

	req, err := form.Request()
	if err != nil {
		c.setError(formMessage(err))
		return err
	}

	if _, err := c.api.CreateApplication(ctx, req); err != nil {
		c.setError(MsgCreateFailed)
		return err
	}
	form.Reset()

	return c.Refresh(ctx)
}

// UpdateStatus changes one application's status and refetches.
func (c *Controller) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	if !c.loggedIn() {
		return ErrNotLoggedIn
	}
	if !status.Valid() {
		c.setError(formMessage(model.ErrUnknownStatus))
		return model.ErrUnknownStatus
	}

	if _, err := c.api.UpdateStatus(ctx, id, status); err != nil {
		c.setError(MsgUpdateFailed)
		return err
	}

	return c.Refresh(ctx)
}

// DeleteApplication removes one application and refetches.
func (c *Controller) DeleteApplication(ctx context.Context, id int64) error {
	if !c.loggedIn() {
		return ErrNotLoggedIn
	}

	if err := c.api.DeleteApplication(ctx, id); err != nil {
		c.setError(MsgDeleteFailed)
		return err
	}

	return c.Refresh(ctx)
}

func (c *Controller) enter(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.state = State{LoggedIn: true, Username: username}
}

func (c *Controller) loggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.LoggedIn
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Error = msg
}
