package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrack/jobtrack-go/internal/apitest"
	"github.com/jobtrack/jobtrack-go/internal/model"
)

type result struct {
	code   int
	stdout string
	stderr string
}

type harness struct {
	srv   *apitest.Server
	clock *clockwork.FakeClock
}

func newHarness(t *testing.T, store string) *harness {
	t.Helper()

	srv := apitest.NewServer(t)
	srv.AddUser(t, "bill", "1234")

	for _, k := range []string{"JOBTRACK_PASSWORD", "JOBTRACK_HTTP_TIMEOUT", "JOBTRACK_RATE_LIMIT", "JOBTRACK_RATE_BURST", "LOG_FORMAT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("JOBTRACK_API_URL", srv.URL)
	t.Setenv("JOBTRACK_TOKEN_STORE", store)
	t.Setenv("JOBTRACK_TOKEN_PATH", filepath.Join(t.TempDir(), "jobtrack", "session"))
	t.Setenv("LOG_LEVEL", "error")

	return &harness{
		srv:   srv,
		clock: clockwork.NewFakeClockAt(time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)),
	}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr, h.clock)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestEndToEnd(t *testing.T) {
	h := newHarness(t, "file")

	res := h.run(t, "", "signup", "-username", "ann", "-password", "pw")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "logged in as ann")
	assert.Contains(t, res.stdout, "No applications yet.")

	res = h.run(t, "", "add", "-company", "Acme", "-role", "SRE", "-date", "2026-10-14")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Acme")
	assert.Contains(t, res.stdout, "1 day")

	res = h.run(t, "", "add", "-company", "Globex", "-role", "Backend", "-status", "interview")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Oct 15, 2026")
	assert.Contains(t, res.stdout, "0 days")

	apps := h.srv.Applications(t, "ann")
	require.Len(t, apps, 2)
	assert.Equal(t, model.StatusInterview, apps[1].Status)

	res = h.run(t, "", "status", "1", "no response")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, model.StatusNoResponse, h.srv.Applications(t, "ann")[0].Status)

	res = h.run(t, "", "summary")
	require.Equal(t, 0, res.code, res.stderr)
	lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"2", "0", "1", "0", "0", "1"}, strings.Fields(lines[1]))

	res = h.run(t, "", "delete", "2")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NotContains(t, res.stdout, "Globex")
	assert.Len(t, h.srv.Applications(t, "ann"), 1)

	res = h.run(t, "", "whoami")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "ann\n", res.stdout)

	res = h.run(t, "", "logout")
	require.Equal(t, 0, res.code, res.stderr)

	res = h.run(t, "")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Not logged in")
}

func TestLoginPrompts(t *testing.T) {
	h := newHarness(t, "file")

	res := h.run(t, "bill\n1234\n", "login")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Username: ")
	assert.Contains(t, res.stdout, "Password: ")
	assert.Contains(t, res.stdout, "logged in as bill")
	assert.Equal(t, 1, h.srv.Hits(apitest.RouteListApplications))
	assert.Equal(t, 1, h.srv.Hits(apitest.RouteSummary))
}

func TestLoginPasswordFromEnv(t *testing.T) {
	h := newHarness(t, "file")
	t.Setenv("JOBTRACK_PASSWORD", "1234")

	res := h.run(t, "", "login", "-username", "bill")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NotContains(t, res.stdout, "Password: ")
}

func TestLoginFailure(t *testing.T) {
	h := newHarness(t, "file")

	res := h.run(t, "", "login", "-username", "bill", "-password", "wrong")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "Error: Invalid username or password")
	assert.Contains(t, res.stderr, "invalid credentials")
}

func TestSignupMismatch(t *testing.T) {
	h := newHarness(t, "file")

	res := h.run(t, "ann\npw\nwp\n", "signup")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "Passwords do not match")
	assert.Zero(t, h.srv.Hits(apitest.RouteSignup))
}

func TestSQLiteStore(t *testing.T) {
	h := newHarness(t, "sqlite")

	res := h.run(t, "", "login", "-username", "bill", "-password", "1234")
	require.Equal(t, 0, res.code, res.stderr)

	res = h.run(t, "", "whoami")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "bill\n", res.stdout)
}

func TestRequiresLogin(t *testing.T) {
	h := newHarness(t, "file")

	for _, args := range [][]string{
		{"add", "-company", "Acme", "-role", "SRE"},
		{"status", "1", "Offer"},
		{"delete", "1"},
		{"summary"},
		{"whoami"},
	} {
		res := h.run(t, "", args...)
		assert.Equal(t, 1, res.code, args)
		assert.Contains(t, res.stderr, "not logged in", args)
	}
	assert.Zero(t, h.srv.Hits(apitest.RouteListApplications))
}

func TestArgumentErrors(t *testing.T) {
	h := newHarness(t, "file")
	require.Equal(t, 0, h.run(t, "", "login", "-username", "bill", "-password", "1234").code)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{"status arity", []string{"status", "1"}, 2, "invalid arguments"},
		{"delete arity", []string{"delete"}, 2, "invalid arguments"},
		{"bad id", []string{"delete", "abc"}, 2, `invalid application id "abc"`},
		{"unknown status", []string{"status", "1", "Ghosted"}, 2, "unknown application status"},
		{"unknown flag", []string{"add", "-bogus"}, 2, "flag provided but not defined: -bogus"},
		{"stray argument", []string{"add", "-company", "A", "-role", "R", "extra"}, 2, `unexpected argument "extra"`},
		{"unknown add status", []string{"add", "-company", "A", "-role", "R", "-status", "maybe"}, 2, "unknown application status"},
		{"invalid date", []string{"add", "-company", "A", "-role", "R", "-date", "tomorrow"}, 1, "date applied must be YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.run(t, "", tt.args...)
			assert.Equal(t, tt.wantCode, res.code)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
	assert.Zero(t, h.srv.Hits(apitest.RouteCreateApplication))
}

func TestFlagErrorsGoToStderr(t *testing.T) {
	h := newHarness(t, "file")

	res := h.run(t, "", "login", "-nope")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "flag provided but not defined: -nope")
	assert.Contains(t, res.stderr, "-username")
	assert.Empty(t, res.stdout)

	res = h.run(t, "", "add", "-h")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "-company")
	assert.Empty(t, res.stdout)
}

func TestUnknownCommand(t *testing.T) {
	res := (&harness{clock: clockwork.NewFakeClock()}).run(t, "", "frobnicate")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, `unknown command "frobnicate"`)
}

func TestVersion(t *testing.T) {
	res := (&harness{clock: clockwork.NewFakeClock()}).run(t, "", "version")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "jobtrack")
}
