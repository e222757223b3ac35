// Package apitest runs an in-process fake of the job-application API for
// tests. It implements the same endpoints as the real backend, issues real
// JWTs, and records how often each route was called so tests can assert on
// request counts. Any route can be told to fail its next call.
package apitest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jobtrack/jobtrack-go/internal/model"
)

// Route keys accepted by Hits, FailNext and LastAuthorization.
const (
	RouteLogin             = "POST /login"
	RouteSignup            = "POST /signup"
	RouteListApplications  = "GET /applications"
	RouteCreateApplication = "POST /applications"
	RouteUpdateStatus      = "PATCH /applications/{id}"
	RouteDeleteApplication = "DELETE /applications/{id}"
	RouteSummary           = "GET /analytics/summary"
)

var errCredentialsRequired = errors.New("username and password are required")

// Server is a running fake backend.
type Server struct {
	*httptest.Server

	store  *store
	tokens tokenMinter
	hasher passwordHasher

	mu       sync.Mutex
	hits     map[string]int
	failNext map[string]int
	lastAuth map[string]string
}

// NewServer starts a fake backend and closes it when the test ends.
func NewServer(tb testing.TB) *Server {
	tb.Helper()

	s := &Server{
		store:    newStore(),
		tokens:   newTokenMinter("apitest-key", 24*time.Hour),
		hasher:   newPasswordHasher(),
		hits:     make(map[string]int),
		failNext: make(map[string]int),
		lastAuth: make(map[string]string),
	}
	s.Server = httptest.NewServer(s.routes())
	tb.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", s.handleLogin)
	r.Post("/signup", s.handleSignup)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)

		r.Get("/applications", s.handleListApplications)
		r.Post("/applications", s.handleCreateApplication)
		r.Patch("/applications/{id}", s.handleUpdateStatus)
		r.Delete("/applications/{id}", s.handleDeleteApplication)
		r.Get("/analytics/summary", s.handleSummary)
	})

	return r
}

func routeKey(r *http.Request) string {
	path := r.URL.Path
	if strings.HasPrefix(path, "/applications/") {
		path = "/applications/{id}"
	}
	return r.Method + " " + path
}

func (s *Server) count(route, authorization string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits[route]++
	s.lastAuth[route] = authorization
}

// record counts the call and reports whether the handler should proceed.
// An injected failure is written here.
func (s *Server) record(w http.ResponseWriter, r *http.Request, route string) bool {
	s.count(route, r.Header.Get("Authorization"))

	s.mu.Lock()
	status, fail := s.failNext[route]
	if fail {
		delete(s.failNext, route)
	}
	s.mu.Unlock()

	if fail {
		writeJSON(w, status, errorResponse("injected failure"))
		return false
	}
	return true
}

// Hits returns how many requests reached route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// ResetHits zeroes every route counter.
func (s *Server) ResetHits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits = make(map[string]int)
}

// LastAuthorization returns the Authorization header of the latest request to route.
func (s *Server) LastAuthorization(route string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth[route]
}

// FailNext makes the next request that reaches route answer with status.
// For bearer routes the request must still pass authentication.
func (s *Server) FailNext(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[route] = status
}

func (s *Server) createUser(username, password string) (*user, error) {
	if username == "" || password == "" {
		return nil, errCredentialsRequired
	}

	hash, err := s.hasher.hash(password)
	if err != nil {
		return nil, err
	}
	return s.store.createUser(username, hash)
}

// AddUser registers an account directly, bypassing the HTTP API.
func (s *Server) AddUser(tb testing.TB, username, password string) model.User {
	tb.Helper()

	u, err := s.createUser(username, password)
	if err != nil {
		tb.Fatalf("AddUser(%q): %v", username, err)
	}
	return model.User{ID: u.ID, Username: u.Username}
}

// TokenFor mints a valid token for an existing user.
func (s *Server) TokenFor(tb testing.TB, username string) string {
	tb.Helper()

	u, err := s.store.userByName(username)
	if err != nil {
		tb.Fatalf("TokenFor(%q): %v", username, err)
	}
	token, err := s.tokens.mint(u.ID, u.Username)
	if err != nil {
		tb.Fatalf("TokenFor(%q): %v", username, err)
	}
	return token
}

// SeedApplication stores an application for username without going through HTTP.
func (s *Server) SeedApplication(tb testing.TB, username string, app model.NewApplication) model.Application {
	tb.Helper()

	u, err := s.store.userByName(username)
	if err != nil {
		tb.Fatalf("SeedApplication(%q): %v", username, err)
	}
	if app.Status == "" {
		app.Status = model.StatusApplied
	}
	return s.store.createApplication(u.ID, app)
}

// Applications returns the stored applications of username, ordered by id.
func (s *Server) Applications(tb testing.TB, username string) []model.Application {
	tb.Helper()

	u, err := s.store.userByName(username)
	if err != nil {
		tb.Fatalf("Applications(%q): %v", username, err)
	}
	return s.store.listApplications(u.ID)
}
