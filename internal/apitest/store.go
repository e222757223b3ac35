package apitest

import (
	"errors"
	"sort"
	"sync"

	"github.com/jobtrack/jobtrack-go/internal/model"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrApplicationNotFound = errors.New("application not found")
)

type user struct {
	ID       int64
	Username string
	Password passwordHash
}

// store is the fake backend's in-memory persistence. Applications are scoped
// to their owner; ids are global and never reused.
type store struct {
	mu         sync.Mutex
	nextUserID int64
	nextAppID  int64
	users      map[string]*user
	apps       map[int64]map[int64]model.Application
}

func newStore() *store {
	return &store{
		users: make(map[string]*user),
		apps:  make(map[int64]map[int64]model.Application),
	}
}

func (s *store) createUser(username string, password passwordHash) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, ErrDuplicateUsername
	}

	s.nextUserID++
	u := &user{ID: s.nextUserID, Username: username, Password: password}
	s.users[username] = u
	s.apps[u.ID] = make(map[int64]model.Application)
	return u, nil
}

func (s *store) userByName(username string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *store) createApplication(userID int64, req model.NewApplication) model.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAppID++
	app := model.Application{
		ID:          s.nextAppID,
		Company:     req.Company,
		Role:        req.Role,
		DateApplied: req.DateApplied,
		Status:      req.Status,
	}
	if s.apps[userID] == nil {
		s.apps[userID] = make(map[int64]model.Application)
	}
	s.apps[userID][app.ID] = app
	return app
}

// listApplications returns the user's applications ordered by id.
func (s *store) listApplications(userID int64) []model.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]model.Application, 0, len(s.apps[userID]))
	for _, app := range s.apps[userID] {
		result = append(result, app)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *store) updateStatus(userID, appID int64, status model.Status) (model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[userID][appID]
	if !ok {
		return model.Application{}, ErrApplicationNotFound
	}
	app.Status = status
	s.apps[userID][appID] = app
	return app, nil
}

func (s *store) deleteApplication(userID, appID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apps[userID][appID]; !ok {
		return ErrApplicationNotFound
	}
	delete(s.apps[userID], appID)
	return nil
}

// summary counts the user's applications per status.
func (s *store) summary(userID int64) model.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := make(map[model.Status]int, len(model.Statuses()))
	for _, status := range model.Statuses() {
		byStatus[status] = 0
	}
	for _, app := range s.apps[userID] {
		byStatus[app.Status]++
	}

	return model.Summary{
		Total:    len(s.apps[userID]),
		ByStatus: byStatus,
	}
}
