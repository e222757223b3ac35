package apitest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jobtrack/jobtrack-go/internal/model"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, r, RouteLogin) {
		return
	}

	var req model.Credentials
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := s.store.userByName(req.Username)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse("invalid username or password"))
		return
	}

	if !s.hasher.verify(req.Password, u.Password) {
		writeJSON(w, http.StatusUnauthorized, errorResponse("invalid username or password"))
		return
	}

	token, err := s.tokens.mint(u.ID, u.Username)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.AuthResponse{ID: u.ID, Username: u.Username, Token: token})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, r, RouteSignup) {
		return
	}

	var req model.Credentials
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := s.createUser(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errCredentialsRequired):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse(err.Error()))
		case errors.Is(err, ErrDuplicateUsername):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.User{ID: u.ID, Username: u.Username})
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, r, RouteListApplications) {
		return
	}
	userID := ownerID(r.Context())

	writeJSON(w, http.StatusOK, s.store.listApplications(userID))
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, r, RouteCreateApplication) {
		return
	}
	userID := ownerID(r.Context())

	var req model.NewApplication
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status == "" {
		req.Status = model.StatusApplied
	}
	if msg := validateApplication(req); msg != "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse(msg))
		return
	}

	writeJSON(w, http.StatusOK, s.store.createApplication(userID, req))
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, r, RouteUpdateStatus) {
		return
	}
	userID := ownerID(r.Context())

	appID, ok := applicationID(w, r)
	if !ok {
		return
	}

	var req model.StatusUpdate
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse("invalid status"))
		return
	}

	app, err := s.store.updateStatus(userID, appID, req.Status)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, r, RouteDeleteApplication) {
		return
	}
	userID := ownerID(r.Context())

	appID, ok := applicationID(w, r)
	if !ok {
		return
	}

	if err := s.store.deleteApplication(userID, appID); err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, r, RouteSummary) {
		return
	}
	userID := ownerID(r.Context())

	writeJSON(w, http.StatusOK, s.store.summary(userID))
}

func validateApplication(req model.NewApplication) string {
	if strings.TrimSpace(req.Company) == "" {
		return "company is required"
	}
	if strings.TrimSpace(req.Role) == "" {
		return "role is required"
	}
	if _, err := time.Parse(model.DateLayout, req.DateApplied); err != nil {
		return "date_applied must be a YYYY-MM-DD date"
	}
	if !req.Status.Valid() {
		return "invalid status"
	}
	return ""
}

func applicationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse("invalid application id"))
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
