package apitest

import (
	"context"
	"net/http"
	"strings"
)

type ownerKey struct{}

// requireBearer lets a request through only with a token this server minted
// and puts the token's user ID in the context. Rejected requests still count
// as a hit on their route.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			s.reject(w, r, "missing bearer token")
			return
		}

		claims, err := s.tokens.verify(raw)
		if err != nil {
			s.reject(w, r, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ownerKey{}, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request, msg string) {
	s.count(routeKey(r), r.Header.Get("Authorization"))
	writeJSON(w, http.StatusUnauthorized, errorResponse(msg))
}

// ownerID is the user a bearer route acts for.
func ownerID(ctx context.Context) int64 {
	id, _ := ctx.Value(ownerKey{}).(int64)
	return id
}
