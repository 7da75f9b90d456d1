package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// UserCounter is satisfied by usecase.UserUseCase.
type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

// WithStats mounts GET /api/v1/stats behind a bearer API key. An empty key
// leaves the route unmounted.
func WithStats(users UserCounter, apiKey string) Option {
	return func(s *Server) {
		s.users = users
		s.apiKey = apiKey
	}
}

type statsResponse struct {
	TotalUsers int `json:"total_users"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	n, err := s.users.Count(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("stats: count users")
		http.Error(w, "Failed to get totals", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(statsResponse{TotalUsers: n})
}

// authMiddleware provides simple Bearer token authentication for the admin API.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}
		if tokenParts[1] != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
