package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
)

type contextKey string

const userContextKey contextKey = "user"

// requireAuth resolves the tenant from the Authorization bearer token
// and rejects the request with 401 otherwise.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		user, err := s.Store.GetUserByToken(token)
		if err != nil {
			if err == store.ErrNotFound {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			s.Store.LogError(err)
			writeError(w, http.StatusInternalServerError, "auth lookup failed")
			return
		}

		if time.Now().After(user.TokenExpiry) {
			writeError(w, http.StatusUnauthorized, "token expired")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getUserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userContextKey).(*models.User)
	return u
}
