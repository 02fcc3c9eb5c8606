package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/cardkeep/cardkeep/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// AuthMiddleware validates a Bearer JWT and stores the resolved user
// identifier in the request context.
func AuthMiddleware(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody("missing token"))
				return
			}

			userID, err := auth.GetUserIDFromToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id placed into the context
// by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
