package middleware

import (
	"context"
	"net/http"

	"github.com/driversense-api/internal/domain"
)

type UserLookup interface {
	FindByID(ctx context.Context, userID string) (*domain.User, error)
}

// RequireConsent must run after Auth. Users who have not accepted the data
// processing consent are refused with 403.
func RequireConsent(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := UserIDFromContext(r.Context())
			if userID == "" {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized", "No token provided")
				return
			}
			u, err := users.FindByID(r.Context(), userID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized", "Invalid token")
				return
			}
			if !u.ConsentAccepted {
				writeJSONError(w, http.StatusForbidden, "ConsentRequired", "consent must be accepted first")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
