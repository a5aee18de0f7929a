package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"mdd-api/internal/auth"
	"mdd-api/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string) (string, error)
}

type contextKey string

const userIDContextKey contextKey = "user_id"

// AuthMiddleware gates protected routes on a valid bearer access token and
// places the authenticated user ID in the request context.
type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeUnauthorized(w, "missing or invalid authorization header")
			return
		}

		subject, err := m.verifier.Verify(strings.TrimSpace(header[7:]))
		if err != nil {
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		userID, err := auth.ParsePrincipal(subject)
		if err != nil {
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user ID set by RequireAuth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
	})
}
