package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Vamshir3156/taskify-API/internal/auth"
	"github.com/Vamshir3156/taskify-API/internal/config"
	"github.com/Vamshir3156/taskify-API/internal/models"
)

// TokenHeader is the request header carrying the identity assertion.
const TokenHeader = "x-auth-token"

// contextKey is a custom type to avoid context key collisions.
type contextKey string

const userIDKey contextKey = "userID"

// AuthMiddleware verifies the x-auth-token header on every request and adds
// the resolved user id to the request context. Requests without a valid
// token are rejected with 401 before any handler runs.
func AuthMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	secret := []byte(cfg.JWTSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				unauthorized(w, "No token provided")
				return
			}

			userID, err := auth.ParseToken(tokenString, secret)
			if err != nil {
				unauthorized(w, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the user id stashed by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (models.UserID, bool) {
	userID, ok := ctx.Value(userIDKey).(models.UserID)
	return userID, ok
}

// WithUserID returns a context carrying userID, as AuthMiddleware would
// attach it. Intended for handler tests.
func WithUserID(ctx context.Context, userID models.UserID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
