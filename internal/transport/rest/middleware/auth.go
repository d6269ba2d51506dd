package middleware

import (
	"context"
	"net/http"

	"questionnaire-api/internal/model"
	"questionnaire-api/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// AuthMiddleware authenticates requests from the session cookie
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireAuth validates the jwt cookie and loads the account into the request
// context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("jwt")
		if err != nil || cookie.Value == "" {
			writeUnauthorized(w)
			return
		}

		claims, err := m.authSvc.ValidateToken(cookie.Value)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		user, err := m.authSvc.GetUser(r.Context(), claims.UserID)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates authoring endpoints. Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil || !user.IsAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"No authorized as an admin"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser extracts the authenticated account from context, or nil.
func GetUser(ctx context.Context) *model.User {
	if v := ctx.Value(userKey); v != nil {
		return v.(*model.User)
	}
	return nil
}

// WithUser returns a context carrying the account. Exposed for handler tests.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"No authorized, please login"}`))
}
