package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	ProfileIDKey ctxKey = "profileID"
	RoleKey      ctxKey = "role"
)

// Middleware validates the Bearer token and stores profile id and role
// in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ProfileIDKey, claims.ProfileID)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin guards roster-wide routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(RoleKey).(string)
		if role != RoleAdmin {
			http.Error(w, "forbidden (admin only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProfileIDFrom extracts the authenticated profile id from the context.
func ProfileIDFrom(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(ProfileIDKey).(uint)
	return id, ok
}

// RoleFrom extracts the authenticated role from the context.
func RoleFrom(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}
