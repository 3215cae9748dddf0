package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/freshline/supply-backend/internal/httpx"
)

type contextKey string

const claimsKey contextKey = "auth.claims"

// ClaimsFrom returns the authenticated claims stored by Middleware, if any.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// Middleware authenticates the bearer token and enforces the role's path
// grants before passing the request on.
func Middleware(svc Service, perms Permissions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				httpx.JSONError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := svc.ParseToken(raw)
			if err != nil {
				httpx.JSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if !perms.Allows(claims.Role, r.URL.Path) {
				httpx.JSONError(w, http.StatusForbidden, "role not permitted for this resource")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}
