package core

import (
	"context"
	"net/http"

	"github.com/caasmo/balancescale/db"
)

// contextKey is a type for context keys
type contextKey string

const userKey contextKey = "user"

// UserFromContext returns the authenticated user stored by RequireAuth.
func UserFromContext(ctx context.Context) (*db.User, bool) {
	user, ok := ctx.Value(userKey).(*db.User)
	return user, ok
}

// RequireAuth authenticates the request and stores the user in the request
// context for downstream handlers.
func (a *App) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err, resp := a.Auth().Authenticate(r)
		if err != nil {
			writeJsonError(w, resp)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route behind a minimum role. It must run after
// RequireAuth. The check uses the role stored on the user record, never the
// role claim snapshotted into the token: role changes take effect on the
// next request, not the next login.
func (a *App) RequireRole(required string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeJsonError(w, errorNoAuthHeader)
				return
			}

			if !db.HasRole(user.Role, required) {
				writeJsonError(w, errorForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
