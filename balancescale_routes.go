package balancescale

import (
	"net/http"

	"github.com/caasmo/balancescale/core"
	"github.com/caasmo/balancescale/db"
	r "github.com/caasmo/balancescale/router"
)

func route(app *core.App) {
	authenticated := []func(http.Handler) http.Handler{app.RequireAuth}
	adminOnly := []func(http.Handler) http.Handler{app.RequireAuth, app.RequireRole(db.RoleAdmin)}

	app.Router().Register(
		r.NewRoute("GET /api/health").WithHandlerFunc(app.HealthHandler),

		// auth
		r.NewRoute("POST /api/register-with-password").WithHandlerFunc(app.RegisterWithPasswordHandler),
		r.NewRoute("POST /api/auth-with-password").WithHandlerFunc(app.AuthWithPasswordHandler),
		r.NewRoute("POST /api/auth-with-federated").WithHandlerFunc(app.AuthWithFederatedHandler),
		r.NewRoute("POST /api/refresh-auth").WithHandlerFunc(app.RefreshAuthHandler),
		r.NewRoute("GET /api/list-oauth2-providers").WithHandlerFunc(app.ListOAuth2ProvidersHandler),
		r.NewRoute("GET /api/me").WithHandlerFunc(app.MeHandler).WithMiddlewareChain(authenticated),

		// game
		r.NewRoute("POST /api/game/config").WithHandlerFunc(app.GameConfigHandler).WithMiddlewareChain(authenticated),
		r.NewRoute("POST /api/game/submit").WithHandlerFunc(app.SubmitAnswerHandler).WithMiddlewareChain(authenticated),
		r.NewRoute("GET /api/game/progress").WithHandlerFunc(app.GameProgressHandler).WithMiddlewareChain(authenticated),
		r.NewRoute("GET /api/game/history").WithHandlerFunc(app.GameHistoryHandler).WithMiddlewareChain(authenticated),

		// admin
		r.NewRoute("PUT /api/admin/users/:id/role").WithHandlerFunc(app.SetRoleHandler).WithMiddlewareChain(adminOnly),
		r.NewRoute("PUT /api/admin/users/:id/active").WithHandlerFunc(app.SetActiveHandler).WithMiddlewareChain(adminOnly),
	)
}
