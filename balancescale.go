package balancescale

import (
	"github.com/caasmo/balancescale/config"
	"github.com/caasmo/balancescale/core"
	"github.com/caasmo/balancescale/core/prerouter"
	"github.com/caasmo/balancescale/oauth2"
	"github.com/caasmo/balancescale/router"
	"github.com/caasmo/balancescale/server"
)

// New assembles the application and its HTTP server from a configuration and
// a set of core options. The caller provides at least a database (via
// WithZombiezenPool or core.WithDbApp) and a logger; everything else gets a
// working default.
func New(cfg *config.Config, opts ...core.Option) (*core.App, *server.Server) {
	configProvider := config.NewProvider(cfg)

	allOpts := []core.Option{
		core.WithConfigProvider(configProvider),
		core.WithRouter(router.New()),
	}
	allOpts = append(allOpts, opts...)

	app := core.NewApp(allOpts...)

	if app.Verifier() == nil {
		app.SetVerifier(oauth2.NewProviderVerifier(configProvider, app.Logger()))
	}

	route(app)

	// The pre-router chain runs before any route matching: every request is
	// logged, and flooding sources are cut off before they cost real work.
	handler := prerouter.NewRequestLog(app).Execute(
		prerouter.NewBlockIp(app).Execute(app.Router()))

	srv := server.NewServer(cfg.Server, handler, app.Logger())

	return app, srv
}
