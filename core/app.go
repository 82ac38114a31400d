package core

import (
	"log/slog"

	"github.com/caasmo/balancescale/cache"
	"github.com/caasmo/balancescale/config"
	"github.com/caasmo/balancescale/db"
	"github.com/caasmo/balancescale/oauth2"
	"github.com/caasmo/balancescale/router"
)

// App is the application wide context.
// db connections and permanent structs should go here.
//
// All handlers and middleware have App as receiver; it carries the heavy
// objects they share.
type App struct {
	dbAuth         db.DbAuth
	dbGame         db.DbGame
	router         *router.Router
	cache          cache.Cache[string, interface{}]
	configProvider *config.Provider
	logger         *slog.Logger
	verifier       oauth2.Verifier
	authenticator  Authenticator
}

type Option func(*App)

// WithDbApp sets both the auth and game store from a combined implementation.
func WithDbApp(dbApp db.DbApp) Option {
	return func(a *App) {
		a.dbAuth = dbApp
		a.dbGame = dbApp
	}
}

func WithRouter(r *router.Router) Option {
	return func(a *App) {
		a.router = r
	}
}

func WithCache(c cache.Cache[string, interface{}]) Option {
	return func(a *App) {
		a.cache = c
	}
}

// WithConfigProvider sets the application's configuration provider.
func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) {
		a.configProvider = p
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithVerifier sets the federated identity verifier.
func WithVerifier(v oauth2.Verifier) Option {
	return func(a *App) {
		a.verifier = v
	}
}

func NewApp(opts ...Option) *App {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.dbAuth == nil {
		panic("dbAuth is required (use WithDbApp)")
	}
	if a.configProvider == nil {
		panic("config provider is required (use WithConfigProvider)")
	}
	if a.logger == nil {
		panic("logger is required (use WithLogger)")
	}

	if a.authenticator == nil {
		a.authenticator = NewDefaultAuthenticator(a.dbAuth, a.logger, a.configProvider)
	}
	return a
}

func (a *App) Router() *router.Router {
	return a.router
}

func (a *App) DbAuth() db.DbAuth {
	return a.dbAuth
}

func (a *App) DbGame() db.DbGame {
	return a.dbGame
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) Cache() cache.Cache[string, interface{}] {
	return a.cache
}

func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

func (a *App) Verifier() oauth2.Verifier {
	return a.verifier
}

func (a *App) Auth() Authenticator {
	return a.authenticator
}

// SetAuthenticator replaces the authenticator implementation.
func (a *App) SetAuthenticator(auth Authenticator) {
	a.authenticator = auth
}

// SetVerifier replaces the federated identity verifier.
func (a *App) SetVerifier(v oauth2.Verifier) {
	a.verifier = v
}
