package core

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/caasmo/balancescale/config"
	"github.com/caasmo/balancescale/crypto"
	"github.com/caasmo/balancescale/db"
)

// Authenticator defines the interface for authentication operations
type Authenticator interface {
	Authenticate(r *http.Request) (*db.User, error, jsonResponse)
}

// DefaultAuthenticator implements Authenticator using bearer session tokens.
// Verification needs only the token and the server secret; the user record
// is then loaded so handlers always see current account state, not the state
// at token issuance.
type DefaultAuthenticator struct {
	dbAuth         db.DbAuth
	logger         *slog.Logger
	configProvider *config.Provider
}

func NewDefaultAuthenticator(dbAuth db.DbAuth, logger *slog.Logger, configProvider *config.Provider) *DefaultAuthenticator {
	return &DefaultAuthenticator{
		dbAuth:         dbAuth,
		logger:         logger,
		configProvider: configProvider,
	}
}

var errAuthFailed = errors.New("authentication failed")

// Authenticate implements the Authenticator interface
func (a *DefaultAuthenticator) Authenticate(r *http.Request) (*db.User, error, jsonResponse) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errAuthFailed, errorNoAuthHeader
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errAuthFailed, errorInvalidTokenFormat
	}

	cfg := a.configProvider.Get()
	claims, err := crypto.ParseJwtSessionToken(tokenString, []byte(cfg.Jwt.AuthSecret))
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrJwtTokenExpired):
			return nil, errAuthFailed, errorJwtTokenExpired
		case errors.Is(err, crypto.ErrJwtInvalidSigningMethod):
			return nil, errAuthFailed, errorJwtInvalidSignMethod
		default:
			return nil, errAuthFailed, errorJwtInvalidToken
		}
	}

	user, err := a.dbAuth.GetUserById(claims.UserID)
	if err != nil {
		a.logger.Error("failed to load user during authentication", "user_id", claims.UserID, "error", err)
		return nil, errAuthFailed, errorAuthDatabaseError
	}
	if user == nil {
		return nil, errAuthFailed, errorJwtInvalidToken
	}

	// A valid token does not outlive account deactivation.
	if !user.Active {
		return nil, errAuthFailed, errorAccountDisabled
	}

	return user, nil, jsonResponse{}
}
