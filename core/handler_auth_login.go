package core

import (
	"encoding/json"
	"net/http"

	"github.com/caasmo/balancescale/crypto"
)

// AuthWithPasswordHandler handles password-based authentication (login).
// Endpoint: POST /api/auth-with-password
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) AuthWithPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if resp, ok := a.ValidateContentType(r, MimeTypeJSON); !ok {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Identity string `json:"identity"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.Identity == "" || req.Password == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if err := ValidateEmail(req.Identity); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Identity)
	if err != nil {
		a.Logger().Error("failed to load user for login", "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	// Unknown email, a federated-only account without a password, and a
	// wrong password are indistinguishable to the client. A distinct
	// response would leak which emails are registered and how.
	if user == nil || user.Password == "" || !crypto.CheckPassword(req.Password, user.Password) {
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	// Only after the credentials are proven does the client learn the
	// account state.
	if !user.Active {
		writeJsonError(w, errorAccountDisabled)
		return
	}

	cfg := a.Config()
	token, _, err := crypto.NewJwtSessionToken(user.ID, user.Email, user.Role,
		[]byte(cfg.Jwt.AuthSecret), cfg.Jwt.AuthTokenDuration.Duration)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	writeAuthResponse(w, token, int(cfg.Jwt.AuthTokenDuration.Seconds()), user)
}

// RefreshAuthHandler issues a fresh session token for an authenticated user.
// Endpoint: POST /api/refresh-auth
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) RefreshAuthHandler(w http.ResponseWriter, r *http.Request) {
	user, err, resp := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, resp)
		return
	}

	cfg := a.Config()
	token, _, err := crypto.NewJwtSessionToken(user.ID, user.Email, user.Role,
		[]byte(cfg.Jwt.AuthSecret), cfg.Jwt.AuthTokenDuration.Duration)
	if err != nil {
		a.Logger().Error("failed to generate refreshed token", "error", err)
		writeJsonError(w, errorTokenGeneration)
		return
	}

	writeAuthResponse(w, token, int(cfg.Jwt.AuthTokenDuration.Seconds()), user)
}
