package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/caasmo/balancescale/crypto"
	"github.com/caasmo/balancescale/db"
)

// RegisterWithPasswordHandler handles password-based user registration.
// Endpoint: POST /api/register-with-password
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) RegisterWithPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if resp, ok := a.ValidateContentType(r, MimeTypeJSON); !ok {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Identity        string `json:"identity"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
		Name            string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	req.Identity = strings.TrimSpace(req.Identity)
	req.Password = strings.TrimSpace(req.Password)
	if req.Identity == "" || req.Password == "" || req.PasswordConfirm == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if err := ValidateEmail(req.Identity); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.Password != req.PasswordConfirm {
		writeJsonError(w, errorPasswordMismatch)
		return
	}

	if len(req.Password) < 8 {
		writeJsonError(w, errorPasswordComplexity)
		return
	}

	cfg := a.Config()
	hashedPassword, err := crypto.GenerateHash(req.Password, cfg.Auth.BcryptCost)
	if err != nil {
		a.Logger().Error("failed to hash password", "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	newUser := db.User{
		Email:        req.Identity,
		Password:     hashedPassword,
		Name:         strings.TrimSpace(req.Name),
		Role:         db.RoleUser,
		AuthProvider: db.ProviderLocal,
	}

	createdUser, err := a.DbAuth().CreateUserWithPassword(newUser)
	if err != nil {
		if errors.Is(err, db.ErrEmailConflict) {
			writeJsonError(w, errorEmailConflict)
			return
		}
		a.Logger().Error("failed to create user", "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	// Session token for immediate authentication
	token, _, err := crypto.NewJwtSessionToken(createdUser.ID, createdUser.Email, createdUser.Role,
		[]byte(cfg.Jwt.AuthSecret), cfg.Jwt.AuthTokenDuration.Duration)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	writeAuthResponse(w, token, int(cfg.Jwt.AuthTokenDuration.Seconds()), createdUser)
}
