package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/caasmo/balancescale/crypto"
	"github.com/caasmo/balancescale/db"
	"github.com/caasmo/balancescale/oauth2"
)

// AuthWithFederatedHandler handles login through an external identity
// provider. The client completes the authorization code flow in the browser
// and posts the resulting assertion here for verification.
// Endpoint: POST /api/auth-with-federated
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) AuthWithFederatedHandler(w http.ResponseWriter, r *http.Request) {
	if resp, ok := a.ValidateContentType(r, MimeTypeJSON); !ok {
		writeJsonError(w, resp)
		return
	}

	var assertion oauth2.Assertion
	if err := json.NewDecoder(r.Body).Decode(&assertion); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if assertion.Provider == "" || assertion.Code == "" || assertion.CodeVerifier == "" || assertion.RedirectURI == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	identity, err := a.Verifier().Verify(r.Context(), assertion)
	if err != nil {
		switch {
		case errors.Is(err, oauth2.ErrUnknownProvider):
			writeJsonError(w, errorInvalidOAuth2Provider)
		case errors.Is(err, oauth2.ErrExchangeFailed):
			writeJsonError(w, errorOAuth2TokenExchangeFailed)
		case errors.Is(err, oauth2.ErrUserInfoFailed):
			writeJsonError(w, errorOAuth2UserInfoFailed)
		default:
			writeJsonError(w, errorOAuth2UserInfoProcessingFailed)
		}
		return
	}

	if err := ValidateEmail(identity.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.reconcileFederated(identity)
	if err != nil {
		a.Logger().Error("failed to reconcile federated identity", "subject", identity.Subject, "error", err)
		writeJsonError(w, errorOAuth2DatabaseError)
		return
	}

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

// reconcileFederated maps a verified identity onto a user row.
//
// Lookup by subject covers returning federated users. For everyone else the
// store's upsert either creates a fresh account or links the identity to an
// existing local account with the same email. The link is one-way: a local
// account gains a federated subject and keeps its password, so both login
// paths stay usable. An account that already has a subject never changes it.
//
// No transaction is needed. SQLite has a single writer, and the upsert makes
// two concurrent logins for the same email both succeed with consistent
// rows; the loser of the race simply reads the winner's link.
func (a *App) reconcileFederated(identity *oauth2.Identity) (*db.User, error) {
	user, err := a.DbAuth().GetUserByFederatedSubject(identity.Subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	// Providers may omit the display name; fall back to the email
	// local-part so the account never shows up nameless.
	name := identity.Name
	if name == "" {
		name, _, _ = strings.Cut(identity.Email, "@")
	}

	return a.DbAuth().CreateUserWithFederated(db.User{
		Email:            identity.Email,
		Name:             name,
		Role:             db.RoleUser,
		AuthProvider:     db.ProviderFederated,
		FederatedSubject: identity.Subject,
		Verified:         identity.EmailVerified,
	})
}
