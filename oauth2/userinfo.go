package oauth2

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/caasmo/balancescale/config"
)

// identityFromUserInfo maps a provider's user info response to an Identity.
// Each provider returns a different document shape; the subject is namespaced
// with the provider name so accounts from different providers never collide.
func identityFromUserInfo(resp *http.Response, providerName string) (*Identity, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: user info endpoint returned status %d", ErrUserInfoFailed, resp.StatusCode)
	}

	var identity *Identity
	var err error

	switch providerName {
	case config.OAuth2ProviderGoogle:
		identity, err = googleIdentity(resp)
	case config.OAuth2ProviderGitHub:
		identity, err = githubIdentity(resp)
	default:
		return nil, fmt.Errorf("%w: no user info mapping for %s", ErrUnknownProvider, providerName)
	}
	if err != nil {
		return nil, err
	}

	if identity.Subject == "" || identity.Email == "" {
		return nil, ErrIncompleteIdentity
	}
	identity.Subject = providerName + ":" + identity.Subject
	return identity, nil
}

func googleIdentity(resp *http.Response) (*Identity, error) {
	extracted := struct {
		Sub           string `json:"sub"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&extracted); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoFailed, err)
	}

	return &Identity{
		Subject:       extracted.Sub,
		Email:         extracted.Email,
		EmailVerified: extracted.EmailVerified,
		Name:          extracted.Name,
	}, nil
}

func githubIdentity(resp *http.Response) (*Identity, error) {
	extracted := struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&extracted); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoFailed, err)
	}

	name := extracted.Name
	if name == "" {
		name = extracted.Login
	}

	// GitHub's user document carries no verification flag; the email comes
	// from the account the provider authenticated, so treat it as verified.
	return &Identity{
		Subject:       strconv.FormatInt(extracted.ID, 10),
		Email:         extracted.Email,
		EmailVerified: true,
		Name:          name,
	}, nil
}
