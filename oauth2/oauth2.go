package oauth2

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caasmo/balancescale/config"
	"golang.org/x/oauth2"
)

// tokenExchangeTimeout bounds the code-for-token exchange so an unresponsive
// identity provider cannot hang login requests.
const tokenExchangeTimeout = 10 * time.Second

var (
	ErrUnknownProvider    = errors.New("unknown identity provider")
	ErrExchangeFailed     = errors.New("token exchange with identity provider failed")
	ErrUserInfoFailed     = errors.New("fetching user info from identity provider failed")
	ErrIncompleteIdentity = errors.New("identity provider returned incomplete identity")
)

// Assertion is the client-supplied proof of a completed authorization code
// flow with an external identity provider.
type Assertion struct {
	Provider     string `json:"provider"`
	Code         string `json:"code"`
	CodeVerifier string `json:"code_verifier"`
	RedirectURI  string `json:"redirect_uri"`
}

// Identity is the verified subject as reported by the identity provider.
// Subject is stable per provider account; Email may be shared with a local
// account and drives reconciliation.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// Verifier turns an untrusted client assertion into a verified identity.
// Implementations must not trust any field of the assertion before the
// upstream provider has confirmed it.
type Verifier interface {
	Verify(ctx context.Context, assertion Assertion) (*Identity, error)
}

// ProviderVerifier verifies assertions by exchanging the authorization code
// with the configured provider and fetching its user info document.
type ProviderVerifier struct {
	configProvider *config.Provider
	logger         *slog.Logger
}

func NewProviderVerifier(configProvider *config.Provider, logger *slog.Logger) *ProviderVerifier {
	return &ProviderVerifier{
		configProvider: configProvider,
		logger:         logger,
	}
}

var _ Verifier = (*ProviderVerifier)(nil)

func (v *ProviderVerifier) Verify(ctx context.Context, assertion Assertion) (*Identity, error) {
	provider, ok := v.configProvider.Get().OAuth2Providers[assertion.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, assertion.Provider)
	}

	oauth2Config := oauth2.Config{
		ClientID:     provider.ClientID,
		ClientSecret: provider.ClientSecret,
		RedirectURL:  assertion.RedirectURI,
		Scopes:       provider.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  provider.AuthURL,
			TokenURL: provider.TokenURL,
		},
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()

	token, err := oauth2Config.Exchange(
		exchangeCtx,
		assertion.Code,
		oauth2.SetAuthURLParam("code_verifier", assertion.CodeVerifier),
	)
	if err != nil {
		v.logger.Debug("oauth2 token exchange failed", "provider", assertion.Provider, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	client := oauth2Config.Client(exchangeCtx, token)
	resp, err := client.Get(provider.UserInfoURL)
	if err != nil {
		v.logger.Debug("oauth2 user info fetch failed", "provider", assertion.Provider, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUserInfoFailed, err)
	}
	defer resp.Body.Close()

	identity, err := identityFromUserInfo(resp, provider.Name)
	if err != nil {
		v.logger.Debug("oauth2 user info mapping failed", "provider", assertion.Provider, "error", err)
		return nil, err
	}

	return identity, nil
}
