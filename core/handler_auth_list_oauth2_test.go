package core

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caasmo/balancescale/config"
	"github.com/caasmo/balancescale/db/mock"
)

func TestListOAuth2ProvidersHandler(t *testing.T) {
	app := newTestApp(t, &mock.Db{})

	req := httptest.NewRequest("GET", "/api/list-oauth2-providers", nil)
	rr := httptest.NewRecorder()
	app.ListOAuth2ProvidersHandler(rr, req)

	body := checkResponse(t, rr, http.StatusOK, CodeOkOAuth2ProvidersList)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatal("expected 'data' field in response")
	}
	providers, ok := data["providers"].([]interface{})
	if !ok || len(providers) == 0 {
		t.Fatalf("expected at least one provider, got %v", data["providers"])
	}

	google, ok := providers[0].(map[string]interface{})
	if !ok {
		t.Fatal("expected provider object")
	}
	if google["name"] != config.OAuth2ProviderGoogle {
		t.Errorf("expected provider %q, got %v", config.OAuth2ProviderGoogle, google["name"])
	}
	if google["state"] == "" {
		t.Error("expected a fresh state value")
	}

	// The default google provider uses PKCE; its auth URL must carry the
	// challenge parameters and the verifier must be returned for the client.
	authURL, _ := google["authURL"].(string)
	if !strings.Contains(authURL, "code_challenge=") || !strings.Contains(authURL, "code_challenge_method=S256") {
		t.Errorf("expected PKCE parameters in auth URL, got %q", authURL)
	}
	if verifier, _ := google["codeVerifier"].(string); verifier == "" {
		t.Error("expected a code verifier for a PKCE provider")
	}
}

func TestListOAuth2ProvidersHandlerStateIsFresh(t *testing.T) {
	app := newTestApp(t, &mock.Db{})

	states := make(map[string]bool)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/list-oauth2-providers", nil)
		rr := httptest.NewRecorder()
		app.ListOAuth2ProvidersHandler(rr, req)

		body := decodeBody(t, rr)
		data := body["data"].(map[string]interface{})
		provider := data["providers"].([]interface{})[0].(map[string]interface{})
		state := provider["state"].(string)
		if states[state] {
			t.Fatalf("state %q repeated across requests", state)
		}
		states[state] = true
	}
}

func TestListOAuth2ProvidersHandlerNoProviders(t *testing.T) {
	cfg := testConfig()
	cfg.OAuth2Providers = nil

	app := NewApp(
		WithDbApp(&mock.Db{}),
		WithConfigProvider(config.NewProvider(cfg)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	req := httptest.NewRequest("GET", "/api/list-oauth2-providers", nil)
	rr := httptest.NewRecorder()
	app.ListOAuth2ProvidersHandler(rr, req)

	checkResponse(t, rr, errorInvalidOAuth2Provider.status, CodeErrorInvalidOAuth2Provider)
}
