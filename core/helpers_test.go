package core

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caasmo/balancescale/config"
	"github.com/caasmo/balancescale/crypto"
	"github.com/caasmo/balancescale/db"
	"github.com/caasmo/balancescale/db/mock"
)

// testConfig returns a deterministic configuration for handler tests.
func testConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Jwt.AuthSecret = "test_secret_32_bytes_long_xxxxxx"
	cfg.Jwt.AuthTokenDuration = config.Duration{Duration: 15 * time.Minute}
	cfg.Auth.BcryptCost = 4 // minimum cost keeps the tests fast
	return cfg
}

func newTestApp(t *testing.T, mockDb *mock.Db) *App {
	t.Helper()
	return NewApp(
		WithDbApp(mockDb),
		WithConfigProvider(config.NewProvider(testConfig())),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

// sessionTokenFor issues a token the way the login handlers do, for tests
// that exercise authenticated endpoints.
func sessionTokenFor(t *testing.T, user *db.User) string {
	t.Helper()
	token, _, err := crypto.NewJwtSessionToken(user.ID, user.Email, user.Role, []byte("test_secret_32_bytes_long_xxxxxx"), 15*time.Minute)
	if err != nil {
		t.Fatalf("failed to create session token: %v", err)
	}
	return token
}

// decodeBody decodes a recorded JSON response into a generic map.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

// codeOf extracts the code field from a precomputed response body.
func codeOf(t *testing.T, resp jsonResponse) string {
	t.Helper()
	var basic JsonBasic
	if err := json.Unmarshal(resp.body, &basic); err != nil {
		t.Fatalf("failed to decode precomputed response: %v", err)
	}
	return basic.Code
}

// checkResponse asserts the recorded status and response code.
func checkResponse(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantCode string) map[string]interface{} {
	t.Helper()
	if rr.Code != wantStatus {
		t.Errorf("expected status %d, got %d", wantStatus, rr.Code)
	}
	body := decodeBody(t, rr)
	if code, _ := body["code"].(string); code != wantCode {
		t.Errorf("expected code %q, got %q", wantCode, code)
	}
	return body
}
