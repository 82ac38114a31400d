package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDurationUnmarshalText(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"minutes", "45m", 45 * time.Minute, false},
		{"composite", "1h30m", 90 * time.Minute, false},
		{"seconds", "15s", 15 * time.Second, false},
		{"bare number", "42", 0, true},
		{"garbage", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got none", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Duration != tc.want {
				t.Errorf("expected %s, got %s", tc.want, d.Duration)
			}
		})
	}
}

func TestDurationMarshalRoundTrip(t *testing.T) {
	d := Duration{Duration: 45 * time.Minute}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	var got Duration
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if got.Duration != d.Duration {
		t.Errorf("expected %s, got %s", d.Duration, got.Duration)
	}
}

func TestNewDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.Jwt.AuthSecret == NewDefaultConfig().Jwt.AuthSecret {
		t.Error("expected a freshly generated secret per default config")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadFromToml(t *testing.T) {
	path := writeConfigFile(t, `
db_file = "test.db"

[jwt]
auth_secret = "0123456789abcdef0123456789abcdef"
auth_token_duration = "30m"

[server]
addr = ":9999"

[game]
history_default_limit = 25
`)

	cfg, err := LoadFromToml(path, testLogger())
	if err != nil {
		t.Fatalf("LoadFromToml failed: %v", err)
	}

	if cfg.DBFile != "test.db" {
		t.Errorf("expected db_file test.db, got %q", cfg.DBFile)
	}
	if cfg.Jwt.AuthTokenDuration.Duration != 30*time.Minute {
		t.Errorf("expected 30m token duration, got %s", cfg.Jwt.AuthTokenDuration.Duration)
	}
	if cfg.Server.Addr != "localhost:9999" {
		t.Errorf("expected validation to default host, got %q", cfg.Server.Addr)
	}
	if cfg.Game.HistoryDefaultLimit != 25 {
		t.Errorf("expected history limit 25, got %d", cfg.Game.HistoryDefaultLimit)
	}
	// untouched sections keep their defaults
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("expected default bcrypt cost, got %d", cfg.Auth.BcryptCost)
	}
}

func TestLoadFromTomlRejectsUnknownKeys(t *testing.T) {
	path := writeConfigFile(t, `
[jwt]
auth_secrte = "0123456789abcdef0123456789abcdef"
`)

	_, err := LoadFromToml(path, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown keys") {
		t.Errorf("expected unknown keys error, got %v", err)
	}
}

func TestLoadFromTomlMissingFile(t *testing.T) {
	if _, err := LoadFromToml(filepath.Join(t.TempDir(), "nope.toml"), testLogger()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(cfg *Config) {}, false},
		{"empty addr", func(cfg *Config) { cfg.Server.Addr = "" }, true},
		{"addr without port", func(cfg *Config) { cfg.Server.Addr = "example.com" }, true},
		{"host and port", func(cfg *Config) { cfg.Server.Addr = "example.com:8080" }, false},
		{"port only", func(cfg *Config) { cfg.Server.Addr = ":8080" }, false},
		{"short jwt secret", func(cfg *Config) { cfg.Jwt.AuthSecret = "tooshort" }, true},
		{"zero token duration", func(cfg *Config) { cfg.Jwt.AuthTokenDuration = Duration{} }, true},
		{"bcrypt cost too high", func(cfg *Config) { cfg.Auth.BcryptCost = 99 }, true},
		{"unknown block level", func(cfg *Config) { cfg.BlockIp.Level = "extreme" }, true},
		{"zero history limit", func(cfg *Config) { cfg.Game.HistoryDefaultLimit = 0 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got none")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestProviderSwap(t *testing.T) {
	first := NewDefaultConfig()
	provider := NewProvider(first)

	if provider.Get() != first {
		t.Fatal("expected initial config back")
	}

	second := NewDefaultConfig()
	second.Server.Addr = ":9090"
	provider.Update(second)

	if provider.Get() != second {
		t.Fatal("expected updated config back")
	}
	if provider.Get().Server.Addr != ":9090" {
		t.Errorf("expected swapped addr, got %q", provider.Get().Server.Addr)
	}
}
