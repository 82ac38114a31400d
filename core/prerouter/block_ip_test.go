package prerouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caasmo/balancescale/config"
)

func blockIpConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.BlockIp.Enabled = true
	cfg.BlockIp.Activated = true
	cfg.BlockIp.Level = "medium"
	return cfg
}

func TestBlockIpPassesUnblockedRequests(t *testing.T) {
	app := newTestApp(t, blockIpConfig(), nil)
	middleware := NewBlockIp(app)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rr := httptest.NewRecorder()
	middleware.Execute(next).ServeHTTP(rr, req)

	if !called {
		t.Fatal("expected the request to reach the next handler")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestBlockIpRejectsBlockedIP(t *testing.T) {
	app := newTestApp(t, blockIpConfig(), nil)
	middleware := NewBlockIp(app)

	if err := middleware.Block("203.0.113.7"); err != nil {
		t.Fatalf("failed to block IP: %v", err)
	}
	if !middleware.IsBlocked("203.0.113.7") {
		t.Fatal("expected IP to be blocked after Block")
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("blocked requests must not reach the next handler")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rr := httptest.NewRecorder()
	middleware.Execute(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, rr.Code)
	}
}

func TestBlockIpOtherIPsUnaffected(t *testing.T) {
	app := newTestApp(t, blockIpConfig(), nil)
	middleware := NewBlockIp(app)

	if err := middleware.Block("203.0.113.7"); err != nil {
		t.Fatalf("failed to block IP: %v", err)
	}
	if middleware.IsBlocked("198.51.100.1") {
		t.Error("unrelated IP must not be blocked")
	}
}

func TestBlockIpDisabledLetsBlockedIPThrough(t *testing.T) {
	cfg := blockIpConfig()
	cfg.BlockIp.Activated = false
	app := newTestApp(t, cfg, nil)
	middleware := NewBlockIp(app)

	if err := middleware.Block("203.0.113.7"); err != nil {
		t.Fatalf("failed to block IP: %v", err)
	}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rr := httptest.NewRecorder()
	middleware.Execute(next).ServeHTTP(rr, req)

	if !called {
		t.Fatal("deactivated middleware must pass every request through")
	}
}

func TestBlockIpLevelPresets(t *testing.T) {
	for _, level := range []string{"low", "medium", "high"} {
		t.Run(level, func(t *testing.T) {
			cfg := blockIpConfig()
			cfg.BlockIp.Level = level
			app := newTestApp(t, cfg, nil)

			middleware := NewBlockIp(app)
			if middleware.sketch == nil {
				t.Fatal("expected a sketch for every preset level")
			}
			if middleware.sketch.SizeBytes() <= 0 {
				t.Error("expected a non-empty sketch")
			}
		})
	}
}
