package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PetstoreBasePath != "http://petstore.swagger.io/v2" {
		t.Fatalf("unexpected base path %q", cfg.PetstoreBasePath)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected http timeout %v", cfg.HTTPTimeout)
	}
	if cfg.PollInterval != 5*time.Minute {
		t.Fatalf("unexpected poll interval %v", cfg.PollInterval)
	}
	if cfg.SeenTTL != 24*time.Hour {
		t.Fatalf("unexpected seen ttl %v", cfg.SeenTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PETSTORE_BASE_PATH", "http://localhost:8080/v2")
	t.Setenv("PETSTORE_API_KEY", "special-key")
	t.Setenv("POLL_INTERVAL", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PetstoreBasePath != "http://localhost:8080/v2" {
		t.Fatalf("env base path not applied: %q", cfg.PetstoreBasePath)
	}
	if cfg.PetstoreAPIKey != "special-key" {
		t.Fatalf("env api key not applied: %q", cfg.PetstoreAPIKey)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("env poll interval not applied: %v", cfg.PollInterval)
	}
}

func TestLoadRejectsNonPositiveDurations(t *testing.T) {
	for _, key := range []string{"HTTP_TIMEOUT_SECONDS", "POLL_INTERVAL", "SEEN_TTL_SECONDS", "STORAGE_CLEANUP_INTERVAL_SECONDS"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "0")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=0", key)
			}
		})
	}
}

func TestLoadWithFlagsOverridesEnv(t *testing.T) {
	t.Setenv("PETSTORE_BASE_PATH", "http://from-env/v2")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("petstore_base_path", "", "")
	if err := fs.Parse([]string{"--petstore_base_path=http://from-flag/v2"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := LoadWithFlags(fs)
	if err != nil {
		t.Fatalf("LoadWithFlags: %v", err)
	}
	if cfg.PetstoreBasePath != "http://from-flag/v2" {
		t.Fatalf("flag did not override env: %q", cfg.PetstoreBasePath)
	}
}
