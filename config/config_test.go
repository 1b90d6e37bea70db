package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Server.Mode = "staging" }},
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"bad database url", func(c *Config) { c.Database.URL = "mysql://localhost" }},
		{"zero threshold", func(c *Config) { c.Integrity.SimilarityThreshold = 0 }},
		{"threshold above one", func(c *Config) { c.Integrity.SimilarityThreshold = 1.5 }},
		{"zero window", func(c *Config) { c.Integrity.SameVenueWindow = 0 }},
		{"no concurrency", func(c *Config) { c.Recommendation.Concurrency = 0 }},
		{"viewed above size", func(c *Config) { c.Suggestion.MaxViewed = 9 }},
		{"no pivot language", func(c *Config) { c.Translation.PivotLang = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("server:\n  port: \"9090\"\nintegrity:\n  same_venue_window: 15m\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnvVar, path)
	t.Setenv("SERVER_MODE", "test")
	t.Setenv("DATABASE_URL", "sqlite://file::memory:")
	t.Setenv("SERVER_CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("SUGGESTION_SIZE", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want yaml value", cfg.Server.Port)
	}
	if cfg.Server.Mode != "test" {
		t.Errorf("mode = %q, want env value", cfg.Server.Mode)
	}
	if cfg.Integrity.SameVenueWindow != 15*time.Minute {
		t.Errorf("same venue window = %v", cfg.Integrity.SameVenueWindow)
	}
	if cfg.Integrity.CrossVenueWindow != 60*time.Minute {
		t.Errorf("cross venue window = %v, want default", cfg.Integrity.CrossVenueWindow)
	}
	if cfg.Suggestion.Size != 10 {
		t.Errorf("suggestion size = %d", cfg.Suggestion.Size)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.example" {
		t.Errorf("cors origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Database.URL != "sqlite://file::memory:" {
		t.Errorf("database url = %q", cfg.Database.URL)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := map[string]string{
		"SERVER_PORT":                    "server.port",
		"INTEGRITY_SIMILARITY_THRESHOLD": "integrity.similarity_threshold",
		"MOCKSERVERS_ENABLED":            "mockservers.enabled",
		"HOME":                           "",
		"PATH":                           "",
	}
	for in, want := range tests {
		if got := envTransform(in); got != want {
			t.Errorf("envTransform(%q) = %q, want %q", in, got, want)
		}
	}
}
