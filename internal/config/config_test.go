package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TWEETGEN_MODE", "TWEETGEN_ENDPOINT", "TWEETGEN_CATALOG", "TWEETGEN_ADDR", "TWEETGEN_LOG_LEVEL", "TWEETGEN_DARK_MODE"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Mode != "local" {
		t.Errorf("expected Mode=local, got %s", cfg.Mode)
	}
	if cfg.Remote.Endpoint != "http://localhost:8080/api/v1/tweet" {
		t.Errorf("unexpected default endpoint %s", cfg.Remote.Endpoint)
	}
	if cfg.Remote.FallbackText != "No tweet was generated" {
		t.Errorf("unexpected fallback text %q", cfg.Remote.FallbackText)
	}
	if cfg.GetCopiedWindow() != 2*time.Second {
		t.Errorf("expected 2s copied window, got %v", cfg.GetCopiedWindow())
	}
	if cfg.GetAnimationDuration() != time.Second {
		t.Errorf("expected 1s animation, got %v", cfg.GetAnimationDuration())
	}
	if !cfg.IsDarkTheme() {
		t.Error("expected dark theme by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Mode = "remote"
	cfg.Remote.Endpoint = "https://tweets.example.com/api/v1/tweet"
	cfg.Remote.MissingTweet = "error"
	cfg.Server.AllowedOrigins = []string{"*"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Mode != "remote" {
		t.Errorf("expected Mode=remote, got %s", loaded.Mode)
	}
	if loaded.Remote.Endpoint != cfg.Remote.Endpoint {
		t.Errorf("expected endpoint %s, got %s", cfg.Remote.Endpoint, loaded.Remote.Endpoint)
	}
	if loaded.Remote.MissingTweet != "error" {
		t.Errorf("expected missing_tweet=error, got %s", loaded.Remote.MissingTweet)
	}
	if len(loaded.Server.AllowedOrigins) != 1 || loaded.Server.AllowedOrigins[0] != "*" {
		t.Errorf("unexpected origins %v", loaded.Server.AllowedOrigins)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != "local" {
		t.Errorf("expected defaults, got Mode=%s", cfg.Mode)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mode: remote\nui:\n  theme: light\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != "remote" {
		t.Errorf("expected Mode=remote, got %s", cfg.Mode)
	}
	if cfg.IsDarkTheme() {
		t.Error("expected light theme")
	}
	if cfg.Remote.Timeout != "10s" {
		t.Errorf("expected default timeout to survive, got %s", cfg.Remote.Timeout)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mode: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestDurations_FallBackOnGarbage(t *testing.T) {
	cfg := &Config{
		Remote: RemoteConfig{Timeout: "soon"},
		UI:     UIConfig{CopiedWindow: "-1s", Animation: ""},
		Server: ServerConfig{ReadTimeout: "1m", WriteTimeout: "x"},
	}
	if cfg.GetRemoteTimeout() != 10*time.Second {
		t.Errorf("got %v", cfg.GetRemoteTimeout())
	}
	if cfg.GetCopiedWindow() != 2*time.Second {
		t.Errorf("got %v", cfg.GetCopiedWindow())
	}
	if cfg.GetAnimationDuration() != time.Second {
		t.Errorf("got %v", cfg.GetAnimationDuration())
	}
	if cfg.GetServerReadTimeout() != time.Minute {
		t.Errorf("got %v", cfg.GetServerReadTimeout())
	}
	if cfg.GetServerWriteTimeout() != 10*time.Second {
		t.Errorf("got %v", cfg.GetServerWriteTimeout())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown mode", func(c *Config) { c.Mode = "psychic" }, true},
		{"remote without endpoint", func(c *Config) { c.Mode = "remote"; c.Remote.Endpoint = "" }, true},
		{"remote with ftp endpoint", func(c *Config) { c.Mode = "remote"; c.Remote.Endpoint = "ftp://x" }, true},
		{"remote ok", func(c *Config) { c.Mode = "remote" }, false},
		{"bad missing policy", func(c *Config) { c.Remote.MissingTweet = "shrug" }, true},
		{"uppercase missing policy", func(c *Config) { c.Remote.MissingTweet = "ERROR" }, false},
		{"negative burst", func(c *Config) { c.Server.RateLimitBurst = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoggingConfig_Categories(t *testing.T) {
	lc := LoggingConfig{}
	if !lc.IsCategoryEnabled("server") {
		t.Error("categories should default to enabled")
	}
	lc.Categories = map[string]bool{"server": false}
	if lc.IsCategoryEnabled("server") {
		t.Error("server should be disabled")
	}
	if !lc.IsCategoryEnabled("widget") {
		t.Error("unlisted category should be enabled")
	}

	if lc.EffectiveLevel() != "info" {
		t.Errorf("expected info, got %s", lc.EffectiveLevel())
	}
	lc.Level = "warn"
	if lc.EffectiveLevel() != "warn" {
		t.Errorf("expected warn, got %s", lc.EffectiveLevel())
	}
	lc.DebugMode = true
	if lc.EffectiveLevel() != "debug" {
		t.Errorf("expected debug, got %s", lc.EffectiveLevel())
	}
}
