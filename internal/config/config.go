package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file lives relative to the working directory.
const DefaultPath = ".tweetgen/config.yaml"

// Config holds all tweetgen configuration.
type Config struct {
	// Mode selects the resolver: "local" or "remote".
	Mode string `yaml:"mode"`

	// Remote tweet service
	Remote RemoteConfig `yaml:"remote"`

	// Category catalog
	Catalog CatalogConfig `yaml:"catalog"`

	// Terminal widget
	UI UIConfig `yaml:"ui"`

	// Tweet API server
	Server ServerConfig `yaml:"server"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// RemoteConfig configures the remote resolver.
type RemoteConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  string `yaml:"timeout"`

	// MissingTweet is "fallback" (substitute FallbackText) or "error"
	// (fail with MalformedResponse) when a 2xx response has no tweet.
	MissingTweet string `yaml:"missing_tweet"`
	FallbackText string `yaml:"fallback_text"`
}

// CatalogConfig points at an optional YAML catalog file.
type CatalogConfig struct {
	Path string `yaml:"path"` // empty = built-in categories
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Mode: "local",

		Remote: RemoteConfig{
			Endpoint:     "http://localhost:8080/api/v1/tweet",
			Timeout:      "10s",
			MissingTweet: "fallback",
			FallbackText: "No tweet was generated",
		},

		UI: UIConfig{
			Theme:        "dark",
			CopiedWindow: "2s",
			Animation:    "1s",
		},

		Server: ServerConfig{
			Addr:           ":8080",
			RateLimitRPS:   5,
			RateLimitBurst: 10,
			AllowedOrigins: []string{"http://localhost:5173"},
			ReadTimeout:    "5s",
			WriteTimeout:   "10s",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if mode := os.Getenv("TWEETGEN_MODE"); mode != "" {
		c.Mode = mode
	}
	if url := os.Getenv("TWEETGEN_ENDPOINT"); url != "" {
		c.Remote.Endpoint = url
	}
	if path := os.Getenv("TWEETGEN_CATALOG"); path != "" {
		c.Catalog.Path = path
	}
	if addr := os.Getenv("TWEETGEN_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("TWEETGEN_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if dark := os.Getenv("TWEETGEN_DARK_MODE"); dark != "" {
		if on, err := strconv.ParseBool(dark); err == nil {
			if on {
				c.UI.Theme = "dark"
			} else {
				c.UI.Theme = "light"
			}
		}
	}
}

// GetRemoteTimeout returns the remote request timeout as a duration.
func (c *Config) GetRemoteTimeout() time.Duration {
	return parseDuration(c.Remote.Timeout, 10*time.Second)
}

// GetCopiedWindow returns how long the copied flag stays set.
func (c *Config) GetCopiedWindow() time.Duration {
	return parseDuration(c.UI.CopiedWindow, 2*time.Second)
}

// GetAnimationDuration returns the sparkle burst length.
func (c *Config) GetAnimationDuration() time.Duration {
	return parseDuration(c.UI.Animation, time.Second)
}

// GetServerReadTimeout returns the server read timeout as a duration.
func (c *Config) GetServerReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 5*time.Second)
}

// GetServerWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetServerWriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 10*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ValidModes lists the supported resolver modes.
var ValidModes = []string{"local", "remote"}

// ValidMissingTweetPolicies lists the supported missing-tweet policies.
var ValidMissingTweetPolicies = []string{"fallback", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidModes, c.Mode) {
		return fmt.Errorf("invalid mode: %q (valid: %v)", c.Mode, ValidModes)
	}

	if c.Mode == "remote" {
		if c.Remote.Endpoint == "" {
			return fmt.Errorf("remote mode requires remote.endpoint (or TWEETGEN_ENDPOINT)")
		}
		if !strings.HasPrefix(c.Remote.Endpoint, "http://") && !strings.HasPrefix(c.Remote.Endpoint, "https://") {
			return fmt.Errorf("invalid remote endpoint: %q (must be http or https)", c.Remote.Endpoint)
		}
	}

	if c.Remote.MissingTweet != "" && !contains(ValidMissingTweetPolicies, strings.ToLower(c.Remote.MissingTweet)) {
		return fmt.Errorf("invalid remote.missing_tweet: %q (valid: %v)", c.Remote.MissingTweet, ValidMissingTweetPolicies)
	}

	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("server rate limits must not be negative")
	}

	return nil
}

// IsDarkTheme reports whether the widget should use the dark palette.
func (c *Config) IsDarkTheme() bool {
	return !strings.EqualFold(c.UI.Theme, "light")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
