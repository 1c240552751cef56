package config

// ServerConfig configures the tweet API server.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"` // per client IP; 0 disables limiting
	RateLimitBurst int      `yaml:"rate_limit_burst"`
	AllowedOrigins []string `yaml:"allowed_origins"` // CORS; "*" allows any
	ReadTimeout    string   `yaml:"read_timeout"`
	WriteTimeout   string   `yaml:"write_timeout"`
}
