package config

import "time"

// Config holds runtime settings for the siniestros console.
//
// Fields:
//   - APIBaseURL: base URL of the siniestros REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - LocalStateDSN: sqlite DSN of the local state database.
//   - BootstrapAttempts: total session-restore read attempts on startup.
//   - BootstrapDelay: pause between restore attempts.
type Config struct {
	APIBaseURL        string
	RequestTimeout    time.Duration
	LocalStateDSN     string
	BootstrapAttempts int
	BootstrapDelay    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 30 * time.Second
	c.LocalStateDSN = "siniestros.db"
	c.BootstrapAttempts = 3
	c.BootstrapDelay = 200 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including an optional .env file), a JSON file (if
// present) and command-line flags. Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
