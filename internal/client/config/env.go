package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A
// .env file in the working directory is loaded first, without overriding
// variables that are already set.
//
// Recognized variables:
//
//	SINIESTROS_API_URL          base URL of the REST API
//	SINIESTROS_REQUEST_TIMEOUT  per-request timeout, e.g. "30s"
//	SINIESTROS_STATE_DSN        sqlite DSN of the local state database
func parseEnv(cfg *Config) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv("SINIESTROS_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("SINIESTROS_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		} else if secs, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("SINIESTROS_STATE_DSN"); v != "" {
		cfg.LocalStateDSN = v
	}
}
