package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/flagx"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like
// "200ms" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	LocalStateDSN     string         `json:"local_state_dsn"`
	BootstrapAttempts int            `json:"bootstrap_attempts"`
	BootstrapDelay    timex.Duration `json:"bootstrap_delay"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c or -config flags; when neither is set no JSON is
// loaded. Read or unmarshal errors panic, matching the other config stages.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.LocalStateDSN != "" {
		cfg.LocalStateDSN = jc.LocalStateDSN
	}
	if jc.BootstrapAttempts != 0 {
		cfg.BootstrapAttempts = jc.BootstrapAttempts
	}
	if jc.BootstrapDelay.Duration != 0 {
		cfg.BootstrapDelay = time.Duration(jc.BootstrapDelay.Duration)
	}
}
