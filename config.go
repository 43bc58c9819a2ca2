package hooksched

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultAPIURL is the hookSCHED API endpoint used when Config.APIURL is not
// set. Override it for self-hosted deployments and tests.
const DefaultAPIURL = "https://api.hooksched.dev"

// Environment variables consulted when the corresponding Config field is
// empty. Explicit values always win.
const (
	EnvAPIKey  = "HOOKSCHED_API_KEY"
	EnvBaseURL = "HOOKSCHED_BASE_URL"
)

// Config holds client settings. The zero value is valid: New never fails, and
// a missing API key only surfaces on the first call that needs it.
type Config struct {
	// APIKey authenticates every request. Falls back to HOOKSCHED_API_KEY.
	APIKey string

	// BaseURL resolves relative webhook targets (paths starting with "/").
	// Falls back to HOOKSCHED_BASE_URL. When unset, only absolute webhook
	// URLs are accepted.
	BaseURL string

	// APIURL is the hookSCHED API endpoint. Defaults to DefaultAPIURL.
	APIURL string

	// HTTPClient performs the requests. Defaults to a client with a 30s
	// timeout. Cancellation and any tighter timeouts come from the caller's
	// context.
	HTTPClient *http.Client

	// Logger enables debug logging of API calls. The client is silent when
	// nil.
	Logger *zerolog.Logger

	// Getenv replaces the process environment as the fallback source. Tests
	// inject a fake lookup here instead of mutating real env vars.
	Getenv func(string) string
}

// resolveConfig applies environment fallbacks and defaults. Resolution
// happens once, at New; nothing is re-read per call.
func resolveConfig(cfg Config) Config {
	lookup := cfg.Getenv
	if lookup == nil {
		v := viper.New()
		bindEnv(v, EnvAPIKey)
		bindEnv(v, EnvBaseURL)
		lookup = v.GetString
	}

	if cfg.APIKey == "" {
		cfg.APIKey = lookup(EnvAPIKey)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = lookup(EnvBaseURL)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return cfg
}

func bindEnv(v *viper.Viper, name string) {
	// BindEnv only fails on an empty key, which cannot happen here.
	_ = v.BindEnv(name, name)
}
