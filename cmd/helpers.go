package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/ziadkadry99/marsdash/internal/config"
	"github.com/ziadkadry99/marsdash/internal/nasa"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `marsdash init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newUpstreamClient creates the photo API client from config and API_KEY.
// A missing key is only a warning: the upstream answers with an error body,
// which the proxy relays.
func newUpstreamClient(cfg *config.Config) *nasa.Client {
	apiKey := config.APIKey()
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "Warning: %s is not set; upstream requests will be rejected\n", config.APIKeyEnvVar)
	}
	httpClient := &http.Client{Timeout: cfg.Upstream.Timeout}
	return nasa.NewClient(httpClient, cfg.Upstream.BaseURL, apiKey)
}
