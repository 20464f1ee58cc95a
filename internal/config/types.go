package config

import "time"

// APIKeyEnvVar is the environment variable holding the upstream API key.
// The key is never written to the config file.
const APIKeyEnvVar = "API_KEY"

// Config is the top-level marsdash configuration, corresponding to .marsdash.yml.
type Config struct {
	Port      int             `yaml:"port" koanf:"port"`
	Upstream  UpstreamConfig  `yaml:"upstream" koanf:"upstream"`
	Dashboard DashboardConfig `yaml:"dashboard" koanf:"dashboard"`
	Static    StaticConfig    `yaml:"static" koanf:"static"`
	Journal   JournalConfig   `yaml:"journal" koanf:"journal"`
	CORS      CORSConfig      `yaml:"cors" koanf:"cors"`
}

// UpstreamConfig describes the photo API the proxy forwards to.
type UpstreamConfig struct {
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	// Timeout of zero means no timeout.
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
}

// DashboardConfig holds settings for the live dashboard page.
type DashboardConfig struct {
	Rovers     []string `yaml:"rovers" koanf:"rovers"`
	DefaultSol int      `yaml:"default_sol" koanf:"default_sol"`
	Intro      string   `yaml:"intro" koanf:"intro"` // Markdown
	// ProxyBaseURL is where sessions reach the /rovers endpoint. Empty means
	// this server on localhost.
	ProxyBaseURL string `yaml:"proxy_base_url" koanf:"proxy_base_url"`
}

// StaticConfig controls the public asset directory served at /.
type StaticConfig struct {
	Dir     string   `yaml:"dir" koanf:"dir"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}

// JournalConfig controls the SQLite fetch journal. An empty path disables it.
type JournalConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}
