package config

import "fmt"

// DefaultRovers are the rovers offered on the dashboard.
var DefaultRovers = []string{"Curiosity", "Opportunity", "Spirit"}

// DefaultStaticExcludes are glob patterns never served from the public dir.
var DefaultStaticExcludes = []string{
	"**/.*",
	"**/*.map",
	"**/*.env",
}

const (
	DefaultPort        = 3000
	DefaultSol         = 1000
	DefaultUpstreamURL = "https://api.nasa.gov/mars-photos/api/v1"
	DefaultIntro       = "Each rover has its own set of photos. Select one of them to see more details."
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port: DefaultPort,
		Upstream: UpstreamConfig{
			BaseURL: DefaultUpstreamURL,
		},
		Dashboard: DashboardConfig{
			Rovers:     append([]string(nil), DefaultRovers...),
			DefaultSol: DefaultSol,
			Intro:      DefaultIntro,
		},
		Static: StaticConfig{
			Dir:     "public",
			Exclude: append([]string(nil), DefaultStaticExcludes...),
		},
		Journal: JournalConfig{
			Path: "data/marsdash.db",
		},
		CORS: CORSConfig{
			AllowAll: true,
		},
	}
}

// ProxyBaseURL returns the base URL dashboard sessions use to reach the
// proxy endpoint.
func (c *Config) ProxyBaseURL() string {
	if c.Dashboard.ProxyBaseURL != "" {
		return c.Dashboard.ProxyBaseURL
	}
	return fmt.Sprintf("http://localhost:%d", c.Port)
}
