// Package journal records every upstream fetch made by the proxy.
package journal

import "time"

// Outcome is the result of one proxied fetch.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
)

// Entry is a single journal record.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Rover      string    `json:"rover"`
	Sol        string    `json:"sol"`
	Outcome    Outcome   `json:"outcome"`
	StatusCode int       `json:"status_code"`
	Bytes      int       `json:"bytes"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}

// Filter controls which entries Recent returns.
type Filter struct {
	Rover string
	Limit int
}

// DefaultLimit caps Recent when the filter names no limit.
const DefaultLimit = 50
