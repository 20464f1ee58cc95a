// Package dashboard implements the rover photo dashboard: per-browser
// sessions that keep page state and a server-side document, mirrored to the
// browser over a WebSocket.
package dashboard

import (
	"github.com/go-chi/chi/v5"
)

// Dashboard serves the dashboard page and its live sessions.
type Dashboard struct {
	opts Options
	view *View
}

// New creates a Dashboard. It fails if the intro Markdown cannot be rendered.
func New(opts Options) (*Dashboard, error) {
	view, err := NewView(opts.Intro, nil)
	if err != nil {
		return nil, err
	}
	return &Dashboard{opts: opts, view: view}, nil
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/assets/*", d.ServeAssets)
	r.Get("/ws/dashboard", d.handleWebSocket)
}
