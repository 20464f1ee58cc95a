// Package proxy relays rover photo queries to the upstream API so the API
// key stays on the server.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/marsdash/internal/journal"
)

// Upstream fetches the raw photos body for a rover and sol.
type Upstream interface {
	Raw(ctx context.Context, rover, sol string) (body []byte, status int, err error)
}

// Recorder receives one entry per relayed fetch. *journal.Store implements it.
type Recorder interface {
	Record(ctx context.Context, entry journal.Entry) (journal.Entry, error)
}

var errMalformedJSON = errors.New("upstream body is not valid JSON")

// Proxy serves GET /rovers/{name}.
type Proxy struct {
	upstream   Upstream
	recorder   Recorder
	defaultSol int
}

// New creates a Proxy. recorder may be nil.
func New(upstream Upstream, recorder Recorder, defaultSol int) *Proxy {
	return &Proxy{
		upstream:   upstream,
		recorder:   recorder,
		defaultSol: defaultSol,
	}
}

// RegisterRoutes mounts the relay route on the given router.
func (p *Proxy) RegisterRoutes(r chi.Router) {
	r.Get("/rovers/{name}", p.handleRover)
}

// handleRover relays the upstream body verbatim. On any failure it logs and
// writes nothing: the caller gets an empty body and no error status.
func (p *Proxy) handleRover(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// Only an absent sol takes the default; "?sol=" is relayed as empty.
	q := r.URL.Query()
	sol := q.Get("sol")
	if !q.Has("sol") {
		sol = strconv.Itoa(p.defaultSol)
	}

	start := time.Now()
	body, status, err := p.upstream.Raw(r.Context(), name, sol)
	if err == nil && !json.Valid(body) {
		err = errMalformedJSON
	}
	p.record(r.Context(), name, sol, status, len(body), time.Since(start), err)

	if err != nil {
		log.Printf("proxy: rover %s sol %s: %v", name, sol, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

func (p *Proxy) record(ctx context.Context, rover, sol string, status, n int, elapsed time.Duration, fetchErr error) {
	if p.recorder == nil {
		return
	}
	entry := journal.Entry{
		Rover:      rover,
		Sol:        sol,
		Outcome:    journal.OutcomeOK,
		StatusCode: status,
		Bytes:      n,
		DurationMS: elapsed.Milliseconds(),
	}
	if fetchErr != nil {
		entry.Outcome = journal.OutcomeError
		entry.Error = fetchErr.Error()
	}
	// The journal outlives a cancelled request.
	if _, err := p.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		log.Printf("proxy: journal: %v", err)
	}
}
