package proxy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/marsdash/internal/db"
	"github.com/ziadkadry99/marsdash/internal/journal"
	"github.com/ziadkadry99/marsdash/internal/nasa"
)

const photosBody = `{"photos":[{"img_src":"a.jpg","earth_date":"2015-1-1","rover":{"launch_date":"2011-1-1","landing_date":"2012-1-1","status":"active"}}]}`

type fakeUpstream struct {
	mu     sync.Mutex
	body   []byte
	status int
	err    error
	calls  []string
}

func (f *fakeUpstream) Raw(_ context.Context, rover, sol string) ([]byte, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rover+"@"+sol)
	return f.body, f.status, f.err
}

func serve(p *Proxy, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	p.RegisterRoutes(r)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRelaysBodyVerbatim(t *testing.T) {
	up := &fakeUpstream{body: []byte(photosBody), status: http.StatusOK}
	w := serve(New(up, nil, 1000), "/rovers/Curiosity?sol=1000")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != photosBody {
		t.Errorf("body was not relayed verbatim: %s", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}

func TestDefaultSol(t *testing.T) {
	up := &fakeUpstream{body: []byte(`{"photos":[]}`), status: http.StatusOK}
	serve(New(up, nil, 1000), "/rovers/Spirit")
	serve(New(up, nil, 1000), "/rovers/Spirit?sol=7")
	serve(New(up, nil, 1000), "/rovers/Spirit?sol=")

	if len(up.calls) != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", len(up.calls))
	}
	if up.calls[0] != "Spirit@1000" {
		t.Errorf("expected default sol 1000, got %q", up.calls[0])
	}
	if up.calls[1] != "Spirit@7" {
		t.Errorf("expected sol 7, got %q", up.calls[1])
	}
	if up.calls[2] != "Spirit@" {
		t.Errorf("expected empty sol relayed as-is, got %q", up.calls[2])
	}
}

func TestRoverAndSolNotValidated(t *testing.T) {
	up := &fakeUpstream{body: []byte(`{"photos":[]}`), status: http.StatusOK}
	w := serve(New(up, nil, 1000), "/rovers/Perseverance?sol=abc")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if up.calls[0] != "Perseverance@abc" {
		t.Errorf("expected passthrough, got %q", up.calls[0])
	}
}

func TestUpstreamErrorStatusStillRelaysJSON(t *testing.T) {
	errBody := `{"error":{"code":"API_KEY_MISSING"}}`
	up := &fakeUpstream{body: []byte(errBody), status: http.StatusForbidden}
	w := serve(New(up, nil, 1000), "/rovers/Curiosity")
	if w.Body.String() != errBody {
		t.Errorf("expected upstream JSON relayed, got %q", w.Body.String())
	}
}

func TestFailsSilently(t *testing.T) {
	tests := []struct {
		name string
		up   *fakeUpstream
	}{
		{"network error", &fakeUpstream{err: errors.New("connection refused")}},
		{"malformed json", &fakeUpstream{body: []byte("<html>oops"), status: http.StatusBadGateway}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(New(tt.up, nil, 1000), "/rovers/Curiosity")
			if w.Body.Len() != 0 {
				t.Errorf("expected empty body, got %q", w.Body.String())
			}
			if w.Code != http.StatusOK {
				t.Errorf("expected no explicit error status, got %d", w.Code)
			}
		})
	}
}

func TestJournalRecordsOutcome(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	store := journal.NewStore(database)

	ok := &fakeUpstream{body: []byte(photosBody), status: http.StatusOK}
	serve(New(ok, store, 1000), "/rovers/Curiosity")
	bad := &fakeUpstream{err: errors.New("dial tcp: timeout")}
	serve(New(bad, store, 1000), "/rovers/Spirit?sol=3")

	entries, err := store.Recent(t.Context(), journal.Filter{})
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(entries))
	}

	byRover := map[string]journal.Entry{}
	for _, e := range entries {
		byRover[e.Rover] = e
	}
	if e := byRover["Curiosity"]; e.Outcome != journal.OutcomeOK || e.Bytes != len(photosBody) || e.Sol != "1000" {
		t.Errorf("unexpected Curiosity entry: %+v", e)
	}
	if e := byRover["Spirit"]; e.Outcome != journal.OutcomeError || !strings.Contains(e.Error, "timeout") {
		t.Errorf("unexpected Spirit entry: %+v", e)
	}
}

func TestAPIKeyStaysServerSide(t *testing.T) {
	var gotKey string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		w.Write([]byte(`{"photos":[]}`))
	}))
	defer upstream.Close()

	client := nasa.NewClient(upstream.Client(), upstream.URL, "hidden-key")
	w := serve(New(client, nil, 1000), "/rovers/Curiosity")

	if gotKey != "hidden-key" {
		t.Errorf("expected key injected upstream, got %q", gotKey)
	}
	if strings.Contains(w.Body.String(), "hidden-key") {
		t.Error("API key leaked to the client response")
	}
}
