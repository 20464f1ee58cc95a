package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/marsdash/internal/config"
	"github.com/ziadkadry99/marsdash/internal/db"
	"github.com/ziadkadry99/marsdash/internal/journal"
	"github.com/ziadkadry99/marsdash/internal/nasa"
)

const upstreamBody = `{"photos":[{"id":1,"img_src":"a.jpg","earth_date":"2015-1-1","rover":{"launch_date":"2011-1-1","landing_date":"2012-1-1","status":"active"}}]}`

func newTestConfig(t *testing.T, upstreamURL string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Upstream.BaseURL = upstreamURL
	cfg.Static.Dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(cfg.Static.Dir, "robots.txt"), []byte("User-agent: *"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Static.Dir, ".env"), []byte("API_KEY=secret"), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestBuildServerRoutes(t *testing.T) {
	var gotKey string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		w.Write([]byte(upstreamBody))
	}))
	defer upstream.Close()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	cfg := newTestConfig(t, upstream.URL)
	srv, err := buildServer(cfg, nasa.NewClient(upstream.Client(), upstream.URL, "secret"), database)
	if err != nil {
		t.Fatalf("buildServer: %v", err)
	}
	h := srv.Router()

	w := get(t, h, "/rovers/Curiosity?sol=1000")
	if w.Code != http.StatusOK || w.Body.String() != upstreamBody {
		t.Fatalf("proxy: got %d %q", w.Code, w.Body.String())
	}
	if gotKey != "secret" {
		t.Errorf("expected api key upstream, got %q", gotKey)
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Error("api key leaked into the response")
	}

	w = get(t, h, "/api/journal")
	var entries []journal.Entry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("journal: %v", err)
	}
	if len(entries) != 1 || entries[0].Rover != "Curiosity" || entries[0].Outcome != journal.OutcomeOK {
		t.Errorf("unexpected journal entries: %+v", entries)
	}

	w = get(t, h, "/")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Welcome to Mars dashboard") {
		t.Errorf("index: got %d", w.Code)
	}

	if w := get(t, h, "/healthz"); w.Code != http.StatusOK {
		t.Errorf("healthz: got %d", w.Code)
	}
	if w := get(t, h, "/robots.txt"); w.Code != http.StatusOK || w.Body.String() != "User-agent: *" {
		t.Errorf("static: got %d %q", w.Code, w.Body.String())
	}
	if w := get(t, h, "/.env"); w.Code != http.StatusNotFound {
		t.Errorf("excluded static file: expected 404, got %d", w.Code)
	}
}

func TestBuildServerWithoutJournal(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamBody))
	}))
	defer upstream.Close()

	cfg := newTestConfig(t, upstream.URL)
	srv, err := buildServer(cfg, nasa.NewClient(upstream.Client(), upstream.URL, "k"), nil)
	if err != nil {
		t.Fatalf("buildServer: %v", err)
	}

	if w := get(t, srv.Router(), "/rovers/Spirit"); w.Body.String() != upstreamBody {
		t.Errorf("proxy: got %q", w.Body.String())
	}
	if w := get(t, srv.Router(), "/api/journal"); w.Code != http.StatusNotFound {
		t.Errorf("expected no journal API, got %d", w.Code)
	}
}

func TestPrintPhotos(t *testing.T) {
	var buf bytes.Buffer
	var resp nasa.PhotosResponse
	if err := json.Unmarshal([]byte(upstreamBody), &resp); err != nil {
		t.Fatal(err)
	}

	printPhotos(&buf, "Curiosity", 1000, resp.Photos)
	want := "Curiosity (launched 2011-1-1, landed 2012-1-1, active): 1 photos on sol 1000\n2015-1-1\ta.jpg\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	printPhotos(&buf, "Spirit", 1, nil)
	if buf.String() != "No photos available for Spirit on sol 1.\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestBuildServerCarriesConfig(t *testing.T) {
	cfg := newTestConfig(t, "http://127.0.0.1:0")
	cfg.Port = 4321
	cfg.CORS.AllowAll = false

	srv, err := buildServer(cfg, nasa.NewClient(nil, cfg.Upstream.BaseURL, "k"), nil)
	if err != nil {
		t.Fatalf("buildServer: %v", err)
	}
	got := srv.ServerConfig()
	if got.Port != 4321 {
		t.Errorf("expected port 4321, got %d", got.Port)
	}
	if got.AllowAll {
		t.Error("expected restricted CORS")
	}
}
