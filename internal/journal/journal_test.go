package journal

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ziadkadry99/marsdash/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestRecordAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := t.Context()

	saved, err := store.Record(ctx, Entry{
		Rover:      "Curiosity",
		Sol:        "1000",
		Outcome:    OutcomeOK,
		StatusCode: 200,
		Bytes:      512,
		DurationMS: 87,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated id")
	}
	if saved.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	got, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Rover != "Curiosity" || got.Sol != "1000" {
		t.Errorf("unexpected rover/sol: %q/%q", got.Rover, got.Sol)
	}
	if got.Outcome != OutcomeOK {
		t.Errorf("Outcome = %q, want %q", got.Outcome, OutcomeOK)
	}
	if got.Bytes != 512 || got.DurationMS != 87 || got.StatusCode != 200 {
		t.Errorf("unexpected counters: %+v", got)
	}
	if !got.Timestamp.Equal(saved.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, saved.Timestamp)
	}
}

func TestGetNotFound(t *testing.T) {
	store := setupStore(t)
	if _, err := store.Get(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordRejectsUnknownOutcome(t *testing.T) {
	store := setupStore(t)
	if _, err := store.Record(t.Context(), Entry{Rover: "Spirit", Outcome: "maybe"}); err == nil {
		t.Error("expected constraint error for unknown outcome")
	}
}

func TestRecentOrderingAndFilter(t *testing.T) {
	store := setupStore(t)
	ctx := t.Context()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Rover: "Curiosity", Sol: "1", Outcome: OutcomeOK, Timestamp: base},
		{Rover: "Spirit", Sol: "2", Outcome: OutcomeError, Error: "boom", Timestamp: base.Add(time.Second)},
		{Rover: "Curiosity", Sol: "3", Outcome: OutcomeOK, Timestamp: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		if _, err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	all, err := store.Recent(ctx, Filter{})
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].Sol != "3" || all[2].Sol != "1" {
		t.Errorf("expected newest first, got sols %q..%q", all[0].Sol, all[2].Sol)
	}

	curiosity, err := store.Recent(ctx, Filter{Rover: "Curiosity", Limit: 1})
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(curiosity) != 1 || curiosity[0].Sol != "3" {
		t.Errorf("expected latest Curiosity entry only, got %+v", curiosity)
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	saved, err := store.Record(t.Context(), Entry{Rover: "Opportunity", Sol: "5", Outcome: OutcomeError, Error: "timeout"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodGet, "/api/journal?rover=Opportunity", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []Entry
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list) != 1 || list[0].Error != "timeout" {
		t.Errorf("unexpected list: %+v", list)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/journal/"+saved.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/journal/nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRoutesEmptyListIsArray(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, setupStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/journal", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}
