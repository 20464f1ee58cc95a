package dashboard

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// Options configures the dashboard and every session it creates.
type Options struct {
	Rovers       []string
	DefaultSol   int
	Intro        string // Markdown
	ProxyBaseURL string
	HTTPClient   *http.Client
}

// Session is one browser page: its state, its document and the gallery
// loader acting on them.
type Session struct {
	ID string

	ctx     context.Context
	doc     *Document
	store   *Store
	view    *View
	gallery *Gallery
	loads   sync.WaitGroup
}

// NewSession creates a session whose loads run under ctx.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	s := &Session{
		ID:  uuid.New().String(),
		ctx: ctx,
		doc: NewDocument(),
	}

	view, err := NewView(opts.Intro, s.selectRover)
	if err != nil {
		return nil, fmt.Errorf("creating view: %w", err)
	}
	s.view = view

	s.store = NewStore(NewAppState(opts.Rovers), func(state AppState) {
		if err := s.view.Render(s.doc, state); err != nil {
			log.Printf("dashboard: session %s: render: %v", s.ID, err)
		}
	})

	fetcher := NewPhotoFetcher(opts.HTTPClient, opts.ProxyBaseURL, s.store)
	s.gallery = NewGallery(s.doc, s.store, fetcher.Fetch, opts.DefaultSol)

	return s, nil
}

// Start paints the initial page.
func (s *Session) Start() error {
	return s.view.Render(s.doc, s.store.Snapshot())
}

// Click runs the handler registered under ref. It reports false when no
// attached element carries ref.
func (s *Session) Click(ref string) bool {
	fn, ok := s.doc.Handler(ref)
	if !ok {
		return false
	}
	fn()
	return true
}

// selectRover starts a gallery load in the background. Loads are neither
// serialized nor cancelled by a later selection, so the last one to finish
// decides what the page shows.
func (s *Session) selectRover(rover string) {
	s.loads.Add(1)
	go func() {
		defer s.loads.Done()
		if err := s.gallery.ShowRoverInformation(s.ctx, rover); err != nil {
			log.Printf("dashboard: session %s: unhandled gallery error for %s: %v", s.ID, rover, err)
		}
	}()
}

// Wait blocks until every started gallery load has finished.
func (s *Session) Wait() { s.loads.Wait() }

// Document returns the session's page.
func (s *Session) Document() *Document { return s.doc }

// Store returns the session's state store.
func (s *Session) Store() *Store { return s.store }

// Gallery returns the session's gallery loader.
func (s *Session) Gallery() *Gallery { return s.gallery }
