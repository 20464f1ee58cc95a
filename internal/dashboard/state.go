package dashboard

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ziadkadry99/marsdash/internal/nasa"
)

// AppState is an immutable snapshot of one page's state. Accessors return
// copies, so holding a snapshot never observes later updates.
type AppState struct {
	rovers []string
	photos []nasa.Photo
}

// NewAppState returns the initial snapshot: the given rovers and no photos.
func NewAppState(rovers []string) AppState {
	return AppState{rovers: slices.Clone(rovers)}
}

// Rovers returns the rover names in display order.
func (s AppState) Rovers() []string { return slices.Clone(s.rovers) }

// Photos returns the currently loaded photos.
func (s AppState) Photos() []nasa.Photo { return slices.Clone(s.photos) }

// Partial names the fields to replace in a merge. A nil field is not
// mentioned and keeps its old value; a non-nil pointer to a nil slice
// replaces the field with an empty list.
type Partial struct {
	Rovers *[]string
	Photos *[]nasa.Photo
}

// WithPhotos is shorthand for a Partial that replaces only the photos.
func WithPhotos(photos []nasa.Photo) Partial {
	return Partial{Photos: &photos}
}

// Merge returns a new snapshot with the fields of p replacing those of s.
func (s AppState) Merge(p Partial) AppState {
	next := s
	if p.Rovers != nil {
		next.rovers = slices.Clone(*p.Rovers)
	}
	if p.Photos != nil {
		next.photos = slices.Clone(*p.Photos)
	}
	return next
}

// Store owns the current snapshot of one page. It is the only writer.
// Snapshot never blocks; updates and their hooks run one at a time.
type Store struct {
	mu       sync.Mutex
	current  atomic.Pointer[AppState]
	onUpdate func(AppState)
}

// NewStore creates a Store holding initial. onUpdate runs after every
// Update with the new snapshot; it may be nil.
func NewStore(initial AppState, onUpdate func(AppState)) *Store {
	s := &Store{onUpdate: onUpdate}
	s.current.Store(&initial)
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() AppState {
	return *s.current.Load()
}

// Update merges p into the current snapshot, swaps it in and runs the
// update hook with the result. The hook of one update finishes before the
// next update swaps, so the last snapshot stored is also the last one the
// hook saw. The hook must not call Update.
func (s *Store) Update(p Partial) AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Load().Merge(p)
	s.current.Store(&next)
	if s.onUpdate != nil {
		s.onUpdate(next)
	}
	return next
}
