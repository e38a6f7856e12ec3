package corpus

import (
	"log"
	"sync/atomic"

	"github.com/csheth/clueinletters/internal/scroll"
)

// Snapshot pairs a Source with a cursor that is valid for it.
type Snapshot struct {
	Source *Source
	Cursor int
	// Generation increases on every Replace or Reset.
	Generation uint64
	// Upload names the uploaded file; empty for the default corpus.
	Upload string
}

// Viewport reads width code points from the cursor, wrapping around.
func (s Snapshot) Viewport(width int) string {
	return scroll.Viewport(s.Source.Runes(), s.Cursor, width)
}

// Store publishes the current Snapshot. Text and cursor are swapped in a
// single atomic store, so readers never see one without the other.
type Store struct {
	defaults *Source
	current  atomic.Pointer[Snapshot]
}

// NewStore starts on the default corpus with the cursor at 0.
func NewStore(defaults *Source) *Store {
	if defaults == nil {
		defaults = New("", "empty")
	}
	s := &Store{defaults: defaults}
	s.current.Store(&Snapshot{Source: defaults})
	return s
}

// Snapshot returns the current text and cursor.
func (s *Store) Snapshot() Snapshot {
	return *s.current.Load()
}

// Default returns the corpus restored by Reset.
func (s *Store) Default() *Source {
	return s.defaults
}

// Replace swaps in src with the cursor reset to 0.
func (s *Store) Replace(src *Source, upload string) Snapshot {
	if src == nil {
		src = New("", upload)
	}
	for {
		old := s.current.Load()
		next := &Snapshot{Source: src, Generation: old.Generation + 1, Upload: upload}
		if s.current.CompareAndSwap(old, next) {
			log.Printf("[corpus] replaced with %q (%d code points, generation %d)", src.Origin(), src.Len(), next.Generation)
			return *next
		}
	}
}

// Reset restores the default corpus and clears the upload indicator.
func (s *Store) Reset() Snapshot {
	return s.Replace(s.defaults, "")
}

// Advance moves the cursor one step if generation is still current. A tick
// armed before a Replace carries a stale generation and leaves the new
// snapshot untouched.
func (s *Store) Advance(generation uint64) (Snapshot, bool) {
	for {
		old := s.current.Load()
		if old.Generation != generation {
			return *old, false
		}
		next := *old
		next.Cursor = scroll.Advance(old.Cursor, old.Source.Len())
		if s.current.CompareAndSwap(old, &next) {
			return next, true
		}
	}
}
