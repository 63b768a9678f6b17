package marks

import (
	"sort"
	"sync"

	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/match"
)

// ID uniquely identifies a mark within a store. IDs are stable for the
// life of the mark; positions are not.
type ID uint64

// Mark is a persisted, edit-resilient reference to a match.
type Mark struct {
	ID    ID
	Match match.Match
}

// Store is an arena of marks for a single buffer, kept sorted by
// current position. It implements buffer.EditObserver so tracked spans
// self-correct on every buffer edit.
type Store struct {
	mu     sync.RWMutex
	nextID ID
	marks  []Mark // sorted by Match.Span.Start, then End
}

// NewStore creates an empty mark store.
func NewStore() *Store {
	return &Store{}
}

// Mark inserts a mark anchored to the match's span and returns its ID.
// Marking an already-marked span returns the existing ID.
func (s *Store) Mark(m match.Match) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.searchLocked(m.Span.Start)
	for i := idx; i < len(s.marks); i++ {
		if s.marks[i].Match.Span.Start.Compare(m.Span.Start) != 0 {
			break
		}
		if s.marks[i].Match.Span.Equal(m.Span) {
			return s.marks[i].ID
		}
	}

	s.nextID++
	mk := Mark{ID: s.nextID, Match: m}
	s.marks = append(s.marks, Mark{})
	copy(s.marks[idx+1:], s.marks[idx:])
	s.marks[idx] = mk
	return mk.ID
}

// Unmark removes the mark with the given ID. Absent IDs are a no-op.
func (s *Store) Unmark(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, mk := range s.marks {
		if mk.ID == id {
			s.marks = append(s.marks[:i], s.marks[i+1:]...)
			return
		}
	}
}

// UnmarkAt removes the mark anchored at exactly the given span.
// Absent spans are a no-op.
func (s *Store) UnmarkAt(span buffer.Span) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, mk := range s.marks {
		if mk.Match.Span.Equal(span) {
			s.marks = append(s.marks[:i], s.marks[i+1:]...)
			return
		}
	}
}

// Contains reports whether a mark is anchored at exactly the span.
func (s *Store) Contains(span buffer.Span) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, mk := range s.marks {
		if mk.Match.Span.Equal(span) {
			return true
		}
	}
	return false
}

// Get returns the mark with the given ID.
func (s *Store) Get(id ID) (Mark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, mk := range s.marks {
		if mk.ID == id {
			return mk, true
		}
	}
	return Mark{}, false
}

// Len returns the number of marks in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.marks)
}

// Clear removes all marks.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marks = nil
}

// Marks returns a snapshot of all marks ordered by current position.
func (s *Store) Marks() []Mark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Mark, len(s.marks))
	copy(out, s.marks)
	return out
}

// Matches returns the marked matches ordered by current position.
func (s *Store) Matches() []match.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]match.Match, len(s.marks))
	for i, mk := range s.marks {
		out[i] = mk.Match
	}
	return out
}

// Intersecting returns the marks whose spans overlap the scope, in
// document order. Marks touching an empty scope at its position are
// not included; an empty store returns nil.
func (s *Store) Intersecting(scope buffer.Span) []Mark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Mark
	for _, mk := range s.marks {
		if mk.Match.Span.Overlaps(scope) {
			out = append(out, mk)
		}
	}
	return out
}

// searchLocked returns the insertion index for a mark starting at p.
func (s *Store) searchLocked(p buffer.Position) int {
	return sort.Search(len(s.marks), func(i int) bool {
		return s.marks[i].Match.Span.Start.Compare(p) >= 0
	})
}
