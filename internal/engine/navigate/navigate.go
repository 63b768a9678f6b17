// Package navigate provides cursor-relative search over an ordered
// match set, with optional wraparound.
package navigate

import (
	"sort"

	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/match"
)

// Direction selects the scan direction relative to the cursor.
type Direction uint8

const (
	// Forward scans toward the end of the buffer.
	Forward Direction = iota
	// Backward scans toward the start of the buffer.
	Backward
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Options configures a navigation step.
type Options struct {
	Direction Direction
	// Wrap retries from the opposite extreme when nothing qualifies
	// in-direction.
	Wrap bool
	// MarkedOnly restricts navigation to marked matches. The caller
	// supplies the appropriate match set; the flag travels with the
	// options for status reporting.
	MarkedOnly bool
}

// Navigator performs cursor-relative lookups over a sorted match
// slice. Building one over a cached slice keeps repeated navigation at
// O(log n) per step instead of re-scanning the buffer.
type Navigator struct {
	matches []match.Match
}

// New creates a navigator over matches sorted by start position.
func New(matches []match.Match) *Navigator {
	return &Navigator{matches: matches}
}

// Len returns the number of navigable matches.
func (n *Navigator) Len() int {
	return len(n.matches)
}

// Next returns the nearest match strictly after (Forward) or strictly
// before (Backward) the cursor. A cursor sitting exactly on a match
// start never gets that match back. With Wrap, an exhausted direction
// retries from the opposite extreme. Returns false when the set is
// empty or a non-wrapping search finds nothing in-direction.
func (n *Navigator) Next(cursor buffer.Position, opts Options) (match.Match, bool) {
	if len(n.matches) == 0 {
		return match.Match{}, false
	}

	if opts.Direction == Backward {
		// Last match starting strictly before the cursor.
		idx := sort.Search(len(n.matches), func(i int) bool {
			return n.matches[i].Span.Start.Compare(cursor) >= 0
		})
		if idx > 0 {
			return n.matches[idx-1], true
		}
		if opts.Wrap {
			return n.matches[len(n.matches)-1], true
		}
		return match.Match{}, false
	}

	// First match starting strictly after the cursor.
	idx := sort.Search(len(n.matches), func(i int) bool {
		return n.matches[i].Span.Start.Compare(cursor) > 0
	})
	if idx < len(n.matches) {
		return n.matches[idx], true
	}
	if opts.Wrap {
		return n.matches[0], true
	}
	return match.Match{}, false
}

// Nearest returns the 1-based index of the match the cursor is on or
// before, plus whether the cursor sits inside a match. An empty set
// returns (0, false, false).
func (n *Navigator) Nearest(cursor buffer.Position) (index int, exact, ok bool) {
	if len(n.matches) == 0 {
		return 0, false, false
	}

	// First match ending after the cursor.
	idx := sort.Search(len(n.matches), func(i int) bool {
		return n.matches[i].Span.End.Compare(cursor) > 0
	})
	if idx >= len(n.matches) {
		return len(n.matches), false, true
	}
	m := n.matches[idx]
	exact = m.Span.Start.Compare(cursor) <= 0 && cursor.Compare(m.Span.End) < 0
	return idx + 1, exact, true
}
