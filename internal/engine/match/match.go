// Package match computes non-overlapping pattern matches over buffer
// text as a lazy, restartable iteration.
package match

import (
	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/pattern"
)

// Match is a located instance of a compiled pattern in buffer text.
// Matches never span lines.
type Match struct {
	Span    buffer.Span
	Pattern pattern.ID
}

// FindAll returns an iterator over the non-overlapping matches of the
// predicate in the buffer. When bounds is non-nil, only matches fully
// contained in the bounds span are yielded. The buffer's lines are
// snapshotted at call time; re-iterating with Reset re-scans the same
// snapshot from the beginning.
func FindAll(buf *buffer.Buffer, pred *pattern.Predicate, bounds *buffer.Span) *Iterator {
	it := &Iterator{
		lines: buf.Lines(),
		pred:  pred,
	}
	if bounds != nil {
		b := buf.ClampSpan(*bounds)
		it.bounds = &b
	}
	it.Reset()
	return it
}

// HasMatch reports whether at least one match exists. It stops at the
// first hit rather than materializing the full match set.
func HasMatch(buf *buffer.Buffer, pred *pattern.Predicate, bounds *buffer.Span) bool {
	return FindAll(buf, pred, bounds).Next()
}

// Collect drains an iterator into a slice.
func Collect(it *Iterator) []Match {
	var out []Match
	for it.Next() {
		out = append(out, it.Match())
	}
	return out
}
