package match

import (
	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/pattern"
)

// Iterator walks the buffer's matches in document order.
//
// Usage:
//
//	it := match.FindAll(buf, pred, nil)
//	for it.Next() {
//	    m := it.Match()
//	    // ...
//	}
type Iterator struct {
	lines  []string
	pred   *pattern.Predicate
	bounds *buffer.Span

	line int // next line to scan
	col  int // next column to scan on line
	cur  Match
	done bool
}

// Next advances to the next match.
// Returns true if there is a match, false when iteration is complete.
func (it *Iterator) Next() bool {
	if it.done || it.pred == nil || it.pred.IsEmpty() {
		it.done = true
		return false
	}

	for it.line < len(it.lines) {
		if !it.lineInBounds(it.line) {
			it.line++
			it.col = 0
			continue
		}

		hit, ok := it.pred.Match(it.lines[it.line], it.col)
		if !ok {
			it.line++
			it.col = 0
			continue
		}

		span := buffer.Span{
			Start: buffer.Position{Line: uint32(it.line), Column: uint32(hit.Start)},
			End:   buffer.Position{Line: uint32(it.line), Column: uint32(hit.End)},
		}

		// Advance past the match end; zero-width matches step one
		// column so the scan always makes progress.
		if hit.End > hit.Start {
			it.col = hit.End
		} else {
			it.col = hit.End + 1
		}

		if it.bounds != nil {
			if it.pastBounds(span.Start) {
				it.done = true
				return false
			}
			if !it.spanInBounds(span) {
				continue
			}
		}

		it.cur = Match{Span: span, Pattern: hit.Pattern}
		return true
	}

	it.done = true
	return false
}

// Match returns the current match. Only valid after Next returns true.
func (it *Iterator) Match() Match {
	return it.cur
}

// Reset restarts iteration from the beginning of the scan range.
func (it *Iterator) Reset() {
	it.done = false
	it.col = 0
	it.line = 0
	if it.bounds != nil {
		it.line = int(it.bounds.Start.Line)
		if it.bounds.Kind == buffer.SpanCharacter {
			it.col = int(it.bounds.Start.Column)
		}
	}
}

// lineInBounds reports whether the line can contain in-bounds matches.
func (it *Iterator) lineInBounds(line int) bool {
	if it.bounds == nil {
		return true
	}
	return line >= int(it.bounds.Start.Line) && line <= int(it.bounds.End.Line)
}

// pastBounds reports whether a match starting at p can no longer be in
// bounds. Line and block bounds cover their whole last line, so only
// the line number decides; character bounds end mid-line at End.
func (it *Iterator) pastBounds(p buffer.Position) bool {
	b := it.bounds
	if p.Line > b.End.Line {
		return true
	}
	if b.Kind == buffer.SpanCharacter {
		return p.Compare(b.End) > 0
	}
	return false
}

// spanInBounds reports whether the match span is fully contained in the
// bounds, honoring the bounds kind.
func (it *Iterator) spanInBounds(span buffer.Span) bool {
	b := it.bounds
	switch b.Kind {
	case buffer.SpanLine:
		return span.Start.Line >= b.Start.Line && span.End.Line <= b.End.Line
	case buffer.SpanBlock:
		return span.Start.Line >= b.Start.Line && span.End.Line <= b.End.Line &&
			span.Start.Column >= b.Start.Column && span.End.Column <= b.End.Column
	default:
		return span.Start.Compare(b.Start) >= 0 && span.End.Compare(b.End) <= 0
	}
}
