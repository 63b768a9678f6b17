package marks

import (
	"sort"

	"github.com/dshills/occur/internal/engine/buffer"
)

// OnEdit implements buffer.EditObserver. Every tracked span is
// re-derived from the edit's old-span/new-span delta:
//
//   - edits strictly after a mark leave it untouched
//   - text replaced strictly before a mark shifts it by the delta
//   - an edit fully containing a mark removes it
//   - partial overlaps clamp the mark to the surviving text
//
// Marks anchor to the left edge: an insertion at exactly a mark's start
// does not move it. Adjustment clamps rather than fails on degenerate
// spans.
func (s *Store) OnEdit(result buffer.EditResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, updated := result.OldSpan, result.NewSpan
	kept := s.marks[:0]
	for _, mk := range s.marks {
		span, ok := adjustSpan(mk.Match.Span, old, updated)
		if !ok {
			continue
		}
		mk.Match.Span = span
		kept = append(kept, mk)
	}
	s.marks = kept

	sort.SliceStable(s.marks, func(i, j int) bool {
		a, b := s.marks[i].Match.Span, s.marks[j].Match.Span
		if c := a.Start.Compare(b.Start); c != 0 {
			return c < 0
		}
		return a.End.Compare(b.End) < 0
	})
}

// adjustSpan applies gravity rules to one tracked span.
// Returns the adjusted span and false when the edit consumed it.
func adjustSpan(span, old, updated buffer.Span) (buffer.Span, bool) {
	// Edit strictly after the mark, including an insertion at its end.
	if old.Start.Compare(span.End) >= 0 {
		return span, true
	}

	// Edit entirely before the mark. A pure insertion at exactly the
	// mark's start stays behind the left-anchored mark.
	if c := old.End.Compare(span.Start); c < 0 || (c == 0 && !old.IsEmpty()) {
		span.Start = shift(span.Start, old.End, updated.End)
		span.End = shift(span.End, old.End, updated.End)
		return span, true
	}
	if old.End.Compare(span.Start) == 0 {
		return span, true
	}

	// Edit fully contains the mark: the marked text is gone.
	if old.Start.Compare(span.Start) <= 0 && old.End.Compare(span.End) >= 0 {
		return buffer.Span{}, false
	}

	// Mark fully contains the edit: the start holds, the end rides the
	// delta.
	if old.Start.Compare(span.Start) >= 0 && old.End.Compare(span.End) <= 0 {
		span.End = shift(span.End, old.End, updated.End)
		if span.End.Before(span.Start) {
			span.End = span.Start
		}
		return span, true
	}

	// Edit overlaps the mark's head: clamp to the surviving tail.
	if old.Start.Compare(span.Start) < 0 {
		span.Start = updated.End
		span.End = shift(span.End, old.End, updated.End)
		if span.End.Before(span.Start) {
			span.End = span.Start
		}
		return span, true
	}

	// Edit overlaps the mark's tail: clamp to the surviving head.
	span.End = old.Start
	return span, true
}

// shift translates a position at or after oldEnd by the oldEnd->newEnd
// delta.
func shift(p, oldEnd, newEnd buffer.Position) buffer.Position {
	if p.Line == oldEnd.Line {
		col := int64(p.Column) - int64(oldEnd.Column) + int64(newEnd.Column)
		if col < 0 {
			col = 0
		}
		return buffer.Position{Line: newEnd.Line, Column: uint32(col)}
	}
	line := int64(p.Line) + int64(newEnd.Line) - int64(oldEnd.Line)
	if line < 0 {
		line = 0
	}
	return buffer.Position{Line: uint32(line), Column: p.Column}
}
