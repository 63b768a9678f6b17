package marks

import (
	"testing"

	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/match"
)

func matchAt(startLine, startCol, endLine, endCol uint32) match.Match {
	return match.Match{
		Span: buffer.NewSpan(buffer.Pos(startLine, startCol), buffer.Pos(endLine, endCol)),
	}
}

func TestMarkAssignsIDs(t *testing.T) {
	s := NewStore()

	id1 := s.Mark(matchAt(0, 0, 0, 3))
	id2 := s.Mark(matchAt(1, 0, 1, 3))

	if id1 == id2 {
		t.Error("distinct marks should get distinct IDs")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 marks, got %d", s.Len())
	}
}

func TestMarkIdempotent(t *testing.T) {
	s := NewStore()
	m := matchAt(2, 4, 2, 7)

	id1 := s.Mark(m)
	id2 := s.Mark(m)

	if id1 != id2 {
		t.Errorf("marking the same span twice should return the same ID: %d vs %d", id1, id2)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 mark, got %d", s.Len())
	}
}

func TestUnmark(t *testing.T) {
	s := NewStore()
	id := s.Mark(matchAt(0, 0, 0, 3))

	s.Unmark(id)
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}

	// Absent IDs are a no-op.
	s.Unmark(id)
	s.Unmark(999)
}

func TestUnmarkAt(t *testing.T) {
	s := NewStore()
	m := matchAt(1, 2, 1, 5)
	s.Mark(m)

	if !s.Contains(m.Span) {
		t.Fatal("expected mark present")
	}
	s.UnmarkAt(m.Span)
	if s.Contains(m.Span) {
		t.Error("expected mark removed")
	}

	// Absent spans are a no-op.
	s.UnmarkAt(m.Span)
}

func TestGet(t *testing.T) {
	s := NewStore()
	m := matchAt(3, 0, 3, 4)
	id := s.Mark(m)

	mk, ok := s.Get(id)
	if !ok {
		t.Fatal("expected mark found")
	}
	if !mk.Match.Span.Equal(m.Span) {
		t.Errorf("expected span %s, got %s", m.Span, mk.Match.Span)
	}

	if _, ok := s.Get(999); ok {
		t.Error("expected missing ID to report absent")
	}
}

func TestMarksSortedByPosition(t *testing.T) {
	s := NewStore()
	s.Mark(matchAt(5, 0, 5, 3))
	s.Mark(matchAt(0, 4, 0, 7))
	s.Mark(matchAt(2, 0, 2, 3))

	mks := s.Marks()
	for i := 1; i < len(mks); i++ {
		if mks[i].Match.Span.Start.Before(mks[i-1].Match.Span.Start) {
			t.Errorf("marks out of order at %d: %s before %s",
				i, mks[i].Match.Span, mks[i-1].Match.Span)
		}
	}
}

func TestIntersecting(t *testing.T) {
	s := NewStore()
	s.Mark(matchAt(0, 0, 0, 3))
	s.Mark(matchAt(2, 0, 2, 3))
	s.Mark(matchAt(5, 0, 5, 3))

	scope := buffer.NewSpan(buffer.Pos(1, 0), buffer.Pos(3, 0))
	got := s.Intersecting(scope)
	if len(got) != 1 {
		t.Fatalf("expected 1 intersecting mark, got %d", len(got))
	}
	if got[0].Match.Span.Start.Line != 2 {
		t.Errorf("expected mark on line 2, got %s", got[0].Match.Span)
	}
}

func TestIntersectingEmptyScope(t *testing.T) {
	s := NewStore()
	s.Mark(matchAt(0, 0, 0, 5))

	scope := buffer.NewSpan(buffer.Pos(0, 2), buffer.Pos(0, 2))
	if got := s.Intersecting(scope); got != nil {
		t.Errorf("empty scope should select nothing, got %v", got)
	}
}

func TestIntersectingEmptyStore(t *testing.T) {
	s := NewStore()

	scope := buffer.NewSpan(buffer.Pos(0, 0), buffer.Pos(9, 0))
	if got := s.Intersecting(scope); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestIter(t *testing.T) {
	s := NewStore()
	s.Mark(matchAt(1, 0, 1, 3))
	s.Mark(matchAt(0, 0, 0, 3))

	it := s.Iter()
	var lines []uint32
	for it.Next() {
		lines = append(lines, it.Mark().Match.Span.Start.Line)
	}
	if len(lines) != 2 || lines[0] != 0 || lines[1] != 1 {
		t.Errorf("expected document order [0 1], got %v", lines)
	}

	// The snapshot survives store mutation and Reset.
	s.Clear()
	it.Reset()
	n := 0
	for it.Next() {
		n++
	}
	if n != 2 {
		t.Errorf("expected 2 marks after reset, got %d", n)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Mark(matchAt(0, 0, 0, 1))
	s.Mark(matchAt(1, 0, 1, 1))

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}
