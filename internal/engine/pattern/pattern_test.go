package pattern

import (
	"errors"
	"testing"
)

func TestAddAssignsInsertionOrderIDs(t *testing.T) {
	s := NewSet()

	for i, raw := range []string{"foo", "bar", "baz"} {
		id, err := s.Add(raw, KindLiteral)
		if err != nil {
			t.Fatalf("add %q: %v", raw, err)
		}
		if id != ID(i) {
			t.Errorf("expected ID %d, got %d", i, id)
		}
	}

	if s.Len() != 3 {
		t.Errorf("expected 3 patterns, got %d", s.Len())
	}
}

func TestAddEmptyPattern(t *testing.T) {
	s := NewSet()

	_, err := s.Add("", KindLiteral)
	if !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("expected ErrEmptyPattern, got %v", err)
	}
}

func TestAddInvalidRegex(t *testing.T) {
	s := NewSet()

	if _, err := s.Add("[unclosed", KindRegex); err == nil {
		t.Error("expected compile error for invalid regex")
	}
	if s.Len() != 0 {
		t.Errorf("failed add should not grow the set, got %d", s.Len())
	}
}

func TestLiteralEscapesMetacharacters(t *testing.T) {
	s := NewSet()
	if _, err := s.Add("a.b", KindLiteral); err != nil {
		t.Fatalf("add: %v", err)
	}
	pred := s.Predicate(TieInsertion)

	if _, ok := pred.Match("xaxb", 0); ok {
		t.Error("literal dot should not match as wildcard")
	}
	hit, ok := pred.Match("xa.b", 0)
	if !ok || hit.Start != 1 || hit.End != 4 {
		t.Errorf("expected hit at [1,4), got %+v ok=%v", hit, ok)
	}
}

func TestWordRespectsBoundaries(t *testing.T) {
	s := NewSet()
	if _, err := s.Add("cat", KindWord); err != nil {
		t.Fatalf("add: %v", err)
	}
	pred := s.Predicate(TieInsertion)

	if _, ok := pred.Match("concatenate", 0); ok {
		t.Error("word pattern should not match inside another word")
	}

	hit, ok := pred.Match("a cat sat", 0)
	if !ok || hit.Start != 2 || hit.End != 5 {
		t.Errorf("expected hit at [2,5), got %+v ok=%v", hit, ok)
	}
}

func TestWordBoundaryVisibleFromMidLine(t *testing.T) {
	s := NewSet()
	if _, err := s.Add("cat", KindWord); err != nil {
		t.Fatalf("add: %v", err)
	}
	pred := s.Predicate(TieInsertion)

	// Searching from inside "concatenate" must still see the full
	// line's boundaries, not treat the slice start as one.
	if _, ok := pred.Match("concatenate", 3); ok {
		t.Error("mid-line search should not fabricate a word boundary")
	}
}

func TestMatchFromColumn(t *testing.T) {
	s := NewSet()
	if _, err := s.Add("x", KindLiteral); err != nil {
		t.Fatalf("add: %v", err)
	}
	pred := s.Predicate(TieInsertion)

	hit, ok := pred.Match("x..x", 1)
	if !ok || hit.Start != 3 {
		t.Errorf("expected hit at column 3, got %+v ok=%v", hit, ok)
	}

	if _, ok := pred.Match("x", 5); ok {
		t.Error("from past line end should not match")
	}
}

func TestMatchFindsOverlapShadowedStart(t *testing.T) {
	s := NewSet()
	if _, err := s.Add("aa", KindLiteral); err != nil {
		t.Fatalf("add: %v", err)
	}
	pred := s.Predicate(TieInsertion)

	// "aa" matches "baaa" at columns 1 and 2; the match at 2 overlaps
	// the one at 1, so a single non-overlapping pass would hide it.
	// Searching from column 2 must still find it.
	hit, ok := pred.Match("baaa", 2)
	if !ok || hit.Start != 2 || hit.End != 4 {
		t.Errorf("expected hit at [2,4), got %+v ok=%v", hit, ok)
	}
}

func TestLeftmostWinsAcrossPatterns(t *testing.T) {
	s := NewSet()
	if _, err := s.Add("bbb", KindLiteral); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add("a", KindLiteral); err != nil {
		t.Fatalf("add: %v", err)
	}
	pred := s.Predicate(TieInsertion)

	hit, ok := pred.Match(".a.bbb", 0)
	if !ok || hit.Pattern != 1 || hit.Start != 1 {
		t.Errorf("expected later-added leftmost pattern to win, got %+v", hit)
	}
}

func TestTieBreakInsertion(t *testing.T) {
	s := NewSet()
	if _, err := s.Add("ab", KindLiteral); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add("abc", KindLiteral); err != nil {
		t.Fatalf("add: %v", err)
	}
	pred := s.Predicate(TieInsertion)

	hit, ok := pred.Match("abc", 0)
	if !ok || hit.Pattern != 0 || hit.End != 2 {
		t.Errorf("expected first-added pattern to win the tie, got %+v", hit)
	}
}

func TestTieBreakLongest(t *testing.T) {
	s := NewSet()
	if _, err := s.Add("ab", KindLiteral); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add("abc", KindLiteral); err != nil {
		t.Fatalf("add: %v", err)
	}
	pred := s.Predicate(TieLongest)

	hit, ok := pred.Match("abc", 0)
	if !ok || hit.Pattern != 1 || hit.End != 3 {
		t.Errorf("expected longest match to win the tie, got %+v", hit)
	}
}

func TestEmptyPredicate(t *testing.T) {
	pred := NewSet().Predicate(TieInsertion)

	if !pred.IsEmpty() {
		t.Error("expected empty predicate")
	}
	if _, ok := pred.Match("anything", 0); ok {
		t.Error("empty predicate should never match")
	}
}
