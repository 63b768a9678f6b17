// Package pattern compiles user search patterns into an ordered,
// combined predicate for the matcher.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrEmptyPattern is returned when an empty pattern is added.
var ErrEmptyPattern = errors.New("empty pattern")

// Kind describes how a raw pattern string is interpreted.
type Kind uint8

const (
	// KindWord matches the literal text bounded by word boundaries.
	KindWord Kind = iota
	// KindLiteral matches the literal text anywhere.
	KindLiteral
	// KindRegex passes the raw text through as Go regexp syntax.
	KindRegex
)

// String returns the string representation of the pattern kind.
func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindLiteral:
		return "literal"
	case KindRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// ID identifies a pattern within a Set. IDs are assigned in insertion
// order starting at 0 and double as the tie-break rank.
type ID int

// Pattern is a single compiled search pattern.
type Pattern struct {
	ID   ID
	Raw  string
	Kind Kind

	re *regexp.Regexp
}

// Set accumulates patterns for the life of an occurrence.
// Patterns cannot be removed; clearing means disposing the occurrence
// that owns the set.
type Set struct {
	patterns []Pattern
}

// NewSet creates an empty pattern set.
func NewSet() *Set {
	return &Set{}
}

// Add compiles and appends a pattern, returning its insertion-order ID.
func (s *Set) Add(raw string, kind Kind) (ID, error) {
	if raw == "" {
		return 0, ErrEmptyPattern
	}

	var expr string
	switch kind {
	case KindWord:
		expr = `\b` + regexp.QuoteMeta(raw) + `\b`
	case KindLiteral:
		expr = regexp.QuoteMeta(raw)
	case KindRegex:
		expr = raw
	default:
		return 0, fmt.Errorf("unknown pattern kind %d", kind)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return 0, fmt.Errorf("compile pattern %q: %w", raw, err)
	}

	id := ID(len(s.patterns))
	s.patterns = append(s.patterns, Pattern{
		ID:   id,
		Raw:  raw,
		Kind: kind,
		re:   re,
	})
	return id, nil
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int {
	return len(s.patterns)
}

// Patterns returns a copy of the patterns in insertion order.
func (s *Set) Patterns() []Pattern {
	out := make([]Pattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Predicate returns the combined search predicate over all patterns,
// equivalent to their alternation with the given tie-break rule.
func (s *Set) Predicate(tie TieBreak) *Predicate {
	return &Predicate{patterns: s.Patterns(), tie: tie}
}
