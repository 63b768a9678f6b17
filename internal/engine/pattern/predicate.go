package pattern

import "unicode/utf8"

// TieBreak selects the winner when multiple patterns match at the same
// start offset.
type TieBreak uint8

const (
	// TieInsertion picks the earliest-added pattern. This is the default.
	TieInsertion TieBreak = iota
	// TieLongest picks the longest match, falling back to insertion
	// order on equal length.
	TieLongest
)

// String returns the string representation of the tie-break rule.
func (t TieBreak) String() string {
	switch t {
	case TieInsertion:
		return "insertion"
	case TieLongest:
		return "longest"
	default:
		return "unknown"
	}
}

// Predicate evaluates a fixed, ordered collection of patterns against a
// single line of text. It is immutable and safe for concurrent use.
type Predicate struct {
	patterns []Pattern
	tie      TieBreak
}

// IsEmpty returns true if the predicate has no patterns.
func (p *Predicate) IsEmpty() bool {
	return len(p.patterns) == 0
}

// Hit is the result of a successful predicate evaluation on a line.
// Start and End are byte columns; End is exclusive.
type Hit struct {
	Start   int
	End     int
	Pattern ID
}

// Match finds the leftmost match on the line at or after the from
// column. Ties at the same start column resolve per the tie-break rule,
// with insertion order always breaking remaining ties.
func (p *Predicate) Match(line string, from int) (Hit, bool) {
	if from > len(line) {
		return Hit{}, false
	}

	best := Hit{Start: -1}
	for _, pat := range p.patterns {
		s, e, ok := firstMatchAt(pat, line, from)
		if !ok {
			continue
		}
		if best.Start < 0 || s < best.Start {
			best = Hit{Start: s, End: e, Pattern: pat.ID}
			continue
		}
		if s == best.Start && p.tie == TieLongest && e > best.End {
			best = Hit{Start: s, End: e, Pattern: pat.ID}
		}
	}

	if best.Start < 0 {
		return Hit{}, false
	}
	return best, true
}

// firstMatchAt finds the pattern's first match on the line whose start
// column is >= from. A single non-overlapping pass hides matches that
// overlap the same pattern's earlier hits, so the search slides forward
// column by column instead. One rune of left context stays in view so
// boundary assertions like \b judge the true neighboring text.
func firstMatchAt(pat Pattern, line string, from int) (int, int, bool) {
	q := from
	if q < 0 {
		q = 0
	}
	for q <= len(line) {
		ctx := q
		if ctx > 0 {
			_, size := utf8.DecodeLastRuneInString(line[:q])
			ctx = q - size
		}
		loc := pat.re.FindStringIndex(line[ctx:])
		if loc == nil {
			return 0, 0, false
		}
		s, e := loc[0]+ctx, loc[1]+ctx
		if s >= q {
			// Leftmost in the context slice and not before the scan
			// point, so nothing between q and s can match.
			return s, e, true
		}
		// The context rune itself starts a match, which can shadow one
		// beginning exactly at q. Retry anchored at q before moving on;
		// the slice hides the rune before q, so word patterns re-verify
		// their leading boundary against the full line.
		if loc2 := pat.re.FindStringIndex(line[q:]); loc2 != nil && loc2[0] == 0 {
			if pat.Kind != KindWord || wordBoundary(line, q) {
				return q, loc2[1] + q, true
			}
		}
		q++
	}
	return 0, 0, false
}

// wordBoundary reports whether a \b assertion holds at byte offset i of
// line. Matches regexp's ASCII notion of a word character.
func wordBoundary(line string, i int) bool {
	prev, _ := utf8.DecodeLastRuneInString(line[:i])
	next, _ := utf8.DecodeRuneInString(line[i:])
	return isWordRune(prev) != isWordRune(next)
}

func isWordRune(r rune) bool {
	return r == '_' ||
		('0' <= r && r <= '9') ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z')
}
