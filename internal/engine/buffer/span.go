package buffer

import "fmt"

// SpanKind describes how a span selects text.
type SpanKind uint8

const (
	// SpanCharacter selects from Start to End as a contiguous character range.
	SpanCharacter SpanKind = iota
	// SpanLine selects whole lines from Start.Line through End.Line.
	SpanLine
	// SpanBlock selects the column range [Start.Column, End.Column) on each
	// line from Start.Line through End.Line.
	SpanBlock
)

// String returns the string representation of the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanCharacter:
		return "character"
	case SpanLine:
		return "line"
	case SpanBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Span represents a text range between two positions.
// Start is inclusive, End is exclusive: [Start, End).
// Invariant: Start <= End.
type Span struct {
	Start Position
	End   Position
	Kind  SpanKind
}

// NewSpan creates a character span from start and end positions.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end, Kind: SpanCharacter}
}

// LineSpan creates a line span covering lines [startLine, endLine].
func LineSpan(startLine, endLine uint32) Span {
	return Span{
		Start: Position{Line: startLine},
		End:   Position{Line: endLine},
		Kind:  SpanLine,
	}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%s:%s %s)", s.Start, s.End, s.Kind)
}

// IsEmpty returns true if start equals end.
func (s Span) IsEmpty() bool {
	return s.Start.Compare(s.End) == 0
}

// IsValid returns true if start <= end.
func (s Span) IsValid() bool {
	return s.Start.Compare(s.End) <= 0
}

// Contains returns true if the position is within the span.
func (s Span) Contains(p Position) bool {
	return p.Compare(s.Start) >= 0 && p.Compare(s.End) < 0
}

// ContainsSpan returns true if other is entirely within this span.
func (s Span) ContainsSpan(other Span) bool {
	return other.Start.Compare(s.Start) >= 0 && other.End.Compare(s.End) <= 0
}

// Overlaps returns true if this span overlaps with another span.
// Empty spans overlap nothing.
func (s Span) Overlaps(other Span) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return false
	}
	return s.Start.Compare(other.End) < 0 && other.Start.Compare(s.End) < 0
}

// IsSingleLine returns true if the span covers only one line.
func (s Span) IsSingleLine() bool {
	return s.Start.Line == s.End.Line
}

// Equal returns true if both spans select the same text.
func (s Span) Equal(other Span) bool {
	return s.Kind == other.Kind &&
		s.Start.Compare(other.Start) == 0 &&
		s.End.Compare(other.End) == 0
}
