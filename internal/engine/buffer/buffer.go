package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	// ErrSpanInvalid is returned when a span's start comes after its end.
	// Out-of-bounds spans are clamped instead.
	ErrSpanInvalid = errors.New("invalid span")
)

// EditObserver is notified after every buffer mutation.
// Observers run synchronously on the mutating goroutine.
type EditObserver interface {
	OnEdit(result EditResult)
}

// Buffer is a mutable, line-oriented text buffer.
// All methods are safe for concurrent use, though the occurrence engine
// drives each buffer from a single goroutine.
type Buffer struct {
	mu        sync.RWMutex
	id        ID
	lines     []string
	revision  uint64
	observers []EditObserver
	destroyed bool
}

// NewBuffer creates an empty buffer with a single empty line.
func NewBuffer(id ID) *Buffer {
	return &Buffer{id: id, lines: []string{""}}
}

// NewBufferFromLines creates a buffer from a copy of the given lines.
func NewBufferFromLines(id ID, lines []string) *Buffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	copied := make([]string, len(lines))
	copy(copied, lines)
	return &Buffer{id: id, lines: copied}
}

// NewBufferFromString creates a buffer by splitting text on newlines.
func NewBufferFromString(id ID, text string) *Buffer {
	return NewBufferFromLines(id, strings.Split(text, "\n"))
}

// ID returns the buffer's identifier.
func (b *Buffer) ID() ID {
	return b.id
}

// Revision returns the current revision counter.
// It increments on every mutation.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lines))
}

// Line returns the text of the given line, without a trailing newline.
// Out-of-range lines return the empty string.
func (b *Buffer) Line(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text returns the full buffer text with lines joined by newlines.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// Destroyed reports whether Destroy has been called.
func (b *Buffer) Destroyed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.destroyed
}

// Destroy marks the buffer as destroyed. Further mutations are rejected
// by the occurrence layer; the buffer itself keeps its text for reads.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = true
}

// AddObserver registers an edit observer.
func (b *Buffer) AddObserver(o EditObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, o)
}

// RemoveObserver unregisters an edit observer.
func (b *Buffer) RemoveObserver(o EditObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.observers {
		if existing == o {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

// EndPosition returns the position one past the last character.
func (b *Buffer) EndPosition() Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	last := len(b.lines) - 1
	return Position{Line: uint32(last), Column: uint32(len(b.lines[last]))}
}

// ClampPosition clamps a position to valid buffer coordinates.
func (b *Buffer) ClampPosition(p Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clampPositionLocked(p)
}

func (b *Buffer) clampPositionLocked(p Position) Position {
	if int(p.Line) >= len(b.lines) {
		last := len(b.lines) - 1
		return Position{Line: uint32(last), Column: uint32(len(b.lines[last]))}
	}
	if int(p.Column) > len(b.lines[p.Line]) {
		return Position{Line: p.Line, Column: uint32(len(b.lines[p.Line]))}
	}
	return p
}

// ClampSpan clamps a span's endpoints to valid buffer coordinates.
func (b *Buffer) ClampSpan(s Span) Span {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s.Start = b.clampPositionLocked(s.Start)
	s.End = b.clampPositionLocked(s.End)
	if s.Start.After(s.End) {
		s.End = s.Start
	}
	return s
}

// SpanText returns the text selected by the span, one element per line.
// Line spans return whole lines; block spans return the column slice of
// each covered line. Out-of-bounds spans are clamped.
func (b *Buffer) SpanText(s Span) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.spanTextLocked(s)
}

func (b *Buffer) spanTextLocked(s Span) []string {
	switch s.Kind {
	case SpanLine:
		start, end := b.clampLineRange(s.Start.Line, s.End.Line)
		out := make([]string, 0, end-start+1)
		for l := start; l <= end; l++ {
			out = append(out, b.lines[l])
		}
		return out

	case SpanBlock:
		start, end := b.clampLineRange(s.Start.Line, s.End.Line)
		out := make([]string, 0, end-start+1)
		for l := start; l <= end; l++ {
			out = append(out, sliceColumns(b.lines[l], s.Start.Column, s.End.Column))
		}
		return out

	default:
		cs := b.clampCharSpan(s)
		if cs.Start.Line == cs.End.Line {
			line := b.lines[cs.Start.Line]
			return []string{line[cs.Start.Column:cs.End.Column]}
		}
		out := make([]string, 0, cs.End.Line-cs.Start.Line+1)
		out = append(out, b.lines[cs.Start.Line][cs.Start.Column:])
		for l := cs.Start.Line + 1; l < cs.End.Line; l++ {
			out = append(out, b.lines[l])
		}
		out = append(out, b.lines[cs.End.Line][:cs.End.Column])
		return out
	}
}

func (b *Buffer) clampLineRange(start, end uint32) (uint32, uint32) {
	last := uint32(len(b.lines) - 1)
	if start > last {
		start = last
	}
	if end > last {
		end = last
	}
	if end < start {
		end = start
	}
	return start, end
}

func (b *Buffer) clampCharSpan(s Span) Span {
	s.Start = b.clampPositionLocked(s.Start)
	s.End = b.clampPositionLocked(s.End)
	if s.Start.After(s.End) {
		s.End = s.Start
	}
	s.Kind = SpanCharacter
	return s
}

func sliceColumns(line string, start, end uint32) string {
	if int(start) > len(line) {
		start = uint32(len(line))
	}
	if int(end) > len(line) {
		end = uint32(len(line))
	}
	if end < start {
		end = start
	}
	return line[start:end]
}
