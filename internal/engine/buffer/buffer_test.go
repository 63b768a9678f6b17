package buffer

import (
	"strings"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(1)

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}

	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}

	if b.ID() != 1 {
		t.Errorf("expected ID 1, got %d", b.ID())
	}
}

func TestNewBufferFromString(t *testing.T) {
	b := NewBufferFromString(1, "line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}

	if b.Line(0) != "line1" {
		t.Errorf("expected line1, got %q", b.Line(0))
	}

	if b.Line(2) != "line3" {
		t.Errorf("expected line3, got %q", b.Line(2))
	}

	if b.Text() != "line1\nline2\nline3" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestNewBufferFromLinesCopies(t *testing.T) {
	lines := []string{"a", "b"}
	b := NewBufferFromLines(1, lines)

	lines[0] = "mutated"
	if b.Line(0) != "a" {
		t.Errorf("buffer shares caller's slice: %q", b.Line(0))
	}
}

func TestNewBufferFromLinesEmpty(t *testing.T) {
	b := NewBufferFromLines(1, nil)

	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if !b.IsEmpty() {
		t.Error("expected empty buffer")
	}
}

func TestLineOutOfRange(t *testing.T) {
	b := NewBufferFromString(1, "only")

	if got := b.Line(5); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestEndPosition(t *testing.T) {
	b := NewBufferFromString(1, "abc\nde")

	end := b.EndPosition()
	if end.Line != 1 || end.Column != 2 {
		t.Errorf("expected 1:2, got %s", end)
	}
}

func TestClampPosition(t *testing.T) {
	b := NewBufferFromString(1, "abc\nde")

	tests := []struct {
		name string
		in   Position
		want Position
	}{
		{"valid", Pos(0, 2), Pos(0, 2)},
		{"column past end", Pos(0, 10), Pos(0, 3)},
		{"line past end", Pos(9, 0), Pos(1, 2)},
		{"line end is valid", Pos(1, 2), Pos(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.ClampPosition(tt.in)
			if got != tt.want {
				t.Errorf("ClampPosition(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampSpanInverted(t *testing.T) {
	b := NewBufferFromString(1, "abcdef")

	s := b.ClampSpan(NewSpan(Pos(0, 20), Pos(0, 4)))
	if !s.IsEmpty() {
		t.Errorf("expected collapsed span, got %s", s)
	}
}

func TestSpanTextCharacter(t *testing.T) {
	b := NewBufferFromString(1, "hello world\nsecond line")

	got := b.SpanText(NewSpan(Pos(0, 6), Pos(0, 11)))
	if len(got) != 1 || got[0] != "world" {
		t.Errorf("expected [world], got %q", got)
	}
}

func TestSpanTextMultiline(t *testing.T) {
	b := NewBufferFromString(1, "alpha\nbeta\ngamma")

	got := b.SpanText(NewSpan(Pos(0, 3), Pos(2, 2)))
	want := []string{"ha", "beta", "ga"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSpanTextLine(t *testing.T) {
	b := NewBufferFromString(1, "alpha\nbeta\ngamma")

	got := b.SpanText(LineSpan(1, 2))
	if len(got) != 2 || got[0] != "beta" || got[1] != "gamma" {
		t.Errorf("expected [beta gamma], got %q", got)
	}
}

func TestSpanTextBlock(t *testing.T) {
	b := NewBufferFromString(1, "aaaa\nbb\ncccc")

	s := Span{Start: Pos(0, 1), End: Pos(2, 3), Kind: SpanBlock}
	got := b.SpanText(s)
	want := []string{"aa", "b", "cc"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDestroy(t *testing.T) {
	b := NewBufferFromString(1, "text")

	if b.Destroyed() {
		t.Error("fresh buffer should not be destroyed")
	}
	b.Destroy()
	if !b.Destroyed() {
		t.Error("expected destroyed")
	}
	if b.Text() != "text" {
		t.Error("destroyed buffer should keep its text for reads")
	}
}
