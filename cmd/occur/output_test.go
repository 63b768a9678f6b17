package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/match"
	"github.com/dshills/occur/internal/engine/pattern"
)

func TestMatchesJSON(t *testing.T) {
	results := []fileMatches{
		{
			path:  "a.txt",
			lines: []string{"foo bar foo"},
			matches: []match.Match{
				{Span: buffer.NewSpan(buffer.Pos(0, 0), buffer.Pos(0, 3))},
				{Span: buffer.NewSpan(buffer.Pos(0, 8), buffer.Pos(0, 11))},
			},
		},
		{
			path:  "b.txt",
			lines: []string{"", "foo"},
			matches: []match.Match{
				{Span: buffer.NewSpan(buffer.Pos(1, 0), buffer.Pos(1, 3))},
			},
		},
	}

	out, err := matchesJSON(results)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if n := gjson.Get(out, "#").Int(); n != 3 {
		t.Fatalf("expected 3 entries, got %d in %s", n, out)
	}
	if got := gjson.Get(out, "0.file").String(); got != "a.txt" {
		t.Errorf("expected a.txt, got %q", got)
	}
	if got := gjson.Get(out, "1.col").Int(); got != 9 {
		t.Errorf("expected 1-based column 9, got %d", got)
	}
	if got := gjson.Get(out, "2.line").Int(); got != 2 {
		t.Errorf("expected 1-based line 2, got %d", got)
	}
	if got := gjson.Get(out, "2.text").String(); got != "foo" {
		t.Errorf("expected matched text foo, got %q", got)
	}
}

func TestMatchesJSONEmpty(t *testing.T) {
	out, err := matchesJSON(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if out != "[]" {
		t.Errorf("expected empty array, got %s", out)
	}
}

func TestStatusJSON(t *testing.T) {
	out, err := statusJSON([]statusEntry{
		{path: "a.txt", total: 2},
		{path: "b.txt", total: 0},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if got := gjson.Get(out, "0.total").Int(); got != 2 {
		t.Errorf("expected total 2, got %d", got)
	}
	if got := gjson.Get(out, "1.file").String(); got != "b.txt" {
		t.Errorf("expected b.txt, got %q", got)
	}
}

func TestPatternKind(t *testing.T) {
	if patternKind(true, false) != pattern.KindWord {
		t.Error("expected word kind")
	}
	if patternKind(false, true) != pattern.KindRegex {
		t.Error("expected regex kind")
	}
	if patternKind(false, false) != pattern.KindLiteral {
		t.Error("expected literal kind")
	}
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines, err := readLines(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	// The trailing newline does not create a phantom empty line.
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("expected [one two], got %q", lines)
	}
}

func TestReadLinesMissing(t *testing.T) {
	if _, err := readLines(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing file")
	}
}
