package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/sjson"
)

// maxLineWidth bounds the display width of an echoed line.
const maxLineWidth = 120

var matchColor = color.New(color.FgYellow, color.Bold)

// printMatches writes one location line per match:
// path:line:col: text with the match highlighted.
func printMatches(fm fileMatches) {
	for _, m := range fm.matches {
		line := fm.lines[m.Span.Start.Line]
		s, e := int(m.Span.Start.Column), int(m.Span.End.Column)

		// Long lines print truncated and uncolored so the ellipsis
		// never lands inside a color escape.
		var text string
		if runewidth.StringWidth(line) > maxLineWidth {
			text = runewidth.Truncate(line, maxLineWidth, "…")
		} else {
			text = line[:s] + matchColor.Sprint(line[s:e]) + line[e:]
		}
		fmt.Printf("%s:%d:%d: %s\n",
			fm.path, m.Span.Start.Line+1, m.Span.Start.Column+1, text)
	}
}

// matchesJSON encodes all files' matches as a JSON array.
func matchesJSON(results []fileMatches) (string, error) {
	out := "[]"
	for _, fm := range results {
		for _, m := range fm.matches {
			line := fm.lines[m.Span.Start.Line]
			entry := map[string]any{
				"file": fm.path,
				"line": m.Span.Start.Line + 1,
				"col":  m.Span.Start.Column + 1,
				"text": line[m.Span.Start.Column:m.Span.End.Column],
			}
			var err error
			out, err = sjson.Set(out, "-1", entry)
			if err != nil {
				return "", fmt.Errorf("encode match: %w", err)
			}
		}
	}
	return out, nil
}

// statusJSON encodes per-file status counts as a JSON array.
func statusJSON(entries []statusEntry) (string, error) {
	out := "[]"
	for _, e := range entries {
		item := map[string]any{
			"file":  e.path,
			"total": e.total,
		}
		var err error
		out, err = sjson.Set(out, "-1", item)
		if err != nil {
			return "", fmt.Errorf("encode status: %w", err)
		}
	}
	return out, nil
}
