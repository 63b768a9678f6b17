package buffer

import "fmt"

// EditResult describes an applied edit in terms of the character span
// that was replaced and the character span that replaced it. Observers
// use the two spans to re-derive any positions they track.
type EditResult struct {
	OldSpan  Span     // The character span that was replaced
	NewSpan  Span     // The character span of the replacement text
	OldText  []string // The replaced text, one element per line
	NewText  []string // The replacement text, one element per line
	Revision uint64   // Buffer revision after the edit
}

// String returns a human-readable representation of the edit.
func (r EditResult) String() string {
	if r.OldSpan.IsEmpty() {
		return fmt.Sprintf("Insert(%s, %q)", r.OldSpan.Start, r.NewText)
	}
	if len(r.NewText) == 1 && r.NewText[0] == "" {
		return fmt.Sprintf("Delete[%s:%s)", r.OldSpan.Start, r.OldSpan.End)
	}
	return fmt.Sprintf("Replace[%s:%s) with %q", r.OldSpan.Start, r.OldSpan.End, r.NewText)
}

// IsInsert returns true if this edit inserted text into an empty span.
func (r EditResult) IsInsert() bool {
	return r.OldSpan.IsEmpty() && !r.NewSpan.IsEmpty()
}

// IsDelete returns true if this edit removed text without replacement.
func (r EditResult) IsDelete() bool {
	return !r.OldSpan.IsEmpty() && r.NewSpan.IsEmpty()
}

// ReplaceSpan replaces the text selected by the span with the given
// lines and returns the resulting edit. Replacement lines are joined by
// newlines; nil or empty repl deletes the span's text. Out-of-bounds
// spans are clamped. Line spans replace whole lines including their
// terminators; block spans apply one sub-edit per covered line, bottom
// to top, and return the result of the topmost sub-edit.
func (b *Buffer) ReplaceSpan(s Span, repl []string) (EditResult, error) {
	if s.Kind != SpanBlock && s.Start.After(s.End) {
		return EditResult{}, fmt.Errorf("%w: start %s after end %s", ErrSpanInvalid, s.Start, s.End)
	}

	switch s.Kind {
	case SpanLine:
		return b.replaceLines(s.Start.Line, s.End.Line, repl), nil
	case SpanBlock:
		return b.replaceBlock(s, repl)
	default:
		b.mu.Lock()
		result := b.replaceCharLocked(b.clampCharSpan(s), repl)
		observers := b.snapshotObserversLocked()
		b.mu.Unlock()
		b.notify(observers, result)
		return result, nil
	}
}

// InsertLines inserts whole lines before the given line number.
// A line number past the end appends to the buffer.
func (b *Buffer) InsertLines(at uint32, lines []string) (EditResult, error) {
	if len(lines) == 0 {
		return EditResult{}, nil
	}

	b.mu.Lock()
	if int(at) > len(b.lines) {
		at = uint32(len(b.lines))
	}

	var result EditResult
	if int(at) == len(b.lines) {
		// Appending below the last line: extend with full lines.
		span := Span{
			Start: Position{Line: at - 1, Column: uint32(len(b.lines[at-1]))},
			End:   Position{Line: at - 1, Column: uint32(len(b.lines[at-1]))},
		}
		repl := append([]string{""}, lines...)
		result = b.replaceCharLocked(span, repl)
	} else {
		span := Span{Start: Position{Line: at}, End: Position{Line: at}}
		repl := make([]string, 0, len(lines)+1)
		repl = append(repl, lines...)
		repl = append(repl, "")
		result = b.replaceCharLocked(span, repl)
	}
	observers := b.snapshotObserversLocked()
	b.mu.Unlock()

	b.notify(observers, result)
	return result, nil
}

// DeleteLines removes whole lines in the half-open range [start, end).
func (b *Buffer) DeleteLines(start, end uint32) (EditResult, error) {
	if end <= start {
		return EditResult{}, nil
	}

	b.mu.Lock()
	lineCount := uint32(len(b.lines))
	if start >= lineCount {
		b.mu.Unlock()
		return EditResult{}, nil
	}
	if end > lineCount {
		end = lineCount
	}

	var span Span
	if end == lineCount {
		if start == 0 {
			// Removing every line leaves one empty line.
			span = Span{
				Start: Position{},
				End:   Position{Line: lineCount - 1, Column: uint32(len(b.lines[lineCount-1]))},
			}
		} else {
			// Deleting through the last line consumes the preceding newline.
			span = Span{
				Start: Position{Line: start - 1, Column: uint32(len(b.lines[start-1]))},
				End:   Position{Line: lineCount - 1, Column: uint32(len(b.lines[lineCount-1]))},
			}
		}
	} else {
		span = Span{Start: Position{Line: start}, End: Position{Line: end}}
	}
	result := b.replaceCharLocked(span, nil)
	observers := b.snapshotObserversLocked()
	b.mu.Unlock()

	b.notify(observers, result)
	return result, nil
}

// replaceLines replaces whole lines [startLine, endLine] with repl lines.
func (b *Buffer) replaceLines(startLine, endLine uint32, repl []string) EditResult {
	b.mu.Lock()
	startLine, endLine = b.clampLineRange(startLine, endLine)
	span := Span{
		Start: Position{Line: startLine},
		End:   Position{Line: endLine, Column: uint32(len(b.lines[endLine]))},
	}
	if len(repl) == 0 {
		repl = []string{""}
	}
	result := b.replaceCharLocked(span, repl)
	observers := b.snapshotObserversLocked()
	b.mu.Unlock()

	b.notify(observers, result)
	return result
}

// replaceBlock applies a block-kind replacement line by line, bottom to
// top so earlier line coordinates stay stable. Replacement lines are
// consumed top to bottom, cycling when fewer lines than the block spans.
func (b *Buffer) replaceBlock(s Span, repl []string) (EditResult, error) {
	b.mu.Lock()
	startLine, endLine := b.clampLineRange(s.Start.Line, s.End.Line)
	b.mu.Unlock()

	var top EditResult
	for l := int64(endLine); l >= int64(startLine); l-- {
		line := uint32(l)
		var text string
		if len(repl) > 0 {
			text = repl[int(line-startLine)%len(repl)]
		}
		sub := Span{
			Start: Position{Line: line, Column: s.Start.Column},
			End:   Position{Line: line, Column: s.End.Column},
		}
		res, err := b.ReplaceSpan(sub, []string{text})
		if err != nil {
			return EditResult{}, err
		}
		top = res
	}
	return top, nil
}

// replaceCharLocked performs the primitive character-span replacement.
// The span must already be clamped and valid. Caller holds the lock.
func (b *Buffer) replaceCharLocked(span Span, repl []string) EditResult {
	oldText := b.spanTextLocked(span)

	if len(repl) == 0 {
		repl = []string{""}
	}
	newText := make([]string, len(repl))
	copy(newText, repl)

	prefix := b.lines[span.Start.Line][:span.Start.Column]
	suffix := b.lines[span.End.Line][span.End.Column:]

	composed := make([]string, len(newText))
	copy(composed, newText)
	composed[0] = prefix + composed[0]

	var newEnd Position
	if len(newText) == 1 {
		newEnd = Position{
			Line:   span.Start.Line,
			Column: span.Start.Column + uint32(len(newText[0])),
		}
	} else {
		newEnd = Position{
			Line:   span.Start.Line + uint32(len(newText)-1),
			Column: uint32(len(newText[len(newText)-1])),
		}
	}
	composed[len(composed)-1] += suffix

	// Splice the composed lines over [Start.Line, End.Line].
	updated := make([]string, 0, len(b.lines)-int(span.End.Line-span.Start.Line+1)+len(composed))
	updated = append(updated, b.lines[:span.Start.Line]...)
	updated = append(updated, composed...)
	updated = append(updated, b.lines[span.End.Line+1:]...)
	b.lines = updated

	b.revision++
	return EditResult{
		OldSpan:  span,
		NewSpan:  Span{Start: span.Start, End: newEnd},
		OldText:  oldText,
		NewText:  newText,
		Revision: b.revision,
	}
}

func (b *Buffer) snapshotObserversLocked() []EditObserver {
	out := make([]EditObserver, len(b.observers))
	copy(out, b.observers)
	return out
}

func (b *Buffer) notify(observers []EditObserver, result EditResult) {
	for _, o := range observers {
		o.OnEdit(result)
	}
}
