// Package buffer provides a mutable, line-oriented text buffer with
// position and span types shared across the occurrence engine.
//
// The buffer package provides:
//
//   - Line/column Position values with lexicographic ordering
//   - Character, line, and block Span kinds over positions
//   - Whole-line and span-scoped mutation with clamping of
//     out-of-bounds coordinates
//   - EditResult values describing every mutation as an old-span to
//     new-span replacement
//   - Edit observers, notified synchronously after each mutation, which
//     the mark layer uses to keep tracked positions correct
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString(1, "foo bar\nbaz foo")
//
//	// Replace a character span
//	span := buffer.NewSpan(buffer.Pos(0, 0), buffer.Pos(0, 3))
//	buf.ReplaceSpan(span, []string{"qux"})
//
//	// Insert whole lines
//	buf.InsertLines(1, []string{"inserted"})
//
// Every mutation produces an EditResult whose OldSpan/NewSpan pair is
// sufficient to re-derive any tracked position, so observers never need
// back-references into the text itself.
package buffer
