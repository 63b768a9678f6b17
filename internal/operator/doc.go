// Package operator provides named text transforms applied across
// marked occurrences, with register and distribute semantics.
//
// An operator is a pure function from an occurrence's current text to
// replacement text. Operators live in a Registry validated at
// registration time; built-ins cover change, delete, yank, put,
// distribute, indent, outdent, format, upper, lower and swapcase.
//
// The Applier resolves the marks intersecting a scope, computes every
// replacement against pre-edit text, and applies the edits
// back-to-front so earlier spans keep their coordinates. Interactive
// operators gather input through a Prompter during a prepare step that
// runs before any mutation; cancellation there, or a Cancel decision
// from any registered Hook, aborts the whole application and leaves
// buffer and mark state untouched.
package operator
