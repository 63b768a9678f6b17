package operator

import (
	"fmt"

	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/marks"
	"github.com/dshills/occur/internal/log"
)

// Result summarizes a committed application.
type Result struct {
	// Applied is the number of occurrences edited.
	Applied int
	// Cursor is the first edited location (lowest position), the
	// landing spot for repeat invocation.
	Cursor buffer.Position
	// Moved reports whether Cursor is meaningful.
	Moved bool
	// Yanked is the text collected into the register, if any.
	Yanked []string
}

// ApplierOption configures an Applier.
type ApplierOption func(*Applier)

// WithPrompter sets the interactive prompter.
func WithPrompter(p Prompter) ApplierOption {
	return func(a *Applier) {
		a.prompter = p
	}
}

// WithHooks appends application hooks.
func WithHooks(hooks ...Hook) ApplierOption {
	return func(a *Applier) {
		a.hooks = append(a.hooks, hooks...)
	}
}

// WithRegister selects the register read and written by operators.
func WithRegister(name string) ApplierOption {
	return func(a *Applier) {
		a.register = name
	}
}

// WithIndentWidth sets the indent unit in spaces. Zero selects tabs.
func WithIndentWidth(width int) ApplierOption {
	return func(a *Applier) {
		a.indentWidth = width
	}
}

// WithLogger sets the applier's logger.
func WithLogger(l *log.Logger) ApplierOption {
	return func(a *Applier) {
		a.log = l
	}
}

// Applier applies a named operator across the marks intersecting a
// scope. Replacements are computed against pre-edit text, then applied
// back-to-front so earlier spans stay valid; the mark store further
// self-corrects through the buffer's edit-observer path.
type Applier struct {
	buf       *buffer.Buffer
	marks     *marks.Store
	ops       *Registry
	registers *Registers

	prompter    Prompter
	hooks       []Hook
	register    string
	indentWidth int
	log         *log.Logger
}

// NewApplier creates an applier over the buffer and mark store.
func NewApplier(buf *buffer.Buffer, store *marks.Store, ops *Registry, registers *Registers, opts ...ApplierOption) *Applier {
	a := &Applier{
		buf:         buf,
		marks:       store,
		ops:         ops,
		registers:   registers,
		register:    DefaultRegister,
		indentWidth: 4,
		log:         log.Null,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type pendingEdit struct {
	span buffer.Span
	repl []string
}

// Apply runs the named operator over every mark intersecting scope, in
// document order. A cancellation from the operator's prepare step or a
// hook returns ErrCancelled with buffer and marks untouched.
func (a *Applier) Apply(name string, scope buffer.Span) (Result, error) {
	op, ok := a.ops.Get(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
	}

	selected := a.marks.Intersecting(scope)
	if len(selected) == 0 {
		return Result{}, nil
	}

	ctx := &Context{
		Total:       len(selected),
		Source:      a.registers.Get(a.register),
		IndentWidth: a.indentWidth,
	}

	// Suspend point: interactive preparation resolves before any
	// mutation is committed.
	if op.Prepare != nil {
		if err := op.Prepare(ctx, a.prompter); err != nil {
			return Result{}, err
		}
	}
	for _, h := range a.hooks {
		if h.Before(name, scope) == Cancel {
			a.log.Debug("apply %q cancelled by hook %q", name, h.Name())
			return Result{}, ErrCancelled
		}
	}

	// Compute every replacement from pre-edit text.
	edits := make([]pendingEdit, 0, len(selected))
	for i, mk := range selected {
		ctx.Index = i
		current := a.buf.SpanText(mk.Match.Span)
		repl, apply := op.Fn(ctx, current)
		if !apply {
			continue
		}
		edits = append(edits, pendingEdit{span: mk.Match.Span, repl: repl})
	}

	// Apply back-to-front so not-yet-applied spans keep their
	// coordinates.
	for i := len(edits) - 1; i >= 0; i-- {
		if _, err := a.buf.ReplaceSpan(edits[i].span, edits[i].repl); err != nil {
			return Result{}, fmt.Errorf("apply %q: %w", name, err)
		}
	}

	if len(ctx.yanked) > 0 {
		a.registers.Set(a.register, ctx.yanked)
	}

	result := Result{Applied: len(edits), Yanked: ctx.yanked}
	if len(edits) > 0 {
		result.Cursor = edits[0].span.Start
		result.Moved = true
	}
	a.log.Debug("applied %q to %d of %d occurrences", name, len(edits), len(selected))

	for _, h := range a.hooks {
		h.After(name, result)
	}
	return result, nil
}
