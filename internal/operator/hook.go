package operator

import "github.com/dshills/occur/internal/engine/buffer"

// Decision is the resolution of a pre-apply hook: the pending
// application either commits or cancels. A Cancel from any hook aborts
// before the first buffer mutation.
type Decision uint8

const (
	// Commit lets the application proceed.
	Commit Decision = iota
	// Cancel aborts the application with no buffer mutation.
	Cancel
)

// Hook observes and can veto operator applications.
type Hook interface {
	// Name returns a unique identifier for this hook.
	Name() string

	// Before runs after operator preparation and before any buffer
	// mutation. Returning Cancel aborts the application.
	Before(op string, scope buffer.Span) Decision

	// After runs once the application has committed.
	After(op string, result Result)
}

// BeforeFunc wraps a function as a before-only Hook.
type BeforeFunc struct {
	name string
	fn   func(op string, scope buffer.Span) Decision
}

// NewBeforeFunc creates a Hook from a before function.
func NewBeforeFunc(name string, fn func(op string, scope buffer.Span) Decision) *BeforeFunc {
	return &BeforeFunc{name: name, fn: fn}
}

// Name implements Hook.
func (h *BeforeFunc) Name() string { return h.name }

// Before implements Hook.
func (h *BeforeFunc) Before(op string, scope buffer.Span) Decision {
	if h.fn == nil {
		return Commit
	}
	return h.fn(op, scope)
}

// After implements Hook.
func (h *BeforeFunc) After(string, Result) {}
