package operator

import "errors"

// Errors returned by the operator layer.
var (
	// ErrCancelled reports that the user aborted an interactive
	// operator. Callers treat it as a silent no-op; no buffer or mark
	// state changed.
	ErrCancelled = errors.New("operator cancelled")
	// ErrUnknownOperator is returned when applying an unregistered name.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrInvalidOperator is returned at registration time for a
	// nameless or functionless operator.
	ErrInvalidOperator = errors.New("invalid operator")
	// ErrOperatorExists is returned when registering a duplicate name.
	ErrOperatorExists = errors.New("operator already registered")
)

// Fn transforms the current text of one occurrence. It returns the
// replacement lines and true, or false to skip the occurrence. Fns must
// be pure with respect to buffer state; all reads happen before any
// edit is applied.
type Fn func(ctx *Context, current []string) ([]string, bool)

// PrepareFn runs once before any occurrence is touched. It is the
// suspend point for interactive operators: returning ErrCancelled
// aborts the whole application with no buffer mutation.
type PrepareFn func(ctx *Context, prompt Prompter) error

// Op is a named text transform applied per marked occurrence.
type Op struct {
	Name    string
	Fn      Fn
	Prepare PrepareFn // optional
}

// Context carries per-application state into operator functions.
// One Context serves a whole application; Index advances per
// occurrence.
type Context struct {
	// Index is the 0-based position of the current occurrence within
	// this application, in document order.
	Index int
	// Total is the number of occurrences being processed.
	Total int
	// Source is the register content available to put/distribute.
	Source []string
	// Input holds text gathered by a PrepareFn.
	Input string
	// IndentWidth is the indent/outdent unit in spaces. Zero means a
	// single tab.
	IndentWidth int

	yanked []string
}

// Yank records the occurrence's text for the register. The applier
// writes collected text to the register after a successful run.
func (c *Context) Yank(lines []string) {
	c.yanked = append(c.yanked, lines...)
}

// Prompter solicits interactive input for operators such as change.
// Implementations return ErrCancelled when the user aborts.
type Prompter interface {
	Prompt(message string) (string, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(message string) (string, error)

// Prompt implements Prompter.
func (f PrompterFunc) Prompt(message string) (string, error) {
	return f(message)
}

// StaticPrompter always answers with a fixed string.
type StaticPrompter string

// Prompt implements Prompter.
func (p StaticPrompter) Prompt(string) (string, error) {
	return string(p), nil
}

// CancelPrompter always reports cancellation.
type CancelPrompter struct{}

// Prompt implements Prompter.
func (CancelPrompter) Prompt(string) (string, error) {
	return "", ErrCancelled
}
