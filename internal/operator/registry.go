package operator

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps operator names to their implementations. Registration
// validates the operator up front so application never dispatches to a
// malformed entry.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Op
}

// NewRegistry creates an empty operator registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Op)}
}

// DefaultRegistry creates a registry with all built-in operators.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerBuiltins(r)
	return r
}

// Register adds an operator. The name must be non-empty, the function
// non-nil, and the name unused.
func (r *Registry) Register(op Op) error {
	if op.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidOperator)
	}
	if op.Fn == nil {
		return fmt.Errorf("%w: %q has no function", ErrInvalidOperator, op.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ops[op.Name]; exists {
		return fmt.Errorf("%w: %q", ErrOperatorExists, op.Name)
	}
	r.ops[op.Name] = op
	return nil
}

// RegisterFn adds a plain transform under the given name.
func (r *Registry) RegisterFn(name string, fn Fn) error {
	return r.Register(Op{Name: name, Fn: fn})
}

// Get returns the operator registered under name.
func (r *Registry) Get(name string) (Op, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	return op, ok
}

// Has reports whether an operator is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ops[name]
	return ok
}

// Names returns all registered operator names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
