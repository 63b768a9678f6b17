package occurrence

import (
	"sync"

	"github.com/dshills/occur/internal/config"
	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/navigate"
	"github.com/dshills/occur/internal/event"
	"github.com/dshills/occur/internal/log"
	"github.com/dshills/occur/internal/operator"
)

// Registry is the process-wide map from buffer ID to its occurrence.
// Exactly one occurrence exists per buffer at a time; occurrences are
// created lazily on Attach and removed on disposal.
type Registry struct {
	mu  sync.RWMutex
	occ map[buffer.ID]*Occurrence

	bus      *event.Bus
	cfg      config.Config
	log      *log.Logger
	ops      *operator.Registry
	prompter operator.Prompter
	hooks    []operator.Hook
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithBus sets the notification bus.
func WithBus(bus *event.Bus) RegistryOption {
	return func(r *Registry) {
		r.bus = bus
	}
}

// WithConfig sets the engine configuration.
func WithConfig(cfg config.Config) RegistryOption {
	return func(r *Registry) {
		r.cfg = cfg
	}
}

// WithLogger sets the registry's logger.
func WithLogger(l *log.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = l
	}
}

// WithOperators sets the operator registry shared by all occurrences.
func WithOperators(ops *operator.Registry) RegistryOption {
	return func(r *Registry) {
		r.ops = ops
	}
}

// WithPrompter sets the interactive prompter for operators.
func WithPrompter(p operator.Prompter) RegistryOption {
	return func(r *Registry) {
		r.prompter = p
	}
}

// WithHooks appends operator application hooks.
func WithHooks(hooks ...operator.Hook) RegistryOption {
	return func(r *Registry) {
		r.hooks = append(r.hooks, hooks...)
	}
}

// NewRegistry creates a registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		occ: make(map[buffer.ID]*Occurrence),
		bus: event.NewBus(),
		cfg: config.Default(),
		log: log.Null,
		ops: operator.DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bus returns the notification bus.
func (r *Registry) Bus() *event.Bus {
	return r.bus
}

// Operators returns the shared operator registry.
func (r *Registry) Operators() *operator.Registry {
	return r.ops
}

// Get returns the occurrence for the buffer, if one exists. It never
// creates.
func (r *Registry) Get(id buffer.ID) (*Occurrence, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.occ[id]
	return o, ok
}

// Attach returns the buffer's occurrence, materializing it on first
// use and firing the created notification.
func (r *Registry) Attach(buf *buffer.Buffer) *Occurrence {
	r.mu.Lock()
	if o, ok := r.occ[buf.ID()]; ok {
		r.mu.Unlock()
		return o
	}
	o := newOccurrence(buf, r)
	r.occ[buf.ID()] = o
	r.mu.Unlock()

	r.log.Debug("occurrence created for buffer %d", buf.ID())
	r.bus.Publish(TopicCreated, Notification{Buffer: buf.ID()})
	return o
}

// Del forces disposal of the buffer's occurrence. Unknown buffers are
// a no-op.
func (r *Registry) Del(id buffer.ID) {
	if o, ok := r.Get(id); ok {
		o.Dispose()
	}
}

// BufferDeleted handles a buffer-deletion notification from the host:
// the occurrence is disposed and the disposal notification fires.
func (r *Registry) BufferDeleted(id buffer.ID) {
	r.Del(id)
}

// Len returns the number of live occurrences.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.occ)
}

// remove drops the disposed occurrence from the cache. Called from
// Occurrence.Dispose.
func (r *Registry) remove(id buffer.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.occ, id)
}

// StatusOptions selects the buffer and match set for Status.
type StatusOptions struct {
	Buffer buffer.ID
	// Marked restricts the count to marked matches.
	Marked bool
}

// Status describes the cursor's place among the buffer's matches.
type Status struct {
	// Current is the 1-based index of the nearest match at or after
	// the cursor.
	Current int
	// Total is the number of matches (or marks when MarkedOnly).
	Total int
	// ExactMatch reports whether the cursor sits inside a match.
	ExactMatch bool
	// MarkedOnly reports whether the count covers marks only.
	MarkedOnly bool
}

// Status reports the cursor's position among the buffer's matches.
// It returns false when no occurrence exists for the buffer, the
// occurrence is disposed, or there are no matches — an expected steady
// state, not an error.
func (r *Registry) Status(opts StatusOptions) (Status, bool) {
	o, ok := r.Get(opts.Buffer)
	if !ok {
		return Status{}, false
	}
	return o.status(opts.Marked)
}

// status computes the Status against the occurrence's cached cursor.
func (o *Occurrence) status(marked bool) (Status, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return Status{}, false
	}

	ms := o.matchesLocked()
	if marked {
		ms = o.marks.Matches()
	}
	if len(ms) == 0 {
		return Status{}, false
	}

	idx, exact, ok := navigate.New(ms).Nearest(o.cursor)
	if !ok {
		return Status{}, false
	}
	return Status{
		Current:    idx,
		Total:      len(ms),
		ExactMatch: exact,
		MarkedOnly: marked,
	}, true
}
