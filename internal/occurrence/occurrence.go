package occurrence

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dshills/occur/internal/config"
	"github.com/dshills/occur/internal/engine/buffer"
	"github.com/dshills/occur/internal/engine/marks"
	"github.com/dshills/occur/internal/engine/match"
	"github.com/dshills/occur/internal/engine/navigate"
	"github.com/dshills/occur/internal/engine/pattern"
	"github.com/dshills/occur/internal/event"
	"github.com/dshills/occur/internal/log"
	"github.com/dshills/occur/internal/operator"
)

// ErrDisposed is returned by every operation on a disposed occurrence.
var ErrDisposed = errors.New("occurrence disposed")

// State is the occurrence lifecycle state.
type State uint8

const (
	// StateEmpty means no patterns have been added yet.
	StateEmpty State = iota
	// StateHasMatches means at least one pattern matches the buffer.
	StateHasMatches
	// StateActive means navigation or marking has engaged.
	StateActive
	// StateDisposed is terminal; all further calls fail.
	StateDisposed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateHasMatches:
		return "has-matches"
	case StateActive:
		return "active"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Lifecycle notification topics.
const (
	TopicCreated   event.Topic = "occurrence.created"
	TopicUpdated   event.Topic = "occurrence.updated"
	TopicActivated event.Topic = "occurrence.activated"
	TopicDisposed  event.Topic = "occurrence.disposed"
)

// Notification is the payload of every lifecycle event.
type Notification struct {
	Buffer buffer.ID
}

// Occurrence is the per-buffer facade over pattern compilation,
// matching, marking, navigation and operator application. External
// callers touch only this type and its Registry.
type Occurrence struct {
	mu  sync.Mutex
	buf *buffer.Buffer

	patterns  *pattern.Set
	marks     *marks.Store
	registers *operator.Registers
	applier   *operator.Applier

	bus *event.Bus
	log *log.Logger
	cfg config.Config

	state  State
	cursor buffer.Position

	// generation invalidates the match cache; it bumps on pattern adds
	// and on every buffer edit.
	generation atomic.Uint64
	cacheGen   uint64
	cached     []match.Match

	onDispose func(buffer.ID)
}

func newOccurrence(buf *buffer.Buffer, r *Registry) *Occurrence {
	o := &Occurrence{
		buf:       buf,
		patterns:  pattern.NewSet(),
		marks:     marks.NewStore(),
		registers: operator.NewRegisters(),
		bus:       r.bus,
		log:       r.log.WithField("buffer", buf.ID()),
		cfg:       r.cfg,
	}
	o.applier = operator.NewApplier(buf, o.marks, r.ops, o.registers,
		operator.WithPrompter(r.prompter),
		operator.WithHooks(r.hooks...),
		operator.WithRegister(o.cfg.Operator.Register),
		operator.WithIndentWidth(o.cfg.Operator.IndentWidth),
		operator.WithLogger(o.log),
	)
	o.onDispose = r.remove
	buf.AddObserver(o)
	return o
}

// OnEdit implements buffer.EditObserver: marks self-correct and the
// match cache is invalidated.
func (o *Occurrence) OnEdit(result buffer.EditResult) {
	o.marks.OnEdit(result)
	o.generation.Add(1)
}

// Buffer returns the occurrence's buffer.
func (o *Occurrence) Buffer() *buffer.Buffer {
	return o.buf
}

// State returns the current lifecycle state.
func (o *Occurrence) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refreshStateLocked()
	return o.state
}

// Cursor returns the cached cursor position.
func (o *Occurrence) Cursor() buffer.Position {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cursor
}

// SetCursor updates the cached cursor position, clamped to the buffer.
func (o *Occurrence) SetCursor(p buffer.Position) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cursor = o.buf.ClampPosition(p)
}

// Registers exposes the occurrence's register store.
func (o *Occurrence) Registers() *operator.Registers {
	return o.registers
}

// AddPattern compiles and adds a pattern. The first matching pattern
// moves the occurrence out of the empty state.
func (o *Occurrence) AddPattern(raw string, kind pattern.Kind) (pattern.ID, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return 0, ErrDisposed
	}
	id, err := o.patterns.Add(raw, kind)
	if err != nil {
		return 0, err
	}
	o.generation.Add(1)
	o.refreshStateLocked()
	o.log.Debug("pattern %d added (%s)", id, kind)
	o.publish(TopicUpdated)
	return id, nil
}

// PatternCount returns the number of accumulated patterns.
func (o *Occurrence) PatternCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.patterns.Len()
}

// Matches returns the current non-overlapping matches in document
// order. The result is cached per generation; edits and pattern adds
// invalidate it.
func (o *Occurrence) Matches() ([]match.Match, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return nil, ErrDisposed
	}
	ms := o.matchesLocked()
	out := make([]match.Match, len(ms))
	copy(out, ms)
	return out, nil
}

// HasMatches reports whether any pattern currently matches. It stops
// at the first hit.
func (o *Occurrence) HasMatches() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return false
	}
	return o.hasMatchesLocked()
}

// FindIn returns the matches fully contained in the span.
func (o *Occurrence) FindIn(span buffer.Span) ([]match.Match, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return nil, ErrDisposed
	}
	it := match.FindAll(o.buf, o.predicateLocked(), &span)
	return match.Collect(it), nil
}

// Mark anchors a mark to the match. Marking the same span twice
// returns the existing mark ID.
func (o *Occurrence) Mark(m match.Match) (marks.ID, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return 0, ErrDisposed
	}
	id := o.marks.Mark(m)
	o.activateLocked()
	o.publish(TopicUpdated)
	return id, nil
}

// MarkAll marks every current match and returns the count.
func (o *Occurrence) MarkAll() (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return 0, ErrDisposed
	}
	ms := o.matchesLocked()
	for _, m := range ms {
		o.marks.Mark(m)
	}
	if len(ms) > 0 {
		o.activateLocked()
		o.publish(TopicUpdated)
	}
	return len(ms), nil
}

// Unmark removes a mark by ID. Absent IDs are a no-op.
func (o *Occurrence) Unmark(id marks.ID) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return ErrDisposed
	}
	o.marks.Unmark(id)
	o.publish(TopicUpdated)
	return nil
}

// UnmarkAt removes the mark anchored at exactly the span. Absent spans
// are a no-op.
func (o *Occurrence) UnmarkAt(span buffer.Span) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return ErrDisposed
	}
	o.marks.UnmarkAt(span)
	o.publish(TopicUpdated)
	return nil
}

// Marks exposes the occurrence's mark store.
func (o *Occurrence) Marks() *marks.Store {
	return o.marks
}

// NextMatch finds the nearest match relative to the cursor per the
// options, updates the cached cursor on success, and engages the
// active state.
func (o *Occurrence) NextMatch(cursor buffer.Position, opts navigate.Options) (match.Match, bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return match.Match{}, false, ErrDisposed
	}

	var entries []match.Match
	if opts.MarkedOnly {
		entries = o.marks.Matches()
	} else {
		entries = o.matchesLocked()
	}

	m, ok := navigate.New(entries).Next(cursor, opts)
	if !ok {
		return match.Match{}, false, nil
	}
	o.cursor = m.Span.Start
	o.activateLocked()
	return m, true, nil
}

// Apply runs the named operator over the marks intersecting scope.
// Cancellation returns operator.ErrCancelled with all state untouched.
// A destroyed buffer auto-disposes the occurrence.
func (o *Occurrence) Apply(name string, scope buffer.Span) (operator.Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateDisposed {
		return operator.Result{}, ErrDisposed
	}
	if o.buf.Destroyed() {
		o.log.Warn("buffer destroyed, disposing occurrence")
		o.disposeLocked()
		return operator.Result{}, ErrDisposed
	}

	result, err := o.applier.Apply(name, scope)
	if err != nil {
		return operator.Result{}, err
	}
	if result.Moved {
		o.cursor = result.Cursor
	}
	if result.Applied > 0 {
		o.activateLocked()
		o.publish(TopicUpdated)
	}
	return result, nil
}

// Dispose tears the occurrence down: marks are released, the buffer
// observer is removed, and the disposal notification fires. Dispose is
// idempotent; the second call is a no-op.
func (o *Occurrence) Dispose() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.disposeLocked()
}

func (o *Occurrence) disposeLocked() {
	if o.state == StateDisposed {
		return
	}
	o.state = StateDisposed
	o.marks.Clear()
	o.cached = nil
	o.buf.RemoveObserver(o)
	o.log.Debug("disposed")
	o.publish(TopicDisposed)
	if o.onDispose != nil {
		o.onDispose(o.buf.ID())
	}
}

// refreshStateLocked re-derives the empty/has-matches split. Edits can
// introduce the first match after the patterns were added, and OnEdit
// cannot take the mutex (it fires while Apply holds it), so the state
// is re-derived on the next query instead.
func (o *Occurrence) refreshStateLocked() {
	if o.state != StateEmpty || o.patterns.Len() == 0 {
		return
	}
	if o.hasMatchesLocked() {
		o.state = StateHasMatches
	}
}

// activateLocked transitions to the active state once navigation or
// marking engages.
func (o *Occurrence) activateLocked() {
	if o.state == StateActive || o.state == StateDisposed {
		return
	}
	o.state = StateActive
	o.publish(TopicActivated)
}

func (o *Occurrence) predicateLocked() *pattern.Predicate {
	return o.patterns.Predicate(o.cfg.TieBreak())
}

func (o *Occurrence) hasMatchesLocked() bool {
	return match.HasMatch(o.buf, o.predicateLocked(), nil)
}

func (o *Occurrence) matchesLocked() []match.Match {
	gen := o.generation.Load()
	if o.cached != nil && o.cacheGen == gen {
		return o.cached
	}
	it := match.FindAll(o.buf, o.predicateLocked(), nil)
	o.cached = match.Collect(it)
	o.cacheGen = gen
	return o.cached
}

func (o *Occurrence) publish(topic event.Topic) {
	if o.bus == nil {
		return
	}
	o.bus.Publish(topic, Notification{Buffer: o.buf.ID()})
}
