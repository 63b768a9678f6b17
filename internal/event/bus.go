package event

import (
	"sync"
	"time"
)

// Event is a published notification. Events are immutable once created.
type Event struct {
	// Topic is the hierarchical event type (e.g. "occurrence.created").
	Topic Topic

	// Payload contains the event-specific data.
	Payload any

	// Time is when the event was published.
	Time time.Time
}

// Handler processes a delivered event.
type Handler func(evt Event)

// PanicHandler is invoked when a subscriber panics during delivery.
type PanicHandler func(evt Event, recovered any)

// Subscription identifies a registered handler.
type Subscription uint64

type subscriber struct {
	id      Subscription
	pattern Topic
	handler Handler
}

// Bus is a synchronous in-process event bus. Handlers run on the
// publisher's goroutine, in subscription order. Delivery is panic-safe.
type Bus struct {
	mu      sync.RWMutex
	subs    []subscriber
	nextID  Subscription
	onPanic PanicHandler
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler sets the handler invoked when a subscriber panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *Bus) {
		b.onPanic = h
	}
}

// NewBus creates a new event bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for all topics matching the pattern.
// The pattern may contain wildcards (* and **).
func (b *Bus) Subscribe(pattern Topic, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs = append(b.subs, subscriber{
		id:      b.nextID,
		pattern: pattern,
		handler: h,
	})
	return b.nextID
}

// Unsubscribe removes a previously registered handler.
// Unknown subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the payload to every subscriber whose pattern
// matches the topic. Delivery is synchronous.
func (b *Bus) Publish(topic Topic, payload any) {
	evt := Event{
		Topic:   topic,
		Payload: payload,
		Time:    time.Now(),
	}

	b.mu.RLock()
	matched := make([]subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		if Match(s.pattern, topic) {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range matched {
		b.deliver(s, evt)
	}
}

// SubscriberCount returns the number of registered subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) deliver(s subscriber, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			if b.onPanic != nil {
				b.onPanic(evt, r)
			}
		}
	}()
	s.handler(evt)
}
