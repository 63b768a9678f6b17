// Package event provides a synchronous topic-based notification bus.
//
// The occurrence engine publishes lifecycle notifications (created,
// updated, activated, disposed) through a Bus so that host layers can
// observe state changes without a direct dependency on the engine.
//
// Topics use dot-notation hierarchical names. Subscription patterns may
// use "*" to match a single segment and "**" to match any suffix:
//
//	bus := event.NewBus()
//	bus.Subscribe("occurrence.*", func(evt event.Event) {
//	    // every occurrence lifecycle event
//	})
//	bus.Publish("occurrence.created", payload)
//
// Delivery is synchronous and panic-safe: a panicking subscriber never
// takes down the publisher, and the remaining subscribers still run.
package event
