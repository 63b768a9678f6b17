package event

import "testing"

func TestPublishDelivers(t *testing.T) {
	b := NewBus()

	var got []Event
	b.Subscribe("occurrence.created", func(evt Event) {
		got = append(got, evt)
	})

	b.Publish("occurrence.created", 42)

	if len(got) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(got))
	}
	if got[0].Topic != "occurrence.created" || got[0].Payload != 42 {
		t.Errorf("unexpected event %+v", got[0])
	}
	if got[0].Time.IsZero() {
		t.Error("expected event time set")
	}
}

func TestPublishFiltersTopic(t *testing.T) {
	b := NewBus()

	count := 0
	b.Subscribe("occurrence.created", func(Event) { count++ })

	b.Publish("occurrence.disposed", nil)
	if count != 0 {
		t.Errorf("expected no delivery for other topic, got %d", count)
	}
}

func TestWildcardSubscription(t *testing.T) {
	b := NewBus()

	count := 0
	b.Subscribe("occurrence.*", func(Event) { count++ })

	b.Publish("occurrence.created", nil)
	b.Publish("occurrence.disposed", nil)
	b.Publish("buffer.edited", nil)

	if count != 2 {
		t.Errorf("expected 2 deliveries, got %d", count)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()

	count := 0
	sub := b.Subscribe("topic", func(Event) { count++ })

	b.Publish("topic", nil)
	b.Unsubscribe(sub)
	b.Publish("topic", nil)

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", b.SubscriberCount())
	}

	// Unknown subscriptions are ignored.
	b.Unsubscribe(sub)
}

func TestSubscriptionOrder(t *testing.T) {
	b := NewBus()

	var order []int
	b.Subscribe("topic", func(Event) { order = append(order, 1) })
	b.Subscribe("topic", func(Event) { order = append(order, 2) })

	b.Publish("topic", nil)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected delivery in subscription order, got %v", order)
	}
}

func TestPanicIsolation(t *testing.T) {
	var recovered any
	b := NewBus(WithPanicHandler(func(_ Event, r any) {
		recovered = r
	}))

	delivered := false
	b.Subscribe("topic", func(Event) { panic("boom") })
	b.Subscribe("topic", func(Event) { delivered = true })

	b.Publish("topic", nil)

	if recovered != "boom" {
		t.Errorf("expected panic handler invoked with boom, got %v", recovered)
	}
	if !delivered {
		t.Error("panic in one subscriber should not block the next")
	}
}
