package bus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe(NamespaceConversations, 10)
	defer unsub()

	b.Publish(Event{Kind: KindConversationsChanged, Timestamp: time.Now(), Payload: "test"})

	select {
	case evt := <-ch:
		if evt.Kind != KindConversationsChanged {
			t.Errorf("got kind %q, want conversations.changed", evt.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestNamespaceFiltering(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("focus.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindConversationsChanged})
	b.Publish(Event{Kind: "focus.settled"})

	select {
	case evt := <-ch:
		if evt.Kind != "focus.settled" {
			t.Errorf("got kind %q, want focus.settled", evt.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	// The conversations event must not be delivered.
	select {
	case evt := <-ch:
		t.Errorf("unexpected event: %v", evt)
	case <-time.After(50 * time.Millisecond):
		// Expected: no more events.
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe(NamespaceConversations, 10)
	unsub()

	b.Publish(Event{Kind: KindConversationsChanged})

	select {
	case evt := <-ch:
		t.Errorf("received event after unsubscribe: %v", evt)
	case <-time.After(50 * time.Millisecond):
		// Expected.
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("test.", 1)
	defer unsub()

	// Fill buffer.
	b.Publish(Event{Kind: "test.one"})
	// This should be dropped (non-blocking).
	b.Publish(Event{Kind: "test.two"})

	evt := <-ch
	if evt.Kind != "test.one" {
		t.Errorf("got %q, want test.one", evt.Kind)
	}
	if got := b.Dropped(); got != 1 {
		t.Errorf("Dropped() = %d, want 1", got)
	}
	unsub()
	unsub()
}

func TestEmitStampsTimeAndPayload(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe(NamespaceConversations, 1)
	defer unsub()

	before := time.Now()
	b.Emit(KindConversationsChanged, ConversationsChanged{Op: OpPin, IDs: []string{"c1"}})

	evt := <-ch
	if evt.Timestamp.Before(before) {
		t.Errorf("timestamp %v is before publish time %v", evt.Timestamp, before)
	}
	payload, ok := evt.Payload.(ConversationsChanged)
	if !ok || payload.Op != OpPin || len(payload.IDs) != 1 || payload.IDs[0] != "c1" {
		t.Errorf("payload = %#v, want pin of c1", evt.Payload)
	}
}
