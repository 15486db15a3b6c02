package events

import (
	"testing"
	"time"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	chA, cancelA := hub.Subscribe()
	chB, cancelB := hub.Subscribe()
	defer cancelA()
	defer cancelB()

	hub.Publish(Event{Name: EntityChangedEvent, Payload: EntityChangedPayload{Change: ChangeCreated, EntityID: "e1"}})

	for _, ch := range []<-chan Event{chA, chB} {
		select {
		case evt := <-ch:
			if evt.Name != EntityChangedEvent {
				t.Fatalf("unexpected event name %q", evt.Name)
			}
			if evt.Timestamp.IsZero() {
				t.Fatalf("expected timestamp to be stamped")
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber did not receive event")
		}
	}
}

func TestCancelClosesChannelAndIsIdempotent(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	if hub.SubscriberCount() != 1 {
		t.Fatalf("expected one subscriber")
	}

	cancel()
	cancel()

	if _, open := <-ch; open {
		t.Fatalf("expected closed channel after cancel")
	}
	if hub.SubscriberCount() != 0 {
		t.Fatalf("expected no subscribers after cancel")
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < defaultBuffer+10; i++ {
			hub.Publish(Event{Name: EntityChangedEvent})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publisher blocked on slow subscriber")
	}

	if got := len(ch); got != defaultBuffer {
		t.Fatalf("expected buffer to hold %d events, got %d", defaultBuffer, got)
	}
}
