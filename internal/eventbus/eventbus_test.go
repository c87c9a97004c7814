package eventbus

import (
	"fmt"
	"testing"
)

func TestPublishAndSubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe()
	defer unsub()

	b.Publish(Event{Name: ConnectionStateChanged, Payload: "a"})
	b.Publish(Event{Name: ConnectionStateChanged, Payload: "b"})

	if got := <-ch; got.Payload != "a" {
		t.Fatalf("expected a, got %v", got.Payload)
	}
	if got := <-ch; got.Payload != "b" {
		t.Fatalf("expected b, got %v", got.Payload)
	}
}

func TestCatchupOnSubscribe(t *testing.T) {
	b := New()
	b.Publish(Event{Name: GameflowPhaseChange, Payload: "Lobby"})
	b.Publish(Event{Name: GameflowPhaseChange, Payload: "ChampSelect"})

	ch, unsub := b.Subscribe()
	defer unsub()

	want := []string{"Lobby", "ChampSelect"}
	for _, w := range want {
		got := <-ch
		if got.Payload != w {
			t.Fatalf("expected %q, got %v", w, got.Payload)
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe()
	unsub()

	b.Publish(Event{Name: LobbyChange, Payload: nil})

	// Unsubscribe closes the channel, so a receive that reports !ok is the
	// expected outcome; only an actual event counts as a delivery.
	select {
	case ev, ok := <-ch:
		if ok {
			t.Fatalf("expected no delivery after unsubscribe, got %v", ev)
		}
	default:
	}
}

func TestMultipleSubscribersReceiveSameEvent(t *testing.T) {
	b := New()
	ch1, unsub1 := b.Subscribe()
	ch2, unsub2 := b.Subscribe()
	defer unsub1()
	defer unsub2()

	b.Publish(Event{Name: MatchmakingStateChanged, Payload: 42})

	if got := <-ch1; got.Payload != 42 {
		t.Fatalf("subscriber 1: expected 42, got %v", got.Payload)
	}
	if got := <-ch2; got.Payload != 42 {
		t.Fatalf("subscriber 2: expected 42, got %v", got.Payload)
	}
}

func TestBufferEviction(t *testing.T) {
	b := New()
	for i := 0; i < defaultBufferCap+10; i++ {
		b.Publish(Event{Name: GameflowPhaseChange, Payload: fmt.Sprintf("p-%d", i)})
	}

	if len(b.buf) != defaultBufferCap {
		t.Fatalf("expected buffer capped at %d, got %d", defaultBufferCap, len(b.buf))
	}
	want := fmt.Sprintf("p-%d", defaultBufferCap+10-1)
	if b.buf[len(b.buf)-1].Payload != want {
		t.Fatalf("expected last buffered event %q, got %v", want, b.buf[len(b.buf)-1].Payload)
	}
}
