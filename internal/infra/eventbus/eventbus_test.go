package eventbus

import (
	"testing"
	"time"
)

func TestBus_PublishAndSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe("tool.invoked")

	bus.Publish("tool.invoked", "current_time")

	select {
	case evt := <-ch:
		if evt.Topic != "tool.invoked" {
			t.Errorf("expected topic 'tool.invoked', got %q", evt.Topic)
		}
		if evt.Payload != "current_time" {
			t.Errorf("expected payload 'current_time', got %v", evt.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout: expected event to be received within 100ms")
	}
}

func TestBus_NoSubscribers_PublishIsNoop(t *testing.T) {
	bus := New()

	// Must not block or panic with nobody listening.
	bus.Publish("tool.invoked", 1)
}

func TestBus_MultipleSubscribers_AllReceive(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe("tool.invoked")
	ch2 := bus.Subscribe("tool.invoked")

	bus.Publish("tool.invoked", 42)

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case evt := <-ch:
			if evt.Payload != 42 {
				t.Errorf("subscriber %d: expected payload 42, got %v", i, evt.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("subscriber %d: timeout waiting for event", i)
		}
	}
}

func TestBus_DifferentTopics_NoInterference(t *testing.T) {
	bus := New()
	chA := bus.Subscribe("topic.a")
	chB := bus.Subscribe("topic.b")

	bus.Publish("topic.a", "for-a")

	select {
	case evt := <-chA:
		if evt.Payload != "for-a" {
			t.Errorf("topic.a: unexpected payload %v", evt.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("topic.a: timeout waiting for event")
	}

	// topic.b should have received nothing
	select {
	case evt := <-chB:
		t.Errorf("topic.b: received unexpected event: %v", evt)
	default:
		// correct — no event
	}
}

func TestBus_NonBlockingPublish_FullBuffer(t *testing.T) {
	bus := New()
	// Subscribe but never consume — buffer will fill up
	_ = bus.Subscribe("overflow.topic")

	// Publish more events than the buffer size — must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i <= defaultBufferSize+10; i++ {
			bus.Publish("overflow.topic", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}
}
