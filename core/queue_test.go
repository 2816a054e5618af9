package routing

import (
	"testing"

	"github.com/nebulavoice/translate-core/core/events"
)

func TestQueueIsFIFO(t *testing.T) {
	queue := newInboundQueue(4, nil)

	queue.Push(events.NewManualPressed())
	queue.Push(events.NewAudioFrame([]byte{1}))
	queue.Push(events.NewManualReleased())

	wantKinds := []events.Kind{events.KindManualPressed, events.KindAudioFrame, events.KindManualReleased}
	for _, want := range wantKinds {
		item, ok := queue.Pop()
		if !ok {
			t.Fatalf("queue drained early, expected %q", want)
		}
		if item.event.Kind() != want {
			t.Fatalf("expected %q, got %q", want, item.event.Kind())
		}
	}
	if _, ok := queue.Pop(); ok {
		t.Fatalf("expected empty queue")
	}
}

func TestQueueEvictsOldestFrameUnderSaturation(t *testing.T) {
	evictions := 0
	queue := newInboundQueue(2, func() { evictions++ })

	queue.Push(events.NewAudioFrame([]byte{1}))
	queue.Push(events.NewAudioFrame([]byte{2}))
	if !queue.Push(events.NewAudioFrame([]byte{3})) {
		t.Fatalf("push must succeed by evicting the oldest frame")
	}

	if evictions != 1 {
		t.Fatalf("expected 1 eviction, got %d", evictions)
	}

	item, _ := queue.Pop()
	frame, ok := item.event.(events.AudioFrame)
	if !ok || frame.Audio[0] != 2 {
		t.Fatalf("expected oldest frame evicted, head is %+v", item.event)
	}
}

func TestQueueNeverDropsControlEvents(t *testing.T) {
	queue := newInboundQueue(2, nil)

	queue.Push(events.NewManualPressed())
	queue.Push(events.NewManualReleased())
	// Saturated with control events: the queue must grow past capacity
	// rather than reject or evict a control event.
	if !queue.Push(events.NewVoiceStarted()) {
		t.Fatalf("control event must be accepted at capacity")
	}
	if queue.Len() != 3 {
		t.Fatalf("expected queue to grow past capacity for control events, len %d", queue.Len())
	}
}

func TestQueueRejectsFrameWhenNoFrameIsEvictable(t *testing.T) {
	evictions := 0
	queue := newInboundQueue(2, func() { evictions++ })

	queue.Push(events.NewManualPressed())
	queue.Push(events.NewManualReleased())

	if queue.Push(events.NewAudioFrame([]byte{1})) {
		t.Fatalf("frame must be rejected when saturation holds only control events")
	}
	if evictions != 1 {
		t.Fatalf("rejected frame must be counted, got %d", evictions)
	}
	if queue.Len() != 2 {
		t.Fatalf("rejection must not change the queue, len %d", queue.Len())
	}
}

func TestQueueControlEventEvictsFrameFirst(t *testing.T) {
	queue := newInboundQueue(2, nil)

	queue.Push(events.NewAudioFrame([]byte{1}))
	queue.Push(events.NewAudioFrame([]byte{2}))
	queue.Push(events.NewManualPressed())

	if queue.Len() != 2 {
		t.Fatalf("expected control push to evict a frame, len %d", queue.Len())
	}
}

func TestQueueWakesWorkerOnPush(t *testing.T) {
	queue := newInboundQueue(4, nil)

	select {
	case <-queue.wake():
		t.Fatalf("no wake expected before push")
	default:
	}

	queue.Push(events.NewManualPressed())

	select {
	case <-queue.wake():
	default:
		t.Fatalf("expected wake signal after push")
	}
}
