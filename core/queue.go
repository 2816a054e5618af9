package routing

import (
	"sync"
	"time"

	"github.com/nebulavoice/translate-core/core/events"
)

// defaultQueueCapacity bounds the inbound queue; at 20ms frames this is a
// bit over a second of buffered audio.
const defaultQueueCapacity = 64

type queueItem struct {
	event    events.Event
	queuedAt time.Time
}

// inboundQueue is the controller's FIFO of control events and frames.
//
// A plain channel cannot express the backpressure policy (evict the oldest
// frame first, never drop a control event), so this is a mutex-guarded
// deque with a wake-up channel for the single worker. Control events are
// always accepted; when no frame can be evicted to make room, the queue
// grows past its capacity by the number of in-flight control events.
type inboundQueue struct {
	mu       sync.Mutex
	items    []queueItem
	capacity int

	notify chan struct{}

	// onFrameEvicted is called once per frame removed or rejected under
	// saturation.
	onFrameEvicted func()
}

func newInboundQueue(capacity int, onFrameEvicted func()) *inboundQueue {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	if onFrameEvicted == nil {
		onFrameEvicted = func() {}
	}

	return &inboundQueue{
		capacity:       capacity,
		notify:         make(chan struct{}, 1),
		onFrameEvicted: onFrameEvicted,
	}
}

// Push enqueues the event without blocking. It reports false only when a
// frame had to be rejected because the queue was saturated and held no
// evictable frame.
func (q *inboundQueue) Push(event events.Event) bool {
	q.mu.Lock()

	if len(q.items) >= q.capacity {
		if !q.evictOldestFrameLocked() && !events.IsControl(event) {
			q.mu.Unlock()
			q.onFrameEvicted()
			return false
		}
	}

	q.items = append(q.items, queueItem{event: event, queuedAt: time.Now()})
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return true
}

// Pop removes the oldest queued item.
func (q *inboundQueue) Pop() (queueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return queueItem{}, false
	}

	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

func (q *inboundQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// wake exposes the worker wake-up channel.
func (q *inboundQueue) wake() <-chan struct{} {
	return q.notify
}

func (q *inboundQueue) evictOldestFrameLocked() bool {
	for i, item := range q.items {
		if _, ok := item.event.(events.AudioFrame); !ok {
			continue
		}

		q.items = append(q.items[:i], q.items[i+1:]...)
		q.onFrameEvicted()
		return true
	}
	return false
}
