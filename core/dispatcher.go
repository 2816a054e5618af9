package routing

import (
	"context"
	"fmt"

	"github.com/nebulavoice/translate-core/core/events"
)

// Dispatcher is the boundary to downstream transcription/translation/
// synthesis/metering collaborators.
//
// Both methods are invoked synchronously from the controller's event-loop
// worker and must not block it; a slow downstream call has to be handed off
// asynchronously by the implementation.
type Dispatcher interface {
	// Deliver hands over one routed frame together with its decision.
	// Dropped frames are never delivered.
	Deliver(decision RoutingDecision, frame events.AudioFrame)

	// Flush signals that no further frames for the turn will arrive,
	// allowing the implementation to flush buffered partial artifacts.
	Flush(turnID int64)
}

// outputDispatcher is the nil-safe facade used to handle optional dispatcher
// wiring.
type outputDispatcher struct {
	client Dispatcher
}

func (d *outputDispatcher) set(client Dispatcher) {
	if d != nil {
		d.client = client
	}
}

func (d *outputDispatcher) isConfigured() bool {
	return d != nil && d.client != nil
}

func (d *outputDispatcher) Deliver(decision RoutingDecision, frame events.AudioFrame) {
	if !d.isConfigured() {
		return
	}
	d.client.Deliver(decision, frame)
}

func (d *outputDispatcher) Flush(turnID int64) {
	if !d.isConfigured() {
		return
	}
	d.client.Flush(turnID)
}

// Preempt tells implementations that support it that the turn was closed by
// a manual override, so buffered partial artifacts must be discarded rather
// than flushed.
func (d *outputDispatcher) Preempt(turnID int64) {
	if !d.isConfigured() {
		return
	}

	if preempter, ok := d.client.(interface{ Preempt(turnID int64) }); ok {
		preempter.Preempt(turnID)
	}
}

func (d *outputDispatcher) Close(ctx context.Context) error {
	if !d.isConfigured() {
		return nil
	}

	switch c := d.client.(type) {
	case interface{ Close(context.Context) error }:
		if err := c.Close(ctx); err != nil {
			return fmt.Errorf("failed to close dispatcher: %w", err)
		}
	case interface{ Close(context.Context) }:
		c.Close(ctx)
	case interface{ Close() error }:
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close dispatcher: %w", err)
		}
	case interface{ Close() }:
		c.Close()
	}

	return nil
}
