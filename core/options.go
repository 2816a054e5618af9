package routing

import (
	"time"

	"github.com/nebulavoice/translate-core/core/events"
	"github.com/nebulavoice/translate-core/core/telemetry"
)

type ControllerOption func(*Controller)

type controllerCallbacks struct {
	onEvent         func(events.Event)
	onTurnOpened    func(events.TurnOpened)
	onTurnClosed    func(events.TurnClosed)
	onTurnPreempted func(events.TurnPreempted)
	onDecision      func(RoutingDecision)
}

// WithDispatcher sets the downstream output dispatcher.
func WithDispatcher(client Dispatcher) ControllerOption {
	return func(c *Controller) {
		c.dispatcher.set(client)
	}
}

// WithQueueCapacity bounds the inbound queue. Values below one keep the
// default.
func WithQueueCapacity(capacity int) ControllerOption {
	return func(c *Controller) {
		if capacity > 0 {
			c.queueCapacity = capacity
		}
	}
}

// WithClock overrides the time source, used by tests for deterministic turn
// timestamps.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMetrics overrides the instrument set; defaults to [telemetry.Default].
func WithMetrics(metrics *telemetry.Metrics) ControllerOption {
	return func(c *Controller) {
		c.metrics = metrics
	}
}

// WithEventCallback receives every turn_state event the controller emits.
func WithEventCallback(callback func(events.Event)) ControllerOption {
	return func(c *Controller) {
		c.callbacks.onEvent = callback
	}
}

func WithTurnOpenedCallback(callback func(events.TurnOpened)) ControllerOption {
	return func(c *Controller) {
		c.callbacks.onTurnOpened = callback
	}
}

func WithTurnClosedCallback(callback func(events.TurnClosed)) ControllerOption {
	return func(c *Controller) {
		c.callbacks.onTurnClosed = callback
	}
}

func WithTurnPreemptedCallback(callback func(events.TurnPreempted)) ControllerOption {
	return func(c *Controller) {
		c.callbacks.onTurnPreempted = callback
	}
}

// WithDecisionCallback receives every routing decision, including drops.
// Intended for tests and debugging surfaces.
func WithDecisionCallback(callback func(RoutingDecision)) ControllerOption {
	return func(c *Controller) {
		c.callbacks.onDecision = callback
	}
}
