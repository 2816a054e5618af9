// Package telemetry provides the observability wiring for the routing core:
// OpenTelemetry metric instruments and SDK provider setup with a Prometheus
// reader so instruments can be scraped via a standard /metrics endpoint.
//
// A package-level default [Metrics] instance ([Default]) is provided for
// convenience; tests should use [NewMetrics] with their own
// [metric.MeterProvider] to avoid cross-test pollution.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope used for all routing-core metrics.
const meterName = "github.com/nebulavoice/translate-core"

// Metrics holds the metric instruments of the routing core. All fields are
// safe for concurrent use; the underlying OTel types handle their own
// synchronization. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// FramesRouted counts routed frames. Attributes:
	//   attribute.String("action", ...), attribute.String("speaker", ...)
	FramesRouted metric.Int64Counter

	// FramesDropped counts frames that never reached a downstream stage.
	// Attributes: attribute.String("reason", "orphan"|"queue_full")
	FramesDropped metric.Int64Counter

	// QueueEvictions counts metering frames evicted under backpressure.
	QueueEvictions metric.Int64Counter

	// StaleEvents counts control events ignored as stale or out of order.
	StaleEvents metric.Int64Counter

	// TurnsOpened counts opened turns. Attribute: attribute.String("kind", ...)
	TurnsOpened metric.Int64Counter

	// TurnsPreempted counts auto turns force-closed by a manual press.
	TurnsPreempted metric.Int64Counter

	// TurnDuration tracks turn length in seconds. Attribute: "kind".
	TurnDuration metric.Float64Histogram

	// ActiveSessions tracks the number of live controllers.
	ActiveSessions metric.Int64UpDownCounter
}

// NewMetrics creates the instrument set on the given provider. Pass nil to
// use the global provider.
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)

	m := &Metrics{}
	var err error

	if m.FramesRouted, err = meter.Int64Counter("routing.frames_routed",
		metric.WithDescription("Audio frames routed, by action and speaker")); err != nil {
		return nil, err
	}
	if m.FramesDropped, err = meter.Int64Counter("routing.frames_dropped",
		metric.WithDescription("Audio frames dropped before any downstream stage")); err != nil {
		return nil, err
	}
	if m.QueueEvictions, err = meter.Int64Counter("routing.queue_evictions",
		metric.WithDescription("Metering frames evicted from a saturated inbound queue")); err != nil {
		return nil, err
	}
	if m.StaleEvents, err = meter.Int64Counter("routing.stale_events",
		metric.WithDescription("Control events ignored as stale or out of order")); err != nil {
		return nil, err
	}
	if m.TurnsOpened, err = meter.Int64Counter("routing.turns_opened",
		metric.WithDescription("Turns opened, by kind")); err != nil {
		return nil, err
	}
	if m.TurnsPreempted, err = meter.Int64Counter("routing.turns_preempted",
		metric.WithDescription("Auto turns force-closed by a manual press")); err != nil {
		return nil, err
	}
	if m.TurnDuration, err = meter.Float64Histogram("routing.turn_duration",
		metric.WithDescription("Turn duration in seconds, by kind"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.ActiveSessions, err = meter.Int64UpDownCounter("routing.active_sessions",
		metric.WithDescription("Live session controllers")); err != nil {
		return nil, err
	}

	return m, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// Default returns the process-wide instrument set on the global provider.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		// Instrument creation on the API-level global meter cannot fail.
		defaultMetrics, _ = NewMetrics(nil)
	})
	return defaultMetrics
}

func (m *Metrics) RecordFrameRouted(ctx context.Context, action, speaker string) {
	if m == nil || m.FramesRouted == nil {
		return
	}
	m.FramesRouted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("speaker", speaker),
	))
}

func (m *Metrics) RecordFrameDropped(ctx context.Context, reason string) {
	if m == nil || m.FramesDropped == nil {
		return
	}
	m.FramesDropped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *Metrics) RecordQueueEviction(ctx context.Context) {
	if m == nil || m.QueueEvictions == nil {
		return
	}
	m.QueueEvictions.Add(ctx, 1)
}

func (m *Metrics) RecordStaleEvent(ctx context.Context) {
	if m == nil || m.StaleEvents == nil {
		return
	}
	m.StaleEvents.Add(ctx, 1)
}

func (m *Metrics) RecordTurnOpened(ctx context.Context, kind string) {
	if m == nil || m.TurnsOpened == nil {
		return
	}
	m.TurnsOpened.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) RecordTurnPreempted(ctx context.Context) {
	if m == nil || m.TurnsPreempted == nil {
		return
	}
	m.TurnsPreempted.Add(ctx, 1)
}

func (m *Metrics) RecordTurnClosed(ctx context.Context, kind string, seconds float64) {
	if m == nil || m.TurnDuration == nil {
		return
	}
	m.TurnDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) SessionOpened(ctx context.Context) {
	if m == nil || m.ActiveSessions == nil {
		return
	}
	m.ActiveSessions.Add(ctx, 1)
}

func (m *Metrics) SessionClosed(ctx context.Context) {
	if m == nil || m.ActiveSessions == nil {
		return
	}
	m.ActiveSessions.Add(ctx, -1)
}
