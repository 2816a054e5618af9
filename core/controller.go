package routing

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nebulavoice/translate-core/core/events"
	"github.com/nebulavoice/translate-core/core/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Controller is the per-session turn-taking actor. Control events and audio
// frames may be submitted concurrently from the transport layer; all turn
// mutations and routing decisions happen on one worker goroutine so that
// "turn changed" and "frame routed using that turn" stay ordered.
type Controller struct {
	sessionID string

	machine    *turnStateMachine
	tracker    *turnTracker
	dispatcher outputDispatcher
	emitEvent  eventEmitter
	callbacks  controllerCallbacks
	metrics    *telemetry.Metrics

	queue         *inboundQueue
	queueCapacity int

	now         func() time.Time
	baseContext context.Context

	closeCh chan struct{}
	done    chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
	started   atomic.Bool

	// stateMu guards machine and tracker reads from outside the worker.
	stateMu sync.RWMutex

	// pendingEffects buffers the dispatcher calls and turn_state event
	// emissions raised by machine hooks while stateMu is held, so neither a
	// user callback nor a dispatcher write ever runs under the lock. Only
	// the worker touches it.
	pendingEffects []func()
}

// NewController creates a controller for one session. An empty session id is
// replaced with a generated one.
func NewController(sessionID string, opts ...ControllerOption) *Controller {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	c := &Controller{
		sessionID:     sessionID,
		tracker:       newTurnTracker(),
		metrics:       telemetry.Default(),
		queueCapacity: defaultQueueCapacity,
		now:           time.Now,
		baseContext:   context.Background(),
		emitEvent:     noopEventEmitter,
		closeCh:       make(chan struct{}),
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.emitEvent = newCallbackEventEmitter(c.callbacks)
	c.machine = newTurnStateMachine(c.now, machineHooks{
		onTurnOpened:    c.handleTurnOpened,
		onTurnClosed:    c.handleTurnClosed,
		onTurnPreempted: c.handleTurnPreempted,
	})
	c.queue = newInboundQueue(c.queueCapacity, func() {
		c.metrics.RecordQueueEviction(c.baseContext)
	})

	return c
}

func (c *Controller) SessionID() string { return c.sessionID }

// Start launches the worker loop. Call at most once; the controller closes
// itself when ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		if c.isClosed() {
			return
		}

		c.baseContext = ctx
		c.started.Store(true)

		go func() {
			<-ctx.Done()
			c.Close()
		}()

		go func() {
			defer close(c.done)

			for {
				select {
				case <-c.closeCh:
					c.drainAndTearDown()
					return
				case <-c.queue.wake():
					for {
						item, ok := c.queue.Pop()
						if !ok {
							break
						}
						c.process(item)
					}
				}
			}
		}()
	})
}

// Submit enqueues one control event or frame without blocking. It reports
// false when the controller is closed or a frame was rejected under
// backpressure; control events are never dropped while the session is open.
func (c *Controller) Submit(event events.Event) bool {
	if c.isClosed() {
		return false
	}

	return c.queue.Push(event)
}

// PressTalk submits a push-to-talk press.
func (c *Controller) PressTalk() bool { return c.Submit(events.NewManualPressed()) }

// ReleaseTalk submits a push-to-talk release.
func (c *Controller) ReleaseTalk() bool { return c.Submit(events.NewManualReleased()) }

// VoiceStarted submits a voice-activity start signal.
func (c *Controller) VoiceStarted() bool { return c.Submit(events.NewVoiceStarted()) }

// VoiceStopped submits a voice-activity stop signal.
func (c *Controller) VoiceStopped() bool { return c.Submit(events.NewVoiceStopped()) }

// SendAudio submits one audio frame.
func (c *Controller) SendAudio(audio []byte) bool {
	return c.Submit(events.NewAudioFrame(audio))
}

// State returns the machine state at this instant.
func (c *Controller) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.machine.State()
}

// CurrentTurn returns a snapshot of the open turn, or nil between turns.
func (c *Controller) CurrentTurn() *Turn {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	turn := c.machine.CurrentTurn()
	if turn == nil {
		return nil
	}
	snapshot := *turn
	return &snapshot
}

// OpenTurnStats returns diagnostic stats for open turns.
func (c *Controller) OpenTurnStats() []TurnStats { return c.tracker.Snapshot() }

// OrphanFrames returns the number of frames dropped with no active turn.
func (c *Controller) OrphanFrames() int64 { return c.tracker.OrphanFrames() }

// UnattributedMeteringFrames returns the number of metering-only frames
// processed while auto-listening, before any turn opened.
func (c *Controller) UnattributedMeteringFrames() int64 {
	return c.tracker.UnattributedMeteringFrames()
}

// Close drains the queue, forces the current turn closed (flushing through
// the tracker and dispatcher) and stops the worker. Safe to call multiple
// times.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)

		if c.started.Load() {
			<-c.done
			return
		}

		// Never started: tear down inline.
		c.drainAndTearDown()
	})
}

func (c *Controller) isClosed() bool {
	select {
	case <-c.closeCh:
		return true
	default:
		return false
	}
}

func (c *Controller) process(item queueItem) {
	switch event := item.event.(type) {
	case events.AudioFrame:
		c.processFrame(event)
	default:
		if !events.IsControl(item.event) {
			logger.Debug("dropping unknown event", "kind", string(item.event.Kind()))
			return
		}
		c.processControlEvent(item.event)
	}
}

func (c *Controller) processControlEvent(event events.Event) {
	ctx, span := tracer.Start(c.baseContext, "apply control event")
	defer span.End()
	span.SetAttributes(
		attribute.String("event.kind", string(event.Kind())),
		attribute.String("session.id", c.sessionID),
	)

	c.stateMu.Lock()
	before := c.machine.State()
	c.machine.Apply(event)
	after := c.machine.State()
	c.stateMu.Unlock()

	c.runPendingEffects()

	if before == after {
		c.metrics.RecordStaleEvent(ctx)
	}
	span.SetAttributes(
		attribute.String("state.before", string(before)),
		attribute.String("state.after", string(after)),
	)
}

func (c *Controller) processFrame(frame events.AudioFrame) {
	c.stateMu.Lock()
	decision := routeFrame(c.machine.State(), c.machine.CurrentTurn())
	if decision.Attributed() {
		c.machine.CurrentTurn().FrameCount++
	}
	c.stateMu.Unlock()

	c.tracker.onFrameRouted(decision)
	c.metrics.RecordFrameRouted(c.baseContext, string(decision.Action), string(decision.Speaker))
	if decision.Action == ActionDrop {
		c.metrics.RecordFrameDropped(c.baseContext, "orphan")
	}

	if c.callbacks.onDecision != nil {
		c.callbacks.onDecision(decision)
	}

	if decision.Action != ActionDrop {
		c.dispatcher.Deliver(decision, frame)
	}
}

func (c *Controller) handleTurnOpened(turn *Turn) {
	c.tracker.onTurnOpened(turn)
	c.metrics.RecordTurnOpened(c.baseContext, string(turn.Kind))
	event := events.NewTurnOpened(turn.ID, string(turn.Kind), turn.StartedAt)
	c.pendingEffects = append(c.pendingEffects, func() {
		c.emitEvent(event)
	})
}

func (c *Controller) handleTurnPreempted(turn *Turn) {
	c.metrics.RecordTurnPreempted(c.baseContext)
	turnID := turn.ID
	c.pendingEffects = append(c.pendingEffects, func() {
		c.dispatcher.Preempt(turnID)
		c.emitEvent(events.NewTurnPreempted(turnID))
	})
}

func (c *Controller) handleTurnClosed(turn *Turn) {
	stats := c.tracker.onTurnClosed(turn)
	c.metrics.RecordTurnClosed(c.baseContext, string(turn.Kind), turn.EndedAt.Sub(turn.StartedAt).Seconds())
	turnID := turn.ID
	event := events.NewTurnClosed(turn.ID, string(turn.Kind), turn.EndedAt, stats.TranscribableFrames+stats.MeteringFrames)
	c.pendingEffects = append(c.pendingEffects, func() {
		c.dispatcher.Flush(turnID)
		c.emitEvent(event)
	})
}

func (c *Controller) runPendingEffects() {
	pending := c.pendingEffects
	c.pendingEffects = nil
	for _, effect := range pending {
		effect()
	}
}

// drainAndTearDown processes everything still queued, then forces the
// current turn closed so its artifacts flush before the controller is
// discarded.
func (c *Controller) drainAndTearDown() {
	for {
		item, ok := c.queue.Pop()
		if !ok {
			break
		}
		c.process(item)
	}

	c.stateMu.Lock()
	c.machine.forceClose()
	c.stateMu.Unlock()

	c.runPendingEffects()

	if err := c.dispatcher.Close(c.baseContext); err != nil {
		logger.Warn("failed to close dispatcher", "error", err, "session_id", c.sessionID)
	}
}
