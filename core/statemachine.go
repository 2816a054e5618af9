package routing

import (
	"time"

	"github.com/nebulavoice/translate-core/core/events"
)

// State is the controller-visible state of the turn state machine.
type State string

const (
	// StateNoTurn holds before the first control event and after teardown.
	StateNoTurn State = "no_turn"
	// StateManualActive holds while a push-to-talk turn owns the channel.
	StateManualActive State = "manual_active"
	// StateAutoListening holds while auto mode is armed but no voice is
	// confirmed. No turn is open; frames feed metering only.
	StateAutoListening State = "auto_listening"
	// StateAutoActive holds while a voice-activity turn owns the channel.
	StateAutoActive State = "auto_active"
)

type machineHooks struct {
	onTurnOpened    func(*Turn)
	onTurnClosed    func(*Turn)
	onTurnPreempted func(*Turn)
}

func (h *machineHooks) defaults() *machineHooks {
	if h.onTurnOpened == nil {
		h.onTurnOpened = func(*Turn) {}
	}
	if h.onTurnClosed == nil {
		h.onTurnClosed = func(*Turn) {}
	}
	if h.onTurnPreempted == nil {
		h.onTurnPreempted = func(*Turn) {}
	}
	return h
}

// turnStateMachine owns the current turn and applies the transition table.
// It is not safe for concurrent use; the controller's single worker is the
// only writer.
type turnStateMachine struct {
	state      State
	current    *Turn
	nextTurnID int64

	now   func() time.Time
	hooks machineHooks
}

func newTurnStateMachine(now func() time.Time, hooks machineHooks) *turnStateMachine {
	if now == nil {
		now = time.Now
	}

	return &turnStateMachine{
		state: StateNoTurn,
		now:   now,
		hooks: *hooks.defaults(),
	}
}

func (m *turnStateMachine) State() State {
	return m.state
}

func (m *turnStateMachine) CurrentTurn() *Turn {
	return m.current
}

// Apply consumes one control event. It is total: malformed, stale or
// out-of-order events are logged at debug level and ignored, never fatal,
// since event delivery across the transport is not guaranteed to be causal.
func (m *turnStateMachine) Apply(event events.Event) {
	switch event.(type) {
	case events.ManualPressed:
		m.handleManualPressed()
	case events.ManualReleased:
		m.handleManualReleased()
	case events.VoiceStarted:
		m.handleVoiceStarted()
	case events.VoiceStopped:
		m.handleVoiceStopped()
	default:
		logger.Debug("ignoring non-control event in state machine", "kind", string(event.Kind()))
	}
}

// handleManualPressed applies the override rule: a manual press always wins,
// preempting any in-flight auto turn.
func (m *turnStateMachine) handleManualPressed() {
	switch m.state {
	case StateManualActive:
		logger.Debug("duplicate manual press ignored", "state", string(m.state))
		return
	case StateAutoActive:
		m.closeCurrent(true)
	}

	m.openTurn(TurnKindManual)
	m.state = StateManualActive
}

func (m *turnStateMachine) handleManualReleased() {
	if m.state != StateManualActive {
		logger.Debug("stale manual release ignored", "state", string(m.state))
		return
	}

	m.closeCurrent(false)
	m.state = StateAutoListening
}

func (m *turnStateMachine) handleVoiceStarted() {
	switch m.state {
	case StateAutoListening:
		m.openTurn(TurnKindAuto)
		m.state = StateAutoActive
	case StateManualActive:
		// Manual turn has exclusive ownership while active.
		logger.Debug("voice started ignored during manual turn")
	default:
		logger.Debug("stale voice started ignored", "state", string(m.state))
	}
}

func (m *turnStateMachine) handleVoiceStopped() {
	switch m.state {
	case StateAutoActive:
		m.closeCurrent(false)
		m.state = StateAutoListening
	case StateManualActive:
		logger.Debug("voice stopped ignored during manual turn")
	default:
		logger.Debug("stale voice stopped ignored", "state", string(m.state))
	}
}

// forceClose closes any open turn and parks the machine, used on session
// teardown.
func (m *turnStateMachine) forceClose() {
	m.closeCurrent(false)
	m.state = StateNoTurn
}

func (m *turnStateMachine) openTurn(kind TurnKind) {
	m.nextTurnID++
	turn := &Turn{
		ID:        m.nextTurnID,
		Kind:      kind,
		Phase:     TurnPhaseActive,
		StartedAt: m.now(),
	}
	m.current = turn
	m.hooks.onTurnOpened(turn)
}

func (m *turnStateMachine) closeCurrent(preempted bool) {
	turn := m.current
	if turn == nil {
		return
	}

	turn.Phase = TurnPhaseFinishing
	turn.EndedAt = m.now()
	if preempted {
		m.hooks.onTurnPreempted(turn)
	}
	m.hooks.onTurnClosed(turn)
	turn.Phase = TurnPhaseClosed
	m.current = nil
}
