package events

import "time"

const (
	// KindTurnOpened identifies a turn taking ownership of the channel.
	KindTurnOpened Kind = "turn_state.opened"
	// KindTurnClosed identifies a turn closing after its artifacts flushed.
	KindTurnClosed Kind = "turn_state.closed"
	// KindTurnPreempted identifies an auto turn forcibly closed by a manual press.
	KindTurnPreempted Kind = "turn_state.preempted"
)

// TurnOpened marks a new turn taking ownership of the channel.
type TurnOpened struct {
	Base
	TurnID    int64
	TurnKind  string
	StartedAt time.Time
}

// NewTurnOpened creates a turn opened event.
func NewTurnOpened(turnID int64, turnKind string, startedAt time.Time) TurnOpened {
	return TurnOpened{Base: NewBase(KindTurnOpened), TurnID: turnID, TurnKind: turnKind, StartedAt: startedAt}
}

// TurnClosed marks a turn that finished and was flushed.
type TurnClosed struct {
	Base
	TurnID     int64
	TurnKind   string
	EndedAt    time.Time
	FrameCount int64
}

// NewTurnClosed creates a turn closed event.
func NewTurnClosed(turnID int64, turnKind string, endedAt time.Time, frameCount int64) TurnClosed {
	return TurnClosed{Base: NewBase(KindTurnClosed), TurnID: turnID, TurnKind: turnKind, EndedAt: endedAt, FrameCount: frameCount}
}

// TurnPreempted marks an auto turn that a manual press closed mid-flight.
type TurnPreempted struct {
	Base
	TurnID int64
}

// NewTurnPreempted creates a turn preempted event.
func NewTurnPreempted(turnID int64) TurnPreempted {
	return TurnPreempted{Base: NewBase(KindTurnPreempted), TurnID: turnID}
}
