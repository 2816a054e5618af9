package routing

import "time"

// TurnKind distinguishes how a turn acquired channel ownership.
type TurnKind string

const (
	// TurnKindManual marks a turn opened by explicit push-to-talk.
	TurnKindManual TurnKind = "manual"
	// TurnKindAuto marks a turn opened by voice-activity detection.
	TurnKindAuto TurnKind = "auto"
)

// SpeakerTag tells downstream collaborators whose speech a frame carries,
// which decides audio-output vs. text-only behavior.
type SpeakerTag string

const (
	SpeakerNone   SpeakerTag = ""
	SpeakerSelf   SpeakerTag = "self"
	SpeakerRemote SpeakerTag = "remote"
)

// Speaker maps a turn kind to the speaker tag its frames carry.
func (k TurnKind) Speaker() SpeakerTag {
	switch k {
	case TurnKindManual:
		return SpeakerSelf
	case TurnKindAuto:
		return SpeakerRemote
	}
	return SpeakerNone
}

// TurnPhase is the lifecycle phase of a turn.
type TurnPhase string

const (
	// TurnPhaseActive means the turn owns the channel and accepts frames.
	TurnPhaseActive TurnPhase = "active"
	// TurnPhaseFinishing means the terminating event arrived and final
	// artifacts are being flushed.
	TurnPhaseFinishing TurnPhase = "finishing"
	// TurnPhaseClosed means the turn is immutable and released.
	TurnPhaseClosed TurnPhase = "closed"
)

// Turn is the unit of channel ownership. Invariant: at most one turn per
// controller has a phase other than [TurnPhaseClosed] at any instant.
type Turn struct {
	ID         int64
	Kind       TurnKind
	Phase      TurnPhase
	StartedAt  time.Time
	EndedAt    time.Time
	FrameCount int64
}

// IsOpen reports whether the turn still accepts frame attribution.
func (t Turn) IsOpen() bool {
	return t.Phase != TurnPhaseClosed
}
