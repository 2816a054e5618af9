package routing

// Action is what happens to one audio frame.
type Action string

const (
	// ActionForwardToTranscription sends the frame to the transcription stage.
	ActionForwardToTranscription Action = "forward_to_transcription"
	// ActionForwardToMeteringOnly feeds amplitude metering without spending a
	// transcription call on silence.
	ActionForwardToMeteringOnly Action = "forward_to_metering_only"
	// ActionDrop discards the frame.
	ActionDrop Action = "drop"
)

// RoutingDecision is the router's verdict for one frame. It is computed
// fresh per frame and never stored. TurnID is zero when the frame is not
// attributed to any turn (dropped before a turn exists, or metering-only
// while auto-listening).
type RoutingDecision struct {
	Action  Action
	TurnID  int64
	Speaker SpeakerTag
}

// Attributed reports whether the decision charges a frame to a turn.
func (d RoutingDecision) Attributed() bool {
	return d.TurnID != 0
}

// routeFrame decides what to do with one frame given the machine state and
// the current turn. It is pure and total: every input maps to exactly one
// action.
func routeFrame(state State, current *Turn) RoutingDecision {
	if current == nil || !current.IsOpen() {
		if state == StateAutoListening {
			// Armed but voice not yet confirmed: keep level metering alive
			// without attributing the frame to any turn.
			return RoutingDecision{Action: ActionForwardToMeteringOnly}
		}
		return RoutingDecision{Action: ActionDrop}
	}

	switch current.Kind {
	case TurnKindManual:
		return RoutingDecision{Action: ActionForwardToTranscription, TurnID: current.ID, Speaker: SpeakerSelf}
	case TurnKindAuto:
		return RoutingDecision{Action: ActionForwardToTranscription, TurnID: current.ID, Speaker: SpeakerRemote}
	}

	return RoutingDecision{Action: ActionDrop}
}
