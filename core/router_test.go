package routing

import "testing"

func TestRouteFrameIsTotal(t *testing.T) {
	manualTurn := &Turn{ID: 7, Kind: TurnKindManual, Phase: TurnPhaseActive}
	autoTurn := &Turn{ID: 8, Kind: TurnKindAuto, Phase: TurnPhaseActive}
	closedTurn := &Turn{ID: 9, Kind: TurnKindAuto, Phase: TurnPhaseClosed}

	for _, tc := range []struct {
		name    string
		state   State
		current *Turn
		want    RoutingDecision
	}{
		{
			name:  "no turn drops the frame",
			state: StateNoTurn,
			want:  RoutingDecision{Action: ActionDrop},
		},
		{
			name:  "auto listening meters without attribution",
			state: StateAutoListening,
			want:  RoutingDecision{Action: ActionForwardToMeteringOnly},
		},
		{
			name:    "manual turn forwards as self",
			state:   StateManualActive,
			current: manualTurn,
			want:    RoutingDecision{Action: ActionForwardToTranscription, TurnID: 7, Speaker: SpeakerSelf},
		},
		{
			name:    "auto turn forwards as remote",
			state:   StateAutoActive,
			current: autoTurn,
			want:    RoutingDecision{Action: ActionForwardToTranscription, TurnID: 8, Speaker: SpeakerRemote},
		},
		{
			name:    "closed turn no longer attracts frames",
			state:   StateNoTurn,
			current: closedTurn,
			want:    RoutingDecision{Action: ActionDrop},
		},
		{
			name:    "closed turn while listening falls back to metering",
			state:   StateAutoListening,
			current: closedTurn,
			want:    RoutingDecision{Action: ActionForwardToMeteringOnly},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := routeFrame(tc.state, tc.current)
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestRoutingDecisionAttribution(t *testing.T) {
	if (RoutingDecision{Action: ActionForwardToMeteringOnly}).Attributed() {
		t.Fatalf("metering-only without turn id must not be attributed")
	}
	if !(RoutingDecision{Action: ActionForwardToTranscription, TurnID: 3}).Attributed() {
		t.Fatalf("decision with a turn id must be attributed")
	}
}
