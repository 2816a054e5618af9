package routing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/nebulavoice/translate-core/core/events"
)

type machineRecorder struct {
	opened    []Turn
	closed    []Turn
	preempted []Turn
}

func (r *machineRecorder) hooks() machineHooks {
	return machineHooks{
		onTurnOpened:    func(turn *Turn) { r.opened = append(r.opened, *turn) },
		onTurnClosed:    func(turn *Turn) { r.closed = append(r.closed, *turn) },
		onTurnPreempted: func(turn *Turn) { r.preempted = append(r.preempted, *turn) },
	}
}

func fixedClock() func() time.Time {
	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		base = base.Add(time.Second)
		return base
	}
}

func TestStateMachineTransitions(t *testing.T) {
	press := events.NewManualPressed()
	release := events.NewManualReleased()
	voiceOn := events.NewVoiceStarted()
	voiceOff := events.NewVoiceStopped()

	for _, tc := range []struct {
		name   string
		events []events.Event

		wantState     State
		wantOpened    int
		wantClosed    int
		wantPreempted int
	}{
		{
			name:       "press opens a manual turn",
			events:     []events.Event{press},
			wantState:  StateManualActive,
			wantOpened: 1,
		},
		{
			name:       "release closes the manual turn and arms auto listening",
			events:     []events.Event{press, release},
			wantState:  StateAutoListening,
			wantOpened: 1, wantClosed: 1,
		},
		{
			name:      "release without press is stale",
			events:    []events.Event{release},
			wantState: StateNoTurn,
		},
		{
			name:       "duplicate press is ignored",
			events:     []events.Event{press, press},
			wantState:  StateManualActive,
			wantOpened: 1,
		},
		{
			name:      "voice started before any press is stale",
			events:    []events.Event{voiceOn},
			wantState: StateNoTurn,
		},
		{
			name:       "voice started while listening opens an auto turn",
			events:     []events.Event{press, release, voiceOn},
			wantState:  StateAutoActive,
			wantOpened: 2, wantClosed: 1,
		},
		{
			name:       "voice stopped closes the auto turn back to listening",
			events:     []events.Event{press, release, voiceOn, voiceOff},
			wantState:  StateAutoListening,
			wantOpened: 2, wantClosed: 2,
		},
		{
			name:       "press during an auto turn preempts it",
			events:     []events.Event{press, release, voiceOn, press},
			wantState:  StateManualActive,
			wantOpened: 3, wantClosed: 2, wantPreempted: 1,
		},
		{
			name:       "voice events are ignored during a manual turn",
			events:     []events.Event{press, voiceOn, voiceOff},
			wantState:  StateManualActive,
			wantOpened: 1,
		},
		{
			name:       "duplicate voice stopped is stale",
			events:     []events.Event{press, release, voiceOn, voiceOff, voiceOff},
			wantState:  StateAutoListening,
			wantOpened: 2, wantClosed: 2,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			recorder := &machineRecorder{}
			machine := newTurnStateMachine(fixedClock(), recorder.hooks())

			for _, event := range tc.events {
				machine.Apply(event)
			}

			if machine.State() != tc.wantState {
				t.Errorf("expected state %q, got %q", tc.wantState, machine.State())
			}
			if len(recorder.opened) != tc.wantOpened {
				t.Errorf("expected %d turns opened, got %d", tc.wantOpened, len(recorder.opened))
			}
			if len(recorder.closed) != tc.wantClosed {
				t.Errorf("expected %d turns closed, got %d", tc.wantClosed, len(recorder.closed))
			}
			if len(recorder.preempted) != tc.wantPreempted {
				t.Errorf("expected %d turns preempted, got %d", tc.wantPreempted, len(recorder.preempted))
			}
		})
	}
}

func TestStateMachineTurnIDsAreMonotonic(t *testing.T) {
	recorder := &machineRecorder{}
	machine := newTurnStateMachine(fixedClock(), recorder.hooks())

	machine.Apply(events.NewManualPressed())
	machine.Apply(events.NewManualReleased())
	machine.Apply(events.NewVoiceStarted())
	machine.Apply(events.NewVoiceStopped())
	machine.Apply(events.NewVoiceStarted())
	machine.Apply(events.NewManualPressed())

	if len(recorder.opened) != 4 {
		t.Fatalf("expected 4 turns opened, got %d", len(recorder.opened))
	}
	for i, turn := range recorder.opened {
		if turn.ID != int64(i+1) {
			t.Fatalf("expected monotonically increasing ids, got %v", recorder.opened)
		}
	}
}

func TestStateMachinePreemptionOrdersPreemptBeforeClose(t *testing.T) {
	var order []string
	machine := newTurnStateMachine(fixedClock(), machineHooks{
		onTurnPreempted: func(*Turn) { order = append(order, "preempted") },
		onTurnClosed:    func(*Turn) { order = append(order, "closed") },
		onTurnOpened:    func(*Turn) { order = append(order, "opened") },
	})

	machine.Apply(events.NewManualPressed())
	machine.Apply(events.NewManualReleased())
	machine.Apply(events.NewVoiceStarted())
	machine.Apply(events.NewManualPressed())

	want := []string{"opened", "closed", "opened", "preempted", "closed", "opened"}
	if len(order) != len(want) {
		t.Fatalf("expected hook order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected hook order %v, got %v", want, order)
		}
	}
}

// At most one turn may be non-closed at any instant, whatever event sequence
// arrives.
func TestStateMachineSingleOwnershipUnderRandomEvents(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	openTurns := 0
	machine := newTurnStateMachine(fixedClock(), machineHooks{
		onTurnOpened: func(*Turn) { openTurns++ },
		onTurnClosed: func(*Turn) { openTurns-- },
	})

	allEvents := []events.Event{
		events.NewManualPressed(),
		events.NewManualReleased(),
		events.NewVoiceStarted(),
		events.NewVoiceStopped(),
	}

	for range 10000 {
		machine.Apply(allEvents[rng.Intn(len(allEvents))])

		if openTurns < 0 || openTurns > 1 {
			t.Fatalf("single ownership violated: %d open turns", openTurns)
		}
		if openTurns == 1 && machine.CurrentTurn() == nil {
			t.Fatalf("open turn not reachable from the machine")
		}
		if openTurns == 0 && machine.CurrentTurn() != nil {
			t.Fatalf("machine holds a turn that was never opened")
		}
	}
}

func TestStateMachineForceCloseFlushesOpenTurn(t *testing.T) {
	recorder := &machineRecorder{}
	machine := newTurnStateMachine(fixedClock(), recorder.hooks())

	machine.Apply(events.NewManualPressed())
	machine.forceClose()

	if machine.State() != StateNoTurn {
		t.Fatalf("expected machine parked, got %q", machine.State())
	}
	if len(recorder.closed) != 1 {
		t.Fatalf("expected open turn closed on teardown, got %d", len(recorder.closed))
	}
	if len(recorder.preempted) != 0 {
		t.Fatalf("teardown close must not count as preemption")
	}

	// Idempotent once nothing is open.
	machine.forceClose()
	if len(recorder.closed) != 1 {
		t.Fatalf("expected no extra close on repeated teardown")
	}
}
