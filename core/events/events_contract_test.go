package events

import (
	"testing"
	"time"
)

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "manual pressed", event: NewManualPressed(), expected: KindManualPressed},
		{name: "manual released", event: NewManualReleased(), expected: KindManualReleased},
		{name: "voice started", event: NewVoiceStarted(), expected: KindVoiceStarted},
		{name: "voice stopped", event: NewVoiceStopped(), expected: KindVoiceStopped},
		{name: "audio frame", event: NewAudioFrame([]byte{1}), expected: KindAudioFrame},
		{name: "turn opened", event: NewTurnOpened(1, "manual", time.Now()), expected: KindTurnOpened},
		{name: "turn closed", event: NewTurnClosed(1, "manual", time.Now(), 0), expected: KindTurnClosed},
		{name: "turn preempted", event: NewTurnPreempted(1), expected: KindTurnPreempted},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestIsControlCoversExactlyControlEvents(t *testing.T) {
	controls := []Event{NewManualPressed(), NewManualReleased(), NewVoiceStarted(), NewVoiceStopped()}
	for _, event := range controls {
		if !IsControl(event) {
			t.Fatalf("expected %q to be a control event", event.Kind())
		}
	}

	others := []Event{NewAudioFrame(nil), NewTurnOpened(1, "auto", time.Now()), NewTurnPreempted(1)}
	for _, event := range others {
		if IsControl(event) {
			t.Fatalf("expected %q not to be a control event", event.Kind())
		}
	}
}
