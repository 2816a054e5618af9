package events

const (
	// KindManualPressed identifies an explicit push-to-talk press.
	KindManualPressed Kind = "control.manual_pressed"
	// KindManualReleased identifies an explicit push-to-talk release.
	KindManualReleased Kind = "control.manual_released"
	// KindVoiceStarted identifies confirmed voice activity.
	KindVoiceStarted Kind = "control.voice_started"
	// KindVoiceStopped identifies the end of voice activity.
	KindVoiceStopped Kind = "control.voice_stopped"
)

// ManualPressed signals that the push-to-talk control was engaged.
type ManualPressed struct{ Base }

// NewManualPressed creates a push-to-talk press event.
func NewManualPressed() ManualPressed {
	return ManualPressed{Base: NewBase(KindManualPressed)}
}

func (e ManualPressed) String() string { return "manual pressed" }

// ManualReleased signals that the push-to-talk control was released.
type ManualReleased struct{ Base }

// NewManualReleased creates a push-to-talk release event.
func NewManualReleased() ManualReleased {
	return ManualReleased{Base: NewBase(KindManualReleased)}
}

func (e ManualReleased) String() string { return "manual released" }

// VoiceStarted signals that the voice-activity detector confirmed speech.
type VoiceStarted struct{ Base }

// NewVoiceStarted creates a voice-activity started event.
func NewVoiceStarted() VoiceStarted {
	return VoiceStarted{Base: NewBase(KindVoiceStarted)}
}

func (e VoiceStarted) String() string { return "voice started" }

// VoiceStopped signals that the voice-activity detector saw speech end.
type VoiceStopped struct{ Base }

// NewVoiceStopped creates a voice-activity stopped event.
func NewVoiceStopped() VoiceStopped {
	return VoiceStopped{Base: NewBase(KindVoiceStopped)}
}

func (e VoiceStopped) String() string { return "voice stopped" }

// IsControl reports whether the event is a turn-ownership control event.
func IsControl(event Event) bool {
	switch event.Kind() {
	case KindManualPressed, KindManualReleased, KindVoiceStarted, KindVoiceStopped:
		return true
	}
	return false
}
