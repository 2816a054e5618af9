package events

const (
	// KindAudioFrame identifies one opaque audio frame.
	KindAudioFrame Kind = "input.audio_frame"
)

// AudioFrame carries one audio frame. The payload is opaque to the routing
// core; only downstream collaborators interpret it.
type AudioFrame struct {
	Base
	Audio []byte
}

// NewAudioFrame creates an audio frame event.
func NewAudioFrame(audio []byte) AudioFrame {
	return AudioFrame{Base: NewBase(KindAudioFrame), Audio: audio}
}
