package speechtotext

import "github.com/nebulavoice/translate-core/core/audio"

// TranscriptionOptions configures one live transcription stream. All
// callbacks are optional; unset callbacks disable the corresponding
// upstream feature where the provider allows it.
type TranscriptionOptions struct {
	// PartialTranscriptCallback fires per finalized segment.
	PartialTranscriptCallback func(transcript string)
	// TranscriptCallback fires once per utterance with the accumulated
	// transcript.
	TranscriptCallback func(transcript string)
	// InterimTranscriptCallback fires with unstable partial hypotheses.
	InterimTranscriptCallback func(transcript string)

	// SpeechStartedCallback fires when the provider's voice-activity
	// detection confirms speech. Feeds the controller's auto-turn opening.
	SpeechStartedCallback func()
	// SpeechEndedCallback fires when the provider considers the utterance
	// over. Feeds the controller's auto-turn closing.
	SpeechEndedCallback func()

	EncodingInfo audio.EncodingInfo
	Language     string
}

type TranscriptionOption func(*TranscriptionOptions)

func WithTranscriptCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.TranscriptCallback = callback
	}
}

func WithPartialTranscriptCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.PartialTranscriptCallback = callback
	}
}

func WithInterimTranscriptCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.InterimTranscriptCallback = callback
	}
}

func WithSpeechStartedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechStartedCallback = callback
	}
}

func WithSpeechEndedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechEndedCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}

// WithLanguage sets the spoken language hint (BCP-47), e.g. "en-US".
func WithLanguage(language string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.Language = language
	}
}
