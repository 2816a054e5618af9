package deepgram

import (
	"github.com/nebulavoice/translate-core/core/speechtotext"
)

// transcriptionCallbacks is the noop-defaulted callback set the read loop
// invokes, so message processing never nil-checks.
type transcriptionCallbacks struct {
	interimTranscriptCallback func(transcript string)
	partialTranscriptCallback func(transcript string)
	transcriptCallback        func(transcript string)

	startSpeechCallback func()
	endSpeechCallback   func()
}

// websocketFeatureConfig captures which upstream features the connection has
// to request based on the callbacks that were actually set.
type websocketFeatureConfig struct {
	shouldDetectSpeechStart            bool
	shouldEnhanceSpeechEndingDetection bool
	shouldRequestInterimResults        bool
}

func newCallbackConfig(options speechtotext.TranscriptionOptions) (transcriptionCallbacks, websocketFeatureConfig) {
	wsConfig := websocketFeatureConfig{
		shouldDetectSpeechStart: options.SpeechStartedCallback != nil,
		shouldEnhanceSpeechEndingDetection: options.TranscriptCallback != nil ||
			options.SpeechEndedCallback != nil,
		shouldRequestInterimResults: options.InterimTranscriptCallback != nil,
	}

	callbacks := transcriptionCallbacks{
		interimTranscriptCallback: options.InterimTranscriptCallback,
		partialTranscriptCallback: options.PartialTranscriptCallback,
		transcriptCallback:        options.TranscriptCallback,
		startSpeechCallback:       options.SpeechStartedCallback,
		endSpeechCallback:         options.SpeechEndedCallback,
	}

	if callbacks.interimTranscriptCallback == nil {
		callbacks.interimTranscriptCallback = func(string) {}
	}
	if callbacks.partialTranscriptCallback == nil {
		callbacks.partialTranscriptCallback = func(string) {}
	}
	if callbacks.transcriptCallback == nil {
		callbacks.transcriptCallback = func(string) {}
	}
	if callbacks.startSpeechCallback == nil {
		callbacks.startSpeechCallback = func() {}
	}
	if callbacks.endSpeechCallback == nil {
		callbacks.endSpeechCallback = func() {}
	}

	return callbacks, wsConfig
}
