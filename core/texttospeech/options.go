package texttospeech

import "github.com/nebulavoice/translate-core/core/audio"

type TextToSpeechOptions struct {
	// SpeechAudioCallback is called as the client produces synthesized audio.
	SpeechAudioCallback func(audio []byte)
	// SpeechMarkCallback is called when speech has been produced up to a
	// marked point in the text. Each mark is reported once.
	SpeechMarkCallback func(string)
	// SpeechEndedCallback is called after all requested speech was produced.
	SpeechEndedCallback func(SpeechEndedReport)
	// ErrorCallback is called when the client encounters an error, usually
	// because generation was cancelled.
	ErrorCallback func(error)

	EncodingInfo audio.EncodingInfo
}

type TextToSpeechOption func(*TextToSpeechOptions)

func WithSpeechAudioCallback(callback func([]byte)) TextToSpeechOption {
	return func(o *TextToSpeechOptions) {
		o.SpeechAudioCallback = callback
	}
}

func WithSpeechMarkCallback(callback func(string)) TextToSpeechOption {
	return func(o *TextToSpeechOptions) {
		o.SpeechMarkCallback = callback
	}
}

func WithSpeechEndedCallback(callback func(SpeechEndedReport)) TextToSpeechOption {
	return func(o *TextToSpeechOptions) { o.SpeechEndedCallback = callback }
}

func WithErrorCallback(callback func(error)) TextToSpeechOption {
	return func(o *TextToSpeechOptions) { o.ErrorCallback = callback }
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TextToSpeechOption {
	return func(o *TextToSpeechOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}

// SpeechGenerator synthesizes one ordered stream of text into speech.
type SpeechGenerator interface {
	// SendText queues text for synthesis. Speech is guaranteed to be
	// generated in the order text is sent.
	//
	// SendText errors if EndOfText, Cancel or Close has been called.
	SendText(string) error
	// Mark marks the current point in the text. The mark is reported after
	// the text sent up to it has been generated, though not necessarily at
	// the exact point it was placed.
	//
	// Mark errors if EndOfText, Cancel or Close has been called.
	Mark() error
	// EndOfText signals that no more text will be sent. The generator closes
	// itself after all remaining speech has been generated.
	//
	// EndOfText errors if Cancel or Close has been called. Repeated calls
	// are ignored.
	EndOfText() error
	// Cancel immediately stops further speech generation and closes the
	// generator.
	//
	// Cancel errors if Close has been called. Repeated calls are ignored.
	Cancel() error
	// Close immediately closes the generator. No more speech is produced
	// after this call. Repeated calls are ignored.
	Close() error
}

type SpeechEndedReport struct{}
