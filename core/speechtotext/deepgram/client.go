// Package deepgram implements live transcription over Deepgram's listen
// websocket, including the voice-activity events the routing controller
// consumes to open and close auto turns.
package deepgram

import (
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultModel = "nova-3"

// TranscriptionClient streams session audio to Deepgram and surfaces
// transcripts and speech boundary events through callbacks.
type TranscriptionClient struct {
	apiKey string
	model  string

	connMu    sync.Mutex
	conn      *websocket.Conn
	lastMsgTs time.Time

	accumulatedTranscript string
	unendedSegment        bool
}

type ClientOption func(*TranscriptionClient)

// WithAPIKey overrides the key taken from DEEPGRAM_API_KEY.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *TranscriptionClient) {
		c.apiKey = apiKey
	}
}

// WithModel overrides the transcription model, defaulting to nova-3.
func WithModel(model string) ClientOption {
	return func(c *TranscriptionClient) {
		if model != "" {
			c.model = model
		}
	}
}

func NewTranscriptionClient(opts ...ClientOption) *TranscriptionClient {
	client := &TranscriptionClient{
		apiKey: os.Getenv("DEEPGRAM_API_KEY"),
		model:  defaultModel,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}
