// Package deepgram implements streaming speech synthesis over Deepgram's
// speak websocket.
package deepgram

import (
	"fmt"
	"os"
	"slices"
)

// TextToSpeechClient creates speech generators bound to one voice. The
// client itself holds no connection; each generator owns its own stream.
type TextToSpeechClient struct {
	apiKey string
	voice  deepgramVoice
}

type ClientOption func(*TextToSpeechClient)

// WithAPIKey overrides the key taken from DEEPGRAM_API_KEY.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *TextToSpeechClient) {
		c.apiKey = apiKey
	}
}

func NewTextToSpeechClient(voice deepgramVoice, opts ...ClientOption) (*TextToSpeechClient, error) {
	if !slices.Contains(GetAvailableVoices(), voice) {
		return nil, fmt.Errorf("invalid voice")
	}

	client := &TextToSpeechClient{
		apiKey: os.Getenv("DEEPGRAM_API_KEY"),
		voice:  voice,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func (c *TextToSpeechClient) SetVoice(voice deepgramVoice) error {
	if !slices.Contains(GetAvailableVoices(), voice) {
		return fmt.Errorf("invalid voice")
	}

	c.voice = voice
	return nil
}
