package deepgram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nebulavoice/translate-core/core/texttospeech"
)

// speakServer fakes the speak endpoint: Speak messages accumulate text,
// Flush synthesizes the accumulated text as one binary frame followed by a
// Flushed confirmation, Close ends the connection.
func speakServer(t *testing.T) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("failed to upgrade websocket: %v", err)
			return
		}
		defer conn.Close()

		var buffered string
		for {
			var msg struct {
				Type string `json:"type"`
				Text string `json:"text"`
			}
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}

			switch msg.Type {
			case "Speak":
				buffered += msg.Text
			case "Flush":
				if buffered != "" {
					if err := conn.WriteMessage(websocket.BinaryMessage, []byte("audio:"+buffered)); err != nil {
						return
					}
					buffered = ""
				}
				if err := conn.WriteJSON(map[string]string{"type": "Flushed"}); err != nil {
					return
				}
			case "Close":
				deadline := time.Now().Add(time.Second)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
				return
			}
		}
	}))
}

func newTestStreamingRequest(t *testing.T, serverURL string, opts ...texttospeech.TextToSpeechOption) *streamingRequest {
	t.Helper()

	req := &streamingRequest{
		options: streamingRequestOptions{
			TextToSpeechOptions: texttospeech.TextToSpeechOptions{
				SpeechAudioCallback: func([]byte) {},
				SpeechMarkCallback:  func(string) {},
				SpeechEndedCallback: func(texttospeech.SpeechEndedReport) {},
				ErrorCallback:       func(error) {},
			},
		},
	}
	for _, opt := range opts {
		opt(&req.options.TextToSpeechOptions)
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(serverURL, "http"), nil)
	if err != nil {
		t.Fatalf("failed to dial test server: %v", err)
	}
	req.ws = conn

	go req.processIncomingMessages(context.Background())
	return req
}

func awaitGenerator[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case value := <-ch:
		return value
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		var zero T
		return zero
	}
}

func TestStreamingMarkedTextFlushesAndEnds(t *testing.T) {
	server := speakServer(t)
	defer server.Close()

	audioCh := make(chan []byte, 4)
	markCh := make(chan string, 4)
	endedCh := make(chan struct{}, 1)

	req := newTestStreamingRequest(t, server.URL,
		texttospeech.WithSpeechAudioCallback(func(chunk []byte) { audioCh <- chunk }),
		texttospeech.WithSpeechMarkCallback(func(mark string) { markCh <- mark }),
		texttospeech.WithSpeechEndedCallback(func(texttospeech.SpeechEndedReport) { endedCh <- struct{}{} }),
	)

	if err := req.SendText("buenos dias"); err != nil {
		t.Fatalf("failed to send text: %v", err)
	}
	if err := req.Mark(); err != nil {
		t.Fatalf("failed to mark: %v", err)
	}
	if err := req.EndOfText(); err != nil {
		t.Fatalf("failed to end text: %v", err)
	}

	if audio := awaitGenerator(t, audioCh, "synthesized audio"); string(audio) != "audio:buenos dias" {
		t.Fatalf("unexpected audio %q", audio)
	}
	if mark := awaitGenerator(t, markCh, "mark confirmation"); mark != "buenos dias" {
		t.Fatalf("unexpected mark %q", mark)
	}
	awaitGenerator(t, endedCh, "end of speech")
}

func TestStreamingUnmarkedTextStillEnds(t *testing.T) {
	server := speakServer(t)
	defer server.Close()

	audioCh := make(chan []byte, 4)
	endedCh := make(chan struct{}, 1)

	req := newTestStreamingRequest(t, server.URL,
		texttospeech.WithSpeechAudioCallback(func(chunk []byte) { audioCh <- chunk }),
		texttospeech.WithSpeechEndedCallback(func(texttospeech.SpeechEndedReport) { endedCh <- struct{}{} }),
	)

	if err := req.SendText("hasta luego"); err != nil {
		t.Fatalf("failed to send text: %v", err)
	}
	if err := req.EndOfText(); err != nil {
		t.Fatalf("failed to end text: %v", err)
	}

	if audio := awaitGenerator(t, audioCh, "synthesized audio"); string(audio) != "audio:hasta luego" {
		t.Fatalf("unexpected audio %q", audio)
	}
	awaitGenerator(t, endedCh, "end of speech")
}

func TestStreamingEndOfTextWithoutTextClosesImmediately(t *testing.T) {
	server := speakServer(t)
	defer server.Close()

	endedCh := make(chan struct{}, 1)

	req := newTestStreamingRequest(t, server.URL,
		texttospeech.WithSpeechEndedCallback(func(texttospeech.SpeechEndedReport) { endedCh <- struct{}{} }),
	)

	if err := req.EndOfText(); err != nil {
		t.Fatalf("failed to end text: %v", err)
	}
	awaitGenerator(t, endedCh, "end of speech")
}
