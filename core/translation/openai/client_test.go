package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nebulavoice/translate-core/core/translation"
)

func TestTranslateSendsLanguagePairAndReturnsTranslation(t *testing.T) {
	var gotRequest chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		_ = json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "hola mundo"}}},
		})
	}))
	defer server.Close()

	client := NewTranslationClient(
		WithAPIKey("test-key"),
		WithBaseURL(server.URL),
		WithLanguagePair("English", "Spanish"),
	)

	translated, err := client.Translate(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if translated != "hola mundo" {
		t.Fatalf("expected translated text, got %q", translated)
	}

	if len(gotRequest.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(gotRequest.Messages))
	}
	if gotRequest.Messages[1].Content != "hello world" {
		t.Fatalf("expected user text forwarded, got %q", gotRequest.Messages[1].Content)
	}
}

func TestTranslateOverridesLanguagesPerRequest(t *testing.T) {
	var gotRequest chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotRequest)
		_ = json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Content: "bonjour"}}},
		})
	}))
	defer server.Close()

	client := NewTranslationClient(WithAPIKey("test-key"), WithBaseURL(server.URL))

	if _, err := client.Translate(context.Background(), "hello",
		translation.WithSourceLanguage("English"),
		translation.WithTargetLanguage("French"),
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	system := gotRequest.Messages[0].Content
	if want := "from English to French"; !strings.Contains(system, want) {
		t.Fatalf("expected system prompt to carry %q, got %q", want, system)
	}
}

func TestTranslateEmptyTextShortCircuits(t *testing.T) {
	client := NewTranslationClient(WithAPIKey("test-key"), WithBaseURL("http://127.0.0.1:0"))

	translated, err := client.Translate(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if translated != "" {
		t.Fatalf("expected empty translation, got %q", translated)
	}
}

func TestTranslateErrorsWithoutAPIKey(t *testing.T) {
	client := NewTranslationClient(WithAPIKey(""))

	if _, err := client.Translate(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestTranslateSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewTranslationClient(WithAPIKey("test-key"), WithBaseURL(server.URL))

	if _, err := client.Translate(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}
