// Package openai implements translation over OpenAI's chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nebulavoice/translate-core/core/translation"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	systemPromptTemplate = "You are a professional translator. Translate the" +
		" user's text from %s to %s. Reply with the translation only, no" +
		" explanations, no quotes."
)

// TranslationClient translates utterance transcripts between the session's
// language pair.
type TranslationClient struct {
	apiKey  string
	baseURL string
	model   string

	httpClient *http.Client

	sourceLanguage string
	targetLanguage string
}

type ClientOption func(*TranslationClient)

// WithAPIKey overrides the key taken from OPENAI_API_KEY.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *TranslationClient) {
		c.apiKey = apiKey
	}
}

// WithBaseURL points the client at a compatible endpoint, e.g. a proxy.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *TranslationClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithModel overrides the completion model, defaulting to gpt-4o-mini.
func WithModel(model string) ClientOption {
	return func(c *TranslationClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLanguagePair sets the default source and target languages for
// [TranslationClient.Translate].
func WithLanguagePair(source, target string) ClientOption {
	return func(c *TranslationClient) {
		c.sourceLanguage = source
		c.targetLanguage = target
	}
}

// WithHTTPClient overrides the transport, used by tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *TranslationClient) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func NewTranslationClient(opts ...ClientOption) *TranslationClient {
	client := &TranslationClient{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: defaultBaseURL,
		model:   defaultModel,

		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},

		sourceLanguage: "English",
		targetLanguage: "Spanish",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Translate translates text between the configured language pair, or the
// pair given through options.
func (c *TranslationClient) Translate(ctx context.Context, text string, opts ...translation.TranslationOption) (string, error) {
	options := &translation.TranslationOptions{
		SourceLanguage: c.sourceLanguage,
		TargetLanguage: c.targetLanguage,
	}
	for _, opt := range opts {
		opt(options)
	}

	if c.apiKey == "" {
		return "", fmt.Errorf("openai api key not found")
	}
	if text == "" {
		return "", nil
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(systemPromptTemplate, options.SourceLanguage, options.TargetLanguage)},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("completion endpoint returned %d: %s", resp.StatusCode, string(payload))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
