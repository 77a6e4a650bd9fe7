package clients

import (
	"errors"
	"log/slog"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// NewOpenAIClient builds the chat-completion client used by the sentiment
// analyzer. The key is passed in explicitly so callers can fail fast before
// any scraping starts; the analyzer itself only sees an interface, which
// keeps it swappable with a canned double in tests.
func NewOpenAIClient(apiKey string) (*openai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("[OpenAIClient] missing OpenAI API key")
	}

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{Timeout: OPENAI_TIMEOUT}

	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.Duration("timeout", OPENAI_TIMEOUT))
	return openai.NewClientWithConfig(config), nil
}
