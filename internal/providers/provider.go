package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ReviewRequest contains the prompt sent to a model.
type ReviewRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// ReviewResponse contains the generated text and the model that produced it.
type ReviewResponse struct {
	Content string
	Model   string
}

// Reviewer is the provider abstraction interface.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	Name() string
	// Model identifies the configured model(s), for cache keys and messages.
	Model() string
}

// Options configures a provider created by New.
type Options struct {
	APIKey  string
	BaseURL string
	Models  []string
	Client  *http.Client
	Logger  *zap.Logger
}

// New creates a provider by name.
func New(provider string, opts Options) (Reviewer, error) {
	switch provider {
	case "huggingface", "hf":
		return NewHuggingFace(opts)
	case "ollama":
		return NewOllama(opts)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// ErrMissingCredential is returned when a provider that needs an API key has none.
var ErrMissingCredential = errors.New("missing API credential")

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

type statusError struct {
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.statusCode, e.body)
}

// maxErrorBody bounds how much of an error response ends up in messages.
const maxErrorBody = 512

func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

func checkStatus(resp *http.Response, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &authError{message: msg}
	case resp.StatusCode != http.StatusOK:
		return &statusError{statusCode: resp.StatusCode, body: msg}
	}
	return nil
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
