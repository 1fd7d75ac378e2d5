package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "codellama:7b"
	ollamaTimeout      = 60 * time.Second
)

// Ollama implements the Reviewer interface for a local Ollama server.
type Ollama struct {
	model   string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewOllama creates a new Ollama provider. No API key is required; only the
// first entry of opts.Models is used.
func NewOllama(opts Options) (*Ollama, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	model := defaultOllamaModel
	if len(opts.Models) > 0 && opts.Models[0] != "" {
		model = opts.Models[0]
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: ollamaTimeout}
	}
	return &Ollama{
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/") + "/api/generate",
		client:  client,
		log:     logger(opts.Logger),
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Model() string { return o.model }

func (o *Ollama) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	body := ollamaRequest{
		Model:  o.model,
		Prompt: req.Prompt,
		Stream: false,
	}
	if req.MaxTokens > 0 || req.Temperature > 0 {
		body.Options = &ollamaOptions{NumPredict: req.MaxTokens}
		if req.Temperature > 0 {
			body.Options.Temperature = &req.Temperature
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	o.log.Info("trying model", zap.String("provider", o.Name()), zap.String("model", o.model))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := readBody(httpResp)
	if err != nil {
		return ReviewResponse{}, err
	}
	if err := checkStatus(httpResp, respBody); err != nil {
		return ReviewResponse{}, err
	}

	var result ollamaResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return ReviewResponse{}, fmt.Errorf("parsing response: %w", err)
	}
	if result.Error != "" {
		return ReviewResponse{}, fmt.Errorf("API error: %s", result.Error)
	}
	if strings.TrimSpace(result.Response) == "" {
		return ReviewResponse{}, fmt.Errorf("empty response text in API response")
	}

	return ReviewResponse{Content: result.Response, Model: o.model}, nil
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	NumPredict  int      `json:"num_predict,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}
