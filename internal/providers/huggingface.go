package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultHuggingFaceURL = "https://api-inference.huggingface.co/models"
	huggingFaceTimeout    = 30 * time.Second
)

// DefaultHuggingFaceModels are tried in order until one answers.
var DefaultHuggingFaceModels = []string{"microsoft/DialoGPT-medium", "gpt2", "distilgpt2"}

// HuggingFace implements the Reviewer interface for the Hugging Face Inference API.
type HuggingFace struct {
	apiKey  string
	models  []string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewHuggingFace creates a new Hugging Face provider. An API key is required.
func NewHuggingFace(opts Options) (*HuggingFace, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("hugging face: %w", ErrMissingCredential)
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultHuggingFaceURL
	}
	models := opts.Models
	if len(models) == 0 {
		models = DefaultHuggingFaceModels
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: huggingFaceTimeout}
	}
	return &HuggingFace{
		apiKey:  opts.APIKey,
		models:  models,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     logger(opts.Logger),
	}, nil
}

func (h *HuggingFace) Name() string { return "huggingface" }

func (h *HuggingFace) Model() string { return strings.Join(h.models, ",") }

// Review asks each model in turn and returns the first usable answer. An
// authentication failure stops the walk since every model shares the key.
func (h *HuggingFace) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	body := hfRequest{
		Inputs: req.Prompt,
		Parameters: hfParameters{
			MaxNewTokens: req.MaxTokens,
			Temperature:  req.Temperature,
			DoSample:     true,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	var errs []error
	for _, model := range h.models {
		h.log.Info("trying model", zap.String("provider", h.Name()), zap.String("model", model))

		text, err := h.generate(ctx, model, payload)
		if err == nil {
			return ReviewResponse{Content: text, Model: model}, nil
		}
		h.log.Debug("model failed", zap.String("model", model), zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", model, err))
		if IsAuthError(err) || ctx.Err() != nil {
			break
		}
	}
	return ReviewResponse{}, errors.Join(errs...)
}

func (h *HuggingFace) generate(ctx context.Context, model string, payload []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+model, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)

	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := readBody(httpResp)
	if err != nil {
		return "", err
	}
	if err := checkStatus(httpResp, respBody); err != nil {
		return "", err
	}
	return parseGeneratedText(respBody)
}

// parseGeneratedText accepts both response shapes the inference API uses:
// a list of generations or a single object.
func parseGeneratedText(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("empty response body")
	}

	var gen hfGeneration
	if trimmed[0] == '[' {
		var list []hfGeneration
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return "", fmt.Errorf("parsing response: %w", err)
		}
		if len(list) == 0 {
			return "", fmt.Errorf("no generations in response")
		}
		gen = list[0]
	} else if err := json.Unmarshal(trimmed, &gen); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	if gen.Error != "" {
		return "", fmt.Errorf("API error: %s", gen.Error)
	}
	if strings.TrimSpace(gen.GeneratedText) == "" {
		return "", fmt.Errorf("empty generated_text in API response")
	}
	return gen.GeneratedText, nil
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	DoSample     bool    `json:"do_sample"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
	Error         string `json:"error"`
}
