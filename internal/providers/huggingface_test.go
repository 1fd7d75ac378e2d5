package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHuggingFace(t *testing.T, models []string, handler http.HandlerFunc) *HuggingFace {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	h, err := NewHuggingFace(Options{
		APIKey:  "hf_test",
		BaseURL: server.URL,
		Models:  models,
		Client:  server.Client(),
	})
	require.NoError(t, err)
	return h
}

func TestHuggingFace_ReviewListResponse(t *testing.T) {
	h := newTestHuggingFace(t, []string{"gpt2"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gpt2", r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))

		var req hfRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		assert.Equal(t, "prompt", req.Inputs)
		assert.Equal(t, hfParameters{MaxNewTokens: 300, Temperature: 0.3, DoSample: true}, req.Parameters)

		w.Write([]byte(`[{"generated_text":"Use RAII."}]`))
	})

	resp, err := h.Review(context.Background(), ReviewRequest{Prompt: "prompt", MaxTokens: 300, Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "Use RAII.", resp.Content)
	assert.Equal(t, "gpt2", resp.Model)
}

func TestHuggingFace_ReviewObjectResponse(t *testing.T) {
	h := newTestHuggingFace(t, []string{"gpt2"}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"generated_text":"Fine."}`))
	})
	resp, err := h.Review(context.Background(), ReviewRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "Fine.", resp.Content)
}

func TestHuggingFace_FallsBackToNextModel(t *testing.T) {
	var tried []string
	h := newTestHuggingFace(t, []string{"org/first", "second", "third"}, func(w http.ResponseWriter, r *http.Request) {
		tried = append(tried, strings.TrimPrefix(r.URL.Path, "/"))
		switch r.URL.Path {
		case "/org/first":
			w.WriteHeader(503)
			w.Write([]byte(`{"error":"Model is currently loading"}`))
		case "/second":
			w.Write([]byte(`[]`))
		default:
			w.Write([]byte(`[{"generated_text":"third wins"}]`))
		}
	})

	resp, err := h.Review(context.Background(), ReviewRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, ReviewResponse{Content: "third wins", Model: "third"}, resp)
	assert.Equal(t, []string{"org/first", "second", "third"}, tried)
}

func TestHuggingFace_AllModelsFail(t *testing.T) {
	h := newTestHuggingFace(t, []string{"a", "b"}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text":"   "}]`))
	})
	_, err := h.Review(context.Background(), ReviewRequest{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a:")
	assert.Contains(t, err.Error(), "b:")
}

func TestHuggingFace_AuthErrorStopsEarly(t *testing.T) {
	attempts := 0
	h := newTestHuggingFace(t, []string{"a", "b", "c"}, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(401)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	})
	_, err := h.Review(context.Background(), ReviewRequest{Prompt: "p"})
	assert.True(t, IsAuthError(err), "got %v", err)
	assert.Equal(t, 1, attempts)
}

func TestNewHuggingFace_MissingKey(t *testing.T) {
	_, err := NewHuggingFace(Options{})
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestNewHuggingFace_Defaults(t *testing.T) {
	h, err := NewHuggingFace(Options{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "huggingface", h.Name())
	assert.Equal(t, "microsoft/DialoGPT-medium,gpt2,distilgpt2", h.Model())
	assert.Equal(t, defaultHuggingFaceURL, h.baseURL)
}

func TestParseGeneratedText(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"list", `[{"generated_text":"x"}]`, "x", false},
		{"object", `{"generated_text":"y"}`, "y", false},
		{"empty list", `[]`, "", true},
		{"missing text", `[{}]`, "", true},
		{"error object", `{"error":"loading"}`, "", true},
		{"empty body", ``, "", true},
		{"garbage", `nope`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGeneratedText([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFactory(t *testing.T) {
	_, err := New("unknown", Options{})
	assert.Error(t, err)

	r, err := New("ollama", Options{})
	require.NoError(t, err)
	assert.Equal(t, "ollama", r.Name())

	for _, name := range []string{"huggingface", "hf"} {
		r, err := New(name, Options{APIKey: "k"})
		require.NoError(t, err, name)
		assert.Equal(t, "huggingface", r.Name(), name)
	}

	_, err = New("hf", Options{})
	assert.ErrorIs(t, err, ErrMissingCredential)
}
