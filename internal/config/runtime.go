package config

import (
	"os"
	"strings"
)

// Environment variables read once at startup.
const (
	EnvHuggingFaceKey = "HUGGINGFACE_API_KEY"
	EnvOllamaHost     = "OLLAMA_HOST"
)

// Runtime holds process-wide values resolved from the environment, so that
// nothing downstream reads the environment itself.
type Runtime struct {
	HuggingFaceKey string
	OllamaURL      string
}

// Resolve reads the credential and local service location.
func Resolve(cfg Config) Runtime {
	host := os.Getenv(EnvOllamaHost)
	if host == "" {
		host = cfg.Local.Host
	}
	return Runtime{
		HuggingFaceKey: strings.TrimSpace(os.Getenv(EnvHuggingFaceKey)),
		OllamaURL:      NormalizeOllamaHost(host),
	}
}

// NormalizeOllamaHost turns an OLLAMA_HOST style value into a base URL.
// Trailing slashes and API paths are stripped, and a bare host:port gets an
// http scheme.
func NormalizeOllamaHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		host = "http://localhost:11434"
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	host = strings.TrimRight(host, "/")
	host = strings.TrimSuffix(host, "/api/generate")
	host = strings.TrimSuffix(host, "/api")
	return strings.TrimRight(host, "/")
}
