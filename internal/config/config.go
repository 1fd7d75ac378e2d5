package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dshills/srclens/internal/logging"
	"github.com/dshills/srclens/internal/scan"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides, e.g. SRCLENS_SCAN_LONG_LINE_THRESHOLD.
const EnvPrefix = "SRCLENS_"

// Config represents the srclens configuration.
type Config struct {
	Extensions []string       `yaml:"extensions"`
	Remote     RemoteConfig   `yaml:"remote"`
	Local      LocalConfig    `yaml:"local"`
	Scan       ScanConfig     `yaml:"scan"`
	Output     OutputConfig   `yaml:"output"`
	Log        logging.Config `yaml:"log"`
	Cache      CacheConfig    `yaml:"cache"`
	Privacy    PrivacyConfig  `yaml:"privacy"`
}

// RemoteConfig controls the Hugging Face analyzer.
type RemoteConfig struct {
	Enabled      bool          `yaml:"enabled"`
	BaseURL      string        `yaml:"base_url"`
	Models       []string      `yaml:"models"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxChars     int           `yaml:"max_chars"`
	MaxNewTokens int           `yaml:"max_new_tokens"`
	Temperature  float64       `yaml:"temperature"`
}

// LocalConfig controls the Ollama analyzer.
type LocalConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Host     string        `yaml:"host"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
	MaxChars int           `yaml:"max_chars"`
}

// ScanConfig controls the pattern scanner.
type ScanConfig struct {
	LongLineThreshold int    `yaml:"long_line_threshold"`
	MagicNumberDigits int    `yaml:"magic_number_digits"`
	MaxPerBucket      int    `yaml:"max_per_bucket"`
	RulesFile         string `yaml:"rules_file"`
}

// OutputConfig controls where and how reports are emitted.
type OutputConfig struct {
	Suffix string `yaml:"suffix"`
	Quiet  bool   `yaml:"quiet"`
}

// CacheConfig controls caching of model responses.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// PrivacyConfig controls redaction of code sent to model backends.
type PrivacyConfig struct {
	RedactSecrets bool `yaml:"redact_secrets"`
}

// DefaultYAML is the built-in configuration and the content written by "config init".
const DefaultYAML = `# srclens configuration
extensions: [".cpp", ".h", ".hpp", ".cc", ".cxx"]

remote:
  # Hugging Face Inference API; requires HUGGINGFACE_API_KEY.
  enabled: true
  base_url: https://api-inference.huggingface.co/models
  models: ["microsoft/DialoGPT-medium", "gpt2", "distilgpt2"]
  timeout: 30s
  max_chars: 800
  max_new_tokens: 300
  temperature: 0.3

local:
  # Ollama; OLLAMA_HOST overrides host.
  enabled: true
  host: http://localhost:11434
  model: codellama:7b
  timeout: 60s
  max_chars: 500

scan:
  long_line_threshold: 120
  magic_number_digits: 3
  max_per_bucket: 3
  rules_file: ""

output:
  suffix: .ai_analysis.md
  quiet: false

log:
  level: info
  format: console

cache:
  enabled: false
  dir: ""
  ttl_seconds: 86400

privacy:
  redact_secrets: true
`

// Default returns a Config with all defaults applied.
func Default() Config {
	k, err := defaults()
	if err != nil {
		panic(err)
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(err)
	}
	return cfg
}

func defaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(DefaultYAML)), kyaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	return k, nil
}

func unmarshal(k *koanf.Koanf) (Config, error) {
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Extensions = splitLists(cfg.Extensions)
	cfg.Remote.Models = splitLists(cfg.Remote.Models)
	return cfg, nil
}

// splitLists expands comma-separated entries, which is how list values
// arrive from the environment.
func splitLists(in []string) []string {
	var out []string
	for _, v := range in {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// ConfigDir returns the platform-appropriate config directory for srclens.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "srclens"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "srclens"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "srclens"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "srclens"), nil
	default:
		return filepath.Join(home, ".config", "srclens"), nil
	}
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
//
// An empty path selects [ConfigPath]; a missing file at the default path is
// not an error, but an explicitly named file must exist. Override keys are
// dotted koanf paths ("remote.enabled", "scan.rules_file") and come from CLI
// flags.
func Load(path string, overrides map[string]any) (Config, error) {
	k, err := defaults()
	if err != nil {
		return Config{}, err
	}
	known := k.Copy()

	explicit := path != ""
	if !explicit {
		if path, err = ConfigPath(); err != nil {
			return Config{}, err
		}
	}
	if err := loadFile(k, path, explicit); err != nil {
		return Config{}, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := envKey(s)
		if !known.Exists(key) {
			return ""
		}
		return key
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	for key, v := range overrides {
		if !known.Exists(key) {
			return Config{}, fmt.Errorf("unknown config key: %s", key)
		}
		if err := k.Set(key, v); err != nil {
			return Config{}, fmt.Errorf("applying override %s: %w", key, err)
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string, mustExist bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := k.Load(rawbytes.Provider(data), kyaml.Parser()); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// envKey maps SRCLENS_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// Validate checks values that would otherwise fail later in the run.
func (c Config) Validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions: at least one extension is required")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extensions: %q must start with a dot", ext)
		}
	}
	if c.Remote.Enabled && len(c.Remote.Models) == 0 {
		return fmt.Errorf("remote.models: at least one model is required when remote is enabled")
	}
	if c.Remote.Timeout <= 0 || c.Local.Timeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.Local.Enabled && c.Local.Model == "" {
		return fmt.Errorf("local.model is required when local is enabled")
	}
	if err := c.ScanOptions().Validate(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.Output.Suffix == "" {
		return fmt.Errorf("output.suffix must not be empty")
	}
	return nil
}

// ScanOptions converts the scan section into scanner thresholds.
func (c Config) ScanOptions() scan.Options {
	return scan.Options{
		LongLineThreshold: c.Scan.LongLineThreshold,
		MagicNumberDigits: c.Scan.MagicNumberDigits,
		MaxPerBucket:      c.Scan.MaxPerBucket,
	}
}

// SupportsExtension reports whether path ends in one of the allowed extensions.
func (c Config) SupportsExtension(path string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
