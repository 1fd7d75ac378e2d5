package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// Init writes the default configuration to path. It refuses to overwrite an
// existing file.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, []byte(DefaultYAML), 0o644)
}

// Set updates a single dotted key in the config file at path, creating the
// file from defaults if needed. The resulting file must still validate.
func Set(path, key, value string) error {
	known, err := defaults()
	if err != nil {
		return err
	}
	if !known.Exists(key) || isSection(known, key) {
		return fmt.Errorf("unknown config key: %s", key)
	}

	k := koanf.New(".")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		data = []byte(DefaultYAML)
	default:
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := k.Load(rawbytes.Provider(data), kyaml.Parser()); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	var v any = value
	if _, isList := known.Get(key).([]any); isList {
		v = splitLists([]string{value})
	}
	if err := k.Set(key, v); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	merged, err := defaults()
	if err != nil {
		return err
	}
	if err := merged.Merge(k); err != nil {
		return err
	}
	cfg, err := unmarshal(merged)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := k.Marshal(kyaml.Parser())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}

func isSection(k *koanf.Koanf, key string) bool {
	_, ok := k.Get(key).(map[string]any)
	return ok
}

// Marshal renders cfg as YAML, as shown by "config show".
func Marshal(cfg Config) (string, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}
