// Package config loads and merges srclens configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (SRCLENS_SCAN_LONG_LINE_THRESHOLD, SRCLENS_LOCAL_MODEL, etc.)
//  3. Config file ($XDG_CONFIG_HOME/srclens/config.yaml)
//  4. Built-in defaults ([DefaultYAML])
//
// Use [Load] to obtain a merged [Config], [Init] to write a default config
// file, and [Set] to update a single key in the config file. The credential
// and the Ollama host are read once by [Resolve].
package config
