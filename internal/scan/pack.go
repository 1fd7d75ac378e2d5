package scan

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pack is a rule pack loaded from --rules.
//
//	disable: [magic_number]
//	rules:
//	  - name: printf_format
//	    pattern: 'printf\s*\(\s*\w+\s*\)'
//	    message: Non-literal format string
//	    class: issue
type Pack struct {
	Disable []string   `yaml:"disable,omitempty"`
	Rules   []RuleSpec `yaml:"rules,omitempty"`
}

// LoadPack loads a rule pack from disk. Returns nil Pack and nil error if path is empty.
func LoadPack(path string) (*Pack, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	return &pack, nil
}

// Apply removes the disabled rules from specs and appends the pack's own
// rules after the remaining ones. Relative order is preserved.
func (p *Pack) Apply(specs []RuleSpec) ([]RuleSpec, error) {
	if p == nil {
		return specs, nil
	}

	known := make(map[string]bool, len(specs))
	for _, s := range specs {
		known[s.Name] = true
	}
	disabled := make(map[string]bool, len(p.Disable))
	for _, name := range p.Disable {
		name = strings.TrimSpace(name)
		if !known[name] {
			return nil, fmt.Errorf("cannot disable unknown rule %q", name)
		}
		disabled[name] = true
	}

	out := make([]RuleSpec, 0, len(specs)+len(p.Rules))
	for _, s := range specs {
		if !disabled[s.Name] {
			out = append(out, s)
		}
	}
	return append(out, p.Rules...), nil
}

// Build returns a Scanner for the built-in rules adjusted by the pack at path.
func Build(opts Options, packPath string) (*Scanner, error) {
	pack, err := LoadPack(packPath)
	if err != nil {
		return nil, err
	}
	specs, err := pack.Apply(DefaultRules(opts))
	if err != nil {
		return nil, fmt.Errorf("applying rules file: %w", err)
	}
	return New(specs, opts)
}
