package scan

import (
	"fmt"
	"regexp"
	"strings"
)

// Class is the bucket a rule's findings are routed to.
type Class string

const (
	ClassIssue        Class = "issue"
	ClassSuggestion   Class = "suggestion"
	ClassGoodPractice Class = "good-practice"
)

// ParseClass validates a class name read from configuration.
func ParseClass(s string) (Class, error) {
	switch c := Class(strings.ToLower(strings.TrimSpace(s))); c {
	case ClassIssue, ClassSuggestion, ClassGoodPractice:
		return c, nil
	default:
		return "", fmt.Errorf("unknown rule class %q (want issue, suggestion or good-practice)", s)
	}
}

// Built-in rule names.
const (
	RuleMemoryLeak         = "memory_leak"
	RuleUnsafeFunction     = "unsafe_function"
	RuleLongLine           = "long_line"
	RuleNamespaceStd       = "namespace_std"
	RuleGoto               = "goto"
	RuleMagicNumber        = "magic_number"
	RuleRawPointer         = "raw_pointer"
	RuleEfficientContainer = "efficient_container"
	RuleSmartPointer       = "smart_pointer"
	RuleConstReference     = "const_reference"
	RuleRangeBasedFor      = "range_based_for"
)

// RuleSpec declares a rule before its pattern is compiled.
type RuleSpec struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
	Class   Class  `yaml:"class"`
}

// Rule is a compiled RuleSpec.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Message string
	Class   Class
}

// Options holds the tunable thresholds of the default rule table and the
// report cap. Zero fields take the defaults.
type Options struct {
	LongLineThreshold int
	MagicNumberDigits int
	MaxPerBucket      int
}

const (
	DefaultLongLineThreshold = 120
	DefaultMagicNumberDigits = 3
	DefaultMaxPerBucket      = 3

	// RE2 rejects repeat counts above 1000.
	maxRepeat = 1000
)

// DefaultOptions returns the default thresholds.
func DefaultOptions() Options {
	return Options{
		LongLineThreshold: DefaultLongLineThreshold,
		MagicNumberDigits: DefaultMagicNumberDigits,
		MaxPerBucket:      DefaultMaxPerBucket,
	}
}

func (o Options) withDefaults() Options {
	if o.LongLineThreshold == 0 {
		o.LongLineThreshold = DefaultLongLineThreshold
	}
	if o.MagicNumberDigits == 0 {
		o.MagicNumberDigits = DefaultMagicNumberDigits
	}
	if o.MaxPerBucket == 0 {
		o.MaxPerBucket = DefaultMaxPerBucket
	}
	return o
}

// Validate reports thresholds that cannot be turned into a pattern.
func (o Options) Validate() error {
	o = o.withDefaults()
	if o.LongLineThreshold < 1 || o.LongLineThreshold > maxRepeat {
		return fmt.Errorf("long line threshold must be between 1 and %d, got %d", maxRepeat, o.LongLineThreshold)
	}
	if o.MagicNumberDigits < 1 || o.MagicNumberDigits > maxRepeat {
		return fmt.Errorf("magic number digits must be between 1 and %d, got %d", maxRepeat, o.MagicNumberDigits)
	}
	if o.MaxPerBucket < 1 {
		return fmt.Errorf("max findings per bucket must be positive, got %d", o.MaxPerBucket)
	}
	return nil
}

// DefaultRules returns the built-in rule table in evaluation order.
//
// Order is part of the contract: a line is attributed to the first rule that
// matches it, so memory_leak must precede raw_pointer for "int *p = new int;"
// to be reported as an issue. An allocation handed straight to a constructor,
// as in "std::unique_ptr<int> p(new int);", is not a bare new and falls
// through to smart_pointer.
func DefaultRules(opts Options) []RuleSpec {
	opts = opts.withDefaults()
	return []RuleSpec{
		{RuleMemoryLeak, wordStart + `new\s+` + word + `+[^;)]*;?\s*$`, "Potential memory leak - new without delete", ClassIssue},
		{RuleUnsafeFunction, `(strcpy|strcat|gets|scanf)\s*\(`, "Unsafe function usage", ClassIssue},
		{RuleLongLine, fmt.Sprintf(`.{%d,}`, opts.LongLineThreshold),
			fmt.Sprintf("Line too long (>%d characters)", opts.LongLineThreshold), ClassSuggestion},
		{RuleNamespaceStd, `using\s+namespace\s+std;`, "Avoid using namespace std in headers", ClassSuggestion},
		{RuleGoto, `goto\s+` + word + `+`, "Avoid using goto statements", ClassIssue},
		{RuleMagicNumber, fmt.Sprintf(`%s\p{Nd}{%d,}%s`, wordStart, opts.MagicNumberDigits, wordEnd), "Consider using named constants", ClassSuggestion},
		{RuleRawPointer, word + `+\s*\*\s*` + word + `+\s*=`, "Consider using smart pointers", ClassSuggestion},
		{RuleEfficientContainer, `std::vector<` + word + `+>\s+` + word + `+\s*;`, "Good: Using std::vector", ClassGoodPractice},
		{RuleSmartPointer, `std::(unique_ptr|shared_ptr)<` + word + `+>`, "Good: Using smart pointers", ClassGoodPractice},
		{RuleConstReference, `const\s+` + word + `+&\s+` + word + `+`, "Good: Using const references", ClassGoodPractice},
		{RuleRangeBasedFor, `for\s*\(\s*auto\s*&?\s*` + word + `+\s*:`, "Good: Using range-based for loop", ClassGoodPractice},
	}
}

// RE2's \w, \d and \b are ASCII-only; identifiers and digits in the
// built-in rules follow Unicode letters and numbers instead.
const (
	word      = `[\pL\pN_]`
	wordStart = `(?:^|[^\pL\pN_])`
	wordEnd   = `(?:[^\pL\pN_]|$)`
)

func compileRules(specs []RuleSpec) ([]Rule, error) {
	seen := make(map[string]bool, len(specs))
	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		if s.Name == "" || s.Pattern == "" || s.Message == "" {
			return nil, fmt.Errorf("rule %q: name, pattern and message are required", s.Name)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate rule name %q", s.Name)
		}
		seen[s.Name] = true

		class, err := ParseClass(string(s.Class))
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", s.Name, err)
		}
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: compiling pattern: %w", s.Name, err)
		}
		rules = append(rules, Rule{
			Name:    s.Name,
			Pattern: re,
			Message: s.Message,
			Class:   class,
		})
	}
	return rules, nil
}
