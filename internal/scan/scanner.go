package scan

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Finding is a single rule match on a single line.
type Finding struct {
	Line    int
	Rule    string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("Line %d: %s", f.Line, f.Message)
}

// Result holds the findings of one scan, bucketed by class in scan order.
type Result struct {
	Issues        []Finding
	Suggestions   []Finding
	GoodPractices []Finding

	maxPerBucket int
}

// Scanner evaluates an ordered rule table against source text.
type Scanner struct {
	rules        []Rule
	maxPerBucket int
}

// New compiles specs into a Scanner. Rules are evaluated in the order given.
func New(specs []RuleSpec, opts Options) (*Scanner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rules, err := compileRules(specs)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		rules:        rules,
		maxPerBucket: opts.withDefaults().MaxPerBucket,
	}, nil
}

// Default returns a Scanner over the built-in rules with default thresholds.
func Default() *Scanner {
	s, err := New(DefaultRules(DefaultOptions()), DefaultOptions())
	if err != nil {
		panic(err)
	}
	return s
}

// Rules returns the compiled rules in evaluation order.
func (s *Scanner) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Scan classifies every line of text. A line contributes at most one finding,
// attributed to the first rule that matches its trimmed content.
func (s *Scanner) Scan(text string) Result {
	res := Result{maxPerBucket: s.maxPerBucket}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, r := range s.rules {
			if !r.Pattern.MatchString(line) {
				continue
			}
			f := Finding{Line: i + 1, Rule: r.Name, Message: r.Message}
			switch r.Class {
			case ClassIssue:
				res.Issues = append(res.Issues, f)
			case ClassSuggestion:
				res.Suggestions = append(res.Suggestions, f)
			case ClassGoodPractice:
				res.GoodPractices = append(res.GoodPractices, f)
			}
			break
		}
	}
	return res
}

// Report scans text and renders the result.
func (s *Scanner) Report(text string) string {
	return s.Scan(text).Render()
}

// Analyze renders a report for raw file content. Content that is not valid
// UTF-8 yields the description of a ReadError instead of a report.
func (s *Scanner) Analyze(data []byte) string {
	if !utf8.Valid(data) {
		return Describe(&ReadError{Err: ErrInvalidUTF8})
	}
	return s.Report(string(data))
}

const (
	reportTitle       = "📊 Pattern Analysis:\n\n"
	issuesHeader      = "🚨 Issues Found:\n"
	suggestionsHeader = "💡 Suggestions:\n"
	practicesHeader   = "✅ Good Practices:\n"
	noIssuesLine      = "✅ No obvious issues found. Code follows basic C++ practices.\n\n"
)

// Render returns the human-readable summary. Each bucket lists at most the
// first few findings in scan order. The "no obvious issues" line is emitted
// whenever there are neither issues nor suggestions, regardless of good
// practices.
func (r Result) Render() string {
	limit := r.maxPerBucket
	if limit <= 0 {
		limit = DefaultMaxPerBucket
	}

	var b strings.Builder
	b.WriteString(reportTitle)
	writeBucket(&b, issuesHeader, r.Issues, limit)
	writeBucket(&b, suggestionsHeader, r.Suggestions, limit)
	writeBucket(&b, practicesHeader, r.GoodPractices, limit)
	if len(r.Issues) == 0 && len(r.Suggestions) == 0 {
		b.WriteString(noIssuesLine)
	}
	return b.String()
}

func writeBucket(b *strings.Builder, header string, findings []Finding, limit int) {
	if len(findings) == 0 {
		return
	}
	b.WriteString(header)
	for i, f := range findings {
		if i == limit {
			break
		}
		fmt.Fprintf(b, "- %s\n", f)
	}
	b.WriteString("\n")
}

// ErrInvalidUTF8 is wrapped by a ReadError when the input is not valid text.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// ReadError reports input that could not be read or decoded as text.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return "reading input: " + e.Err.Error()
	}
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Describe renders err as the text that replaces the scanner's report.
func Describe(err error) string {
	return fmt.Sprintf("Error reading file: %v", err)
}
