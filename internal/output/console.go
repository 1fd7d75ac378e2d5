package output

import (
	"io"
	"strings"
)

var (
	heavyRule = strings.Repeat("=", 60)
	lightRule = strings.Repeat("-", 40)
)

// Console is what the terminal summary shows after a run.
type Console struct {
	Reports []string
	// SavedTo is the report file path; empty when the file was not written.
	SavedTo         string
	Recommendations []string
}

// WriteBanner announces the file about to be analyzed.
func WriteBanner(w io.Writer, path string) error {
	ew := &errWriter{w: w}
	ew.printf("🔍 Analyzing file: %s\n", path)
	ew.println(heavyRule)
	return ew.err
}

// WriteConsole prints each report under a numbered heading, then the saved
// path and the recommendations.
func WriteConsole(w io.Writer, c Console) error {
	ew := &errWriter{w: w}
	ew.println("\n" + heavyRule)
	ew.println("🤖 ANALYSIS RESULTS")
	ew.println(heavyRule)

	for i, r := range c.Reports {
		ew.printf("\n--- Analysis %d ---\n", i+1)
		ew.println(r)
		ew.println(lightRule)
	}

	if c.SavedTo != "" {
		ew.printf("\n💾 Results saved to: %s\n", c.SavedTo)
	}
	if len(c.Recommendations) > 0 {
		ew.println("\n💡 Recommendations:")
		for _, r := range c.Recommendations {
			ew.printf("- %s\n", r)
		}
	}
	return ew.err
}

// Hints selects which recommendations apply to a run.
type Hints struct {
	MissingRemoteKey bool
	LocalUnavailable bool
}

// Recommendations returns the follow-up advice for a run. The baseline note
// about pattern analysis is always included.
func Recommendations(h Hints) []string {
	var out []string
	if h.MissingRemoteKey {
		out = append(out, "Set HUGGINGFACE_API_KEY for a better analysis")
	}
	if h.LocalUnavailable {
		out = append(out, "Install Ollama for local AI analysis")
	}
	return append(out, "Use pattern analysis as a baseline check")
}
