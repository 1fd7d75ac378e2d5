package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportPath(t *testing.T) {
	assert.Equal(t, "src/main.cpp.ai_analysis.md", ReportPath("src/main.cpp", ""))
	assert.Equal(t, "a.h.review.md", ReportPath("a.h", ".review.md"))
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, "main.cpp", []string{"first", "second"}))

	want := "# AI Analysis for main.cpp\n\n" +
		"first\n\n---\n\n" +
		"second\n\n---\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteMarkdown_NoReports(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, "x.cpp", nil))
	assert.Equal(t, "# AI Analysis for x.cpp\n\n", buf.String())
}

func TestWriteMarkdownFile_Truncates(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "main.cpp.ai_analysis.md")
	require.NoError(t, os.WriteFile(dest, []byte(strings.Repeat("stale content\n", 100)), 0o644))

	require.NoError(t, WriteMarkdownFile(dest, "main.cpp", []string{"fresh"}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "# AI Analysis for main.cpp\n\nfresh\n\n---\n\n", string(data))
}

func TestWriteMarkdownFile_Unwritable(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "no-such-dir", "out.md")
	err := WriteMarkdownFile(dest, "main.cpp", []string{"r"})
	assert.Error(t, err)
}

type failWriter struct{ after int }

func (f *failWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errors.New("disk full")
	}
	f.after--
	return len(p), nil
}

func TestWriteMarkdown_PropagatesWriteError(t *testing.T) {
	err := WriteMarkdown(&failWriter{after: 1}, "main.cpp", []string{"a", "b"})
	assert.EqualError(t, err, "disk full")
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	err := WriteConsole(&buf, Console{
		Reports:         []string{"🤖 Ollama (codellama:7b):\nfine", "📊 Pattern Analysis:\n\n"},
		SavedTo:         "main.cpp.ai_analysis.md",
		Recommendations: Recommendations(Hints{MissingRemoteKey: true}),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "🤖 ANALYSIS RESULTS\n")
	assert.Contains(t, out, "\n--- Analysis 1 ---\n🤖 Ollama (codellama:7b):\nfine\n"+strings.Repeat("-", 40)+"\n")
	assert.Contains(t, out, "\n--- Analysis 2 ---\n📊 Pattern Analysis:")
	assert.Contains(t, out, "💾 Results saved to: main.cpp.ai_analysis.md")
	assert.Contains(t, out, "- Set HUGGINGFACE_API_KEY")
	assert.NotContains(t, out, "Install Ollama")
	assert.Less(t, strings.Index(out, "Analysis 1"), strings.Index(out, "Analysis 2"))
}

func TestWriteConsole_NotSaved(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, Console{Reports: []string{"r"}}))
	assert.NotContains(t, buf.String(), "Results saved")
	assert.NotContains(t, buf.String(), "Recommendations")
}

func TestWriteBanner(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBanner(&buf, "main.cpp"))
	assert.Equal(t, "🔍 Analyzing file: main.cpp\n"+strings.Repeat("=", 60)+"\n", buf.String())
}

func TestRecommendations(t *testing.T) {
	assert.Equal(t, []string{"Use pattern analysis as a baseline check"}, Recommendations(Hints{}))

	all := Recommendations(Hints{MissingRemoteKey: true, LocalUnavailable: true})
	require.Len(t, all, 3)
	assert.Equal(t, "Install Ollama for local AI analysis", all[1])
}
