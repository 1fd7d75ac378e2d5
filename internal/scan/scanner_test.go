package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules_Order(t *testing.T) {
	want := []string{
		RuleMemoryLeak,
		RuleUnsafeFunction,
		RuleLongLine,
		RuleNamespaceStd,
		RuleGoto,
		RuleMagicNumber,
		RuleRawPointer,
		RuleEfficientContainer,
		RuleSmartPointer,
		RuleConstReference,
		RuleRangeBasedFor,
	}
	var got []string
	for _, r := range Default().Rules() {
		got = append(got, r.Name)
	}
	assert.Equal(t, want, got)
}

func TestScan_EmptyInput(t *testing.T) {
	got := Default().Report("")
	assert.Equal(t, reportTitle+noIssuesLine, got)
}

func TestScan_AllocationIsIssueNotRawPointer(t *testing.T) {
	line := "int *p = new int[10];"

	// Both rules match the line on their own.
	for _, r := range Default().Rules() {
		if r.Name == RuleMemoryLeak || r.Name == RuleRawPointer {
			assert.True(t, r.Pattern.MatchString(line), r.Name)
		}
	}

	res := Default().Scan(line)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, Finding{Line: 1, Rule: RuleMemoryLeak, Message: "Potential memory leak - new without delete"}, res.Issues[0])
	assert.Empty(t, res.Suggestions)
	assert.Empty(t, res.GoodPractices)
}

func TestScan_VectorOnlyIsGoodPracticeWithFallback(t *testing.T) {
	res := Default().Scan("std::vector<int> data;")
	require.Len(t, res.GoodPractices, 1)
	assert.Equal(t, 1, res.GoodPractices[0].Line)
	assert.Equal(t, RuleEfficientContainer, res.GoodPractices[0].Rule)
	assert.Empty(t, res.Issues)
	assert.Empty(t, res.Suggestions)

	want := reportTitle +
		practicesHeader +
		"- Line 1: Good: Using std::vector\n\n" +
		noIssuesLine
	assert.Equal(t, want, res.Render())
}

func TestScan_LongLine(t *testing.T) {
	long := "int total = " + strings.Repeat("value + ", 23) + "0;"
	long += strings.Repeat(" ", 200-len(long)-1) + ";"
	require.Len(t, long, 200)

	text := "int x = 1;\n\n" + long
	res := Default().Scan(text)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, Finding{Line: 3, Rule: RuleLongLine, Message: "Line too long (>120 characters)"}, res.Suggestions[0])
	assert.Empty(t, res.Issues)
}

func TestScan_LongLineMeasuredAfterTrim(t *testing.T) {
	line := strings.Repeat(" ", 50) + strings.Repeat("a", 100)
	res := Default().Scan(line)
	assert.Empty(t, res.Suggestions)
}

func TestScan_IndentationIgnored(t *testing.T) {
	res := Default().Scan("\t\t    goto done;   \r")
	require.Len(t, res.Issues, 1)
	assert.Equal(t, RuleGoto, res.Issues[0].Rule)
}

func TestScan_FirstMatchWins(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantRule string
		class    Class
	}{
		{"unsafe before magic number", "strcpy(buf, \"12345\");", RuleUnsafeFunction, ClassIssue},
		{"namespace", "using namespace std;", RuleNamespaceStd, ClassSuggestion},
		{"magic number before raw pointer", "int *timeout = 5000;", RuleMagicNumber, ClassSuggestion},
		{"raw pointer", "char *name = buffer;", RuleRawPointer, ClassSuggestion},
		{"smart pointer", "std::unique_ptr<Widget> w;", RuleSmartPointer, ClassGoodPractice},
		{"const reference", "void print(const std::string& s);", "", ""},
		{"const reference plain type", "void print(const Widget& w);", RuleConstReference, ClassGoodPractice},
		{"range for", "for (auto& item : items) {", RuleRangeBasedFor, ClassGoodPractice},
		{"two digit number", "int x = 42;", "", ""},
		{"gets is unsafe", "gets(line);", RuleUnsafeFunction, ClassIssue},
		{"allocation owned by smart pointer", "std::unique_ptr<int> p(new int);", RuleSmartPointer, ClassGoodPractice},
		{"shared pointer constructor", "std::shared_ptr<Node> n(new Node(1, 2));", RuleSmartPointer, ClassGoodPractice},
		{"array allocation", "int *p = new int[10];", RuleMemoryLeak, ClassIssue},
		{"new in comment", "// create a new object", RuleMemoryLeak, ClassIssue},
		{"renew is not new", "renew object;", "", ""},
		{"digits inside unicode identifier", "int é123 = 0;", "", ""},
		{"non-ascii decimal digits", "x = ١٢٣;", RuleMagicNumber, ClassSuggestion},
		{"unicode loop variable", "for (auto& élément : items) {", RuleRangeBasedFor, ClassGoodPractice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Default().Scan(tt.line)
			all := append(append(append([]Finding{}, res.Issues...), res.Suggestions...), res.GoodPractices...)
			if tt.wantRule == "" {
				assert.Empty(t, all)
				return
			}
			require.Len(t, all, 1)
			assert.Equal(t, tt.wantRule, all[0].Rule)

			var bucket []Finding
			switch tt.class {
			case ClassIssue:
				bucket = res.Issues
			case ClassSuggestion:
				bucket = res.Suggestions
			case ClassGoodPractice:
				bucket = res.GoodPractices
			}
			assert.Len(t, bucket, 1)
		})
	}
}

func TestScan_OrderDecidesAttribution(t *testing.T) {
	a := RuleSpec{Name: "a", Pattern: `foo`, Message: "A", Class: ClassSuggestion}
	b := RuleSpec{Name: "b", Pattern: `fo+`, Message: "B", Class: ClassIssue}

	s1, err := New([]RuleSpec{a, b}, Options{})
	require.NoError(t, err)
	res := s1.Scan("foo")
	assert.Len(t, res.Suggestions, 1)
	assert.Empty(t, res.Issues)

	s2, err := New([]RuleSpec{b, a}, Options{})
	require.NoError(t, err)
	res = s2.Scan("foo")
	assert.Len(t, res.Issues, 1)
	assert.Empty(t, res.Suggestions)
}

func TestRender_CapsEachBucket(t *testing.T) {
	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, "goto fail;")
	}
	for i := 0; i < 4; i++ {
		lines = append(lines, "std::vector<int> v;")
	}
	res := Default().Scan(strings.Join(lines, "\n"))
	require.Len(t, res.Issues, 5)
	require.Len(t, res.GoodPractices, 4)

	want := reportTitle +
		issuesHeader +
		"- Line 1: Avoid using goto statements\n" +
		"- Line 2: Avoid using goto statements\n" +
		"- Line 3: Avoid using goto statements\n\n" +
		practicesHeader +
		"- Line 6: Good: Using std::vector\n" +
		"- Line 7: Good: Using std::vector\n" +
		"- Line 8: Good: Using std::vector\n\n"
	assert.Equal(t, want, res.Render())
}

func TestRender_BucketOrder(t *testing.T) {
	text := strings.Join([]string{
		"std::shared_ptr<Node> n;",
		"int limit = 1000;",
		"scanf(\"%d\", &x);",
	}, "\n")
	out := Default().Report(text)

	iss := strings.Index(out, issuesHeader)
	sug := strings.Index(out, suggestionsHeader)
	good := strings.Index(out, practicesHeader)
	require.True(t, iss > 0 && sug > iss && good > sug, out)
	assert.Contains(t, out, "- Line 3: Unsafe function usage\n")
	assert.Contains(t, out, "- Line 2: Consider using named constants\n")
	assert.Contains(t, out, "- Line 1: Good: Using smart pointers\n")
	assert.NotContains(t, out, "No obvious issues")
}

func TestReport_Deterministic(t *testing.T) {
	text := "#include <vector>\nusing namespace std;\nint main() {\n  int *p = new int;\n  return 0;\n}\n"
	first := Default().Report(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Default().Report(text))
	}
}

func TestOptions_Thresholds(t *testing.T) {
	opts := Options{LongLineThreshold: 10, MagicNumberDigits: 2, MaxPerBucket: 1}
	s, err := New(DefaultRules(opts), opts)
	require.NoError(t, err)

	res := s.Scan("abcdefghijk\nx = 42;\ny = 77;")
	require.Len(t, res.Suggestions, 3)
	assert.Equal(t, "Line too long (>10 characters)", res.Suggestions[0].Message)
	assert.Equal(t, RuleMagicNumber, res.Suggestions[1].Rule)

	out := res.Render()
	assert.Equal(t, 1, strings.Count(out, "- Line"))
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, Options{}.Validate())
	assert.Error(t, Options{LongLineThreshold: 1001}.Validate())
	assert.Error(t, Options{MagicNumberDigits: -1}.Validate())
	assert.Error(t, Options{MaxPerBucket: -3}.Validate())
}

func TestNew_InvalidSpecs(t *testing.T) {
	tests := []struct {
		name  string
		specs []RuleSpec
	}{
		{"missing pattern", []RuleSpec{{Name: "x", Message: "m", Class: ClassIssue}}},
		{"bad class", []RuleSpec{{Name: "x", Pattern: "x", Message: "m", Class: "fatal"}}},
		{"bad regex", []RuleSpec{{Name: "x", Pattern: "(", Message: "m", Class: ClassIssue}}},
		{"duplicate", []RuleSpec{
			{Name: "x", Pattern: "x", Message: "m", Class: ClassIssue},
			{Name: "x", Pattern: "y", Message: "m", Class: ClassIssue},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.specs, Options{})
			assert.Error(t, err)
		})
	}
}

func TestAnalyze_InvalidUTF8(t *testing.T) {
	out := Default().Analyze([]byte{'i', 'n', 't', 0xff, 0xfe})
	assert.True(t, strings.HasPrefix(out, "Error reading file: "), out)
	assert.Contains(t, out, ErrInvalidUTF8.Error())
}

func TestAnalyze_ValidText(t *testing.T) {
	assert.Equal(t, Default().Report("goto x;"), Default().Analyze([]byte("goto x;")))
}

func TestReadError(t *testing.T) {
	err := &ReadError{Path: "main.cpp", Err: ErrInvalidUTF8}
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Equal(t, "reading main.cpp: content is not valid UTF-8", err.Error())
	assert.Equal(t, "Error reading file: reading main.cpp: content is not valid UTF-8", Describe(err))
}
