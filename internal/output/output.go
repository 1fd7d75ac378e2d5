package output

import (
	"fmt"
	"io"
)

// DefaultSuffix is appended to the input path to name the report file.
const DefaultSuffix = ".ai_analysis.md"

// ReportPath returns the destination for the analysis of inputPath.
func ReportPath(inputPath, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return inputPath + suffix
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
