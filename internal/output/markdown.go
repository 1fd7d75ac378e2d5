package output

import (
	"fmt"
	"io"
	"os"
)

const reportSeparator = "\n\n---\n\n"

// WriteMarkdown writes the report document for inputPath to w.
func WriteMarkdown(w io.Writer, inputPath string, reports []string) error {
	ew := &errWriter{w: w}
	ew.printf("# AI Analysis for %s\n\n", inputPath)
	for _, r := range reports {
		ew.printf("%s%s", r, reportSeparator)
	}
	return ew.err
}

// WriteMarkdownFile writes the report document to dest, replacing any
// existing content.
func WriteMarkdownFile(dest, inputPath string, reports []string) (err error) {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report file: %w", cerr)
		}
	}()
	if err := WriteMarkdown(f, inputPath, reports); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}
	return nil
}
