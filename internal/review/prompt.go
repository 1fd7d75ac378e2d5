package review

import (
	"fmt"
	"unicode/utf8"
)

// Characters of source embedded in each prompt.
const (
	RemoteMaxChars = 800
	LocalMaxChars  = 500
)

const remotePromptText = `Analyze this C++ code and provide a brief review:

%s

Focus on:
- Code quality
- Potential issues
- Suggestions for improvement

Keep response concise.`

const localPromptText = `Review this C++ code and provide feedback:

%s

Provide brief feedback on code quality and potential issues.`

// PromptFunc wraps a code excerpt in model instructions.
type PromptFunc func(code string) string

// RemotePrompt builds the prompt sent to the Hugging Face models.
func RemotePrompt(code string) string {
	return fmt.Sprintf(remotePromptText, code)
}

// LocalPrompt builds the prompt sent to Ollama.
func LocalPrompt(code string) string {
	return fmt.Sprintf(localPromptText, code)
}

// Truncate returns the first n characters of s. n <= 0 means no limit.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
