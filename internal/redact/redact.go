package redact

import "regexp"

// Placeholder replaces every detected secret.
const Placeholder = "[REDACTED]"

type pattern struct {
	name string
	re   *regexp.Regexp
}

// patterns run in order; earlier, more specific shapes win over the generic
// assignment heuristics below them.
var patterns = []pattern{
	{"private_key", regexp.MustCompile(`-----BEGIN\s+(?:RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`)},
	{"aws_access_key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"huggingface_token", regexp.MustCompile(`hf_[A-Za-z0-9]{30,}`)},
	{"github_token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`)},
	{"slack_token", regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`)},
	{"sk_key", regexp.MustCompile(`sk-(?:ant-)?[A-Za-z0-9_-]{20,}`)},
	{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`)},
	{"bearer", regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`)},
	{"url_credentials", regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://[^\s:/@"']+:[^\s@/"']+@`)},
	{"define_secret", regexp.MustCompile(`(?i)#\s*define\s+\w*(?:key|secret|token|passw(?:or)?d)\w*\s+"[^"]{8,}"`)},
	{"assigned_secret", regexp.MustCompile(`(?i)(?:api[_-]?key|secret|token|passw(?:or)?d|credential)\w*\s*(?:\[\s*\])?\s*[:=]\s*["'][^"']{8,}["']`)},
}

// Code replaces secret-shaped literals in text with [Placeholder] and
// returns the scrubbed text with the number of replacements made.
func Code(text string) (string, int) {
	count := 0
	for _, p := range patterns {
		text = p.re.ReplaceAllStringFunc(text, func(string) string {
			count++
			return Placeholder
		})
	}
	return text, count
}

// Names lists the detectors in evaluation order.
func Names() []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.name
	}
	return out
}
