// Package review runs one analysis of a source file.
//
// A [Pipeline] reads the input once, hands it to each configured [Analyzer]
// in order (the remote Hugging Face model, then the local Ollama model) and
// always finishes with the heuristic pattern scanner report. Analyzers never
// fail the run: any error is logged and the analyzer simply contributes no
// report.
//
// Prompts embed only the head of the file (800 characters remote, 500
// local). Secret-shaped literals are redacted before the code leaves the
// process, and responses can be cached on disk keyed by provider, model and
// prompt.
package review
