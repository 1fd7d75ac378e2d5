// Package redact scrubs secret-shaped literals from source code before it is
// embedded in a prompt for a model backend.
//
// Detection is a table of named regex heuristics: API keys and tokens in
// assignments or #define macros, AWS and Hugging Face keys, bearer tokens,
// JWTs, private key headers and credentials embedded in connection strings.
// Matches are replaced with [REDACTED]; the surrounding code is untouched so
// the model still sees the shape of the program.
package redact
