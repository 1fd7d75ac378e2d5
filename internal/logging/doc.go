// Package logging builds the zap logger used across srclens.
//
// Logs go to stderr so that the analysis report printed on stdout stays
// clean. The console encoder is the default; "json" selects the JSON encoder.
package logging
