// Package cli wires together the Cobra command tree for the srclens binary.
//
// The root command analyzes a single C++ source file; subcommands manage the
// configuration file, list the effective pattern rules and inspect the
// response cache. [Run] returns the process exit code: 0 on success, 1 for
// usage or configuration errors and 2 when the report file cannot be written.
package cli
