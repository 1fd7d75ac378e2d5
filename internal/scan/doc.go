// Package scan implements the heuristic pattern scanner.
//
// A [Scanner] holds an ordered table of regex rules. Each line of the input is
// whitespace-trimmed and tested against the rules in declaration order; the
// first matching rule records a single [Finding] and evaluation stops for that
// line. Findings land in one of three buckets (issues, suggestions, good
// practices) and [Result.Render] produces a capped, human-readable summary.
//
// The default rule table is returned by [DefaultRules]. A YAML rule pack (see
// [LoadPack]) can disable built-in rules by name and append extra ones.
//
// The scanner performs no I/O and depends on nothing but its input, so the
// same text always yields the same report.
package scan
