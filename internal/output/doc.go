// Package output writes analysis reports.
//
// [WriteMarkdownFile] persists the reports next to the input file as
// "<input>.ai_analysis.md", truncating any earlier result. [WriteConsole]
// echoes the same reports to the terminal with a results banner, the saved
// path and follow-up recommendations.
package output
