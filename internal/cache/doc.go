// Package cache stores model responses on disk so that re-running srclens on
// an unchanged file does not repeat slow remote calls.
//
// Entries are keyed by a SHA-256 hash of the provider name, the model and the
// final prompt (after redaction), one JSON file per entry. Expired entries are
// treated as misses and removed on read. The default directory is
// $XDG_CACHE_HOME/srclens or the OS-appropriate equivalent.
package cache
