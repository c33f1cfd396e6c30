// Package fpcache is the SQLite-backed fingerprint cache.
//
// Fingerprinting a subtitle file is a pure function of its content, so sets
// are cached keyed by path plus size and mtime and reused on later runs. The
// cache is optional: the corpus builder works identically without one.
package fpcache
