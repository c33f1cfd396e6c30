// Package srt parses SubRip-style cue streams into plain cue text.
//
// The parser is a small state machine over lines: an integer index line, an
// unvalidated timing line, then text lines until a blank line flushes the cue.
// Sequence numbers and timestamps are discarded; only the dialogue text
// survives, which is all the fingerprinting core needs.
package srt
