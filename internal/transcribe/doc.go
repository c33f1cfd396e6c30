// Package transcribe models the external speech-to-text step as a capability
// interface so the matching core can run against canned subtitle fixtures.
//
// The Whisper implementation shells out to ffmpeg and whisper, is idempotent
// (an existing transcript short-circuits the tools), and reports conversion
// failures as ErrUnavailable so callers can skip the file without failing the
// run.
package transcribe
