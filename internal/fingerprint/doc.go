// Package fingerprint converts subtitle cue text into content fingerprints.
//
// A file's dialogue is segmented into sentences with a Punkt model, each
// sentence is reduced to a canonical form (lowercased UAX#29 word tokens with
// punctuation stripped, space-joined), and the SHA-256 digest of that form
// becomes the sentence's identity. The resulting digest Set is order-free and
// duplicate-free, which makes two transcripts comparable by set overlap while
// tolerating casing and punctuation noise from speech-to-text output.
package fingerprint
