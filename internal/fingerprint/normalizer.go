package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/words"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Error reports a normalization failure for one file. The file is excluded
// from its corpus; the run continues with the remaining files.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fingerprint %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Normalizer turns the ordered cue text of one file into a Set of canonical
// sentence digests. The sentence tokenizer is trained once at construction;
// Fingerprint only reads it, so a Normalizer is safe for concurrent use.
type Normalizer struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewNormalizer constructs a Normalizer backed by the English Punkt model.
func NewNormalizer() (*Normalizer, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, &Error{Op: "load sentence model", Err: err}
	}
	return &Normalizer{tokenizer: tokenizer}, nil
}

// Fingerprint concatenates the cue strings into one blob, segments it into
// sentences, canonicalizes each sentence, and returns the set of SHA-256
// digests. Cue boundaries carry no meaning: a sentence may span cues and a
// cue may hold several sentences. Sentences that canonicalize to nothing
// contribute no fingerprint.
func (n *Normalizer) Fingerprint(cues []string) (Set, error) {
	set := NewSet()
	blob := strings.TrimSpace(strings.Join(cues, " "))
	if blob == "" {
		return set, nil
	}
	for _, sentence := range n.tokenizer.Tokenize(blob) {
		canonical, err := canonicalize(sentence.Text)
		if err != nil {
			return nil, &Error{Op: "tokenize sentence", Err: err}
		}
		if canonical == "" {
			continue
		}
		set.Add(digest(canonical))
	}
	return set, nil
}

// canonicalize tokenizes a sentence per UAX#29, lowercases each token, strips
// punctuation, drops empties, and rejoins the survivors with single spaces.
func canonicalize(sentence string) (string, error) {
	var tokens []string
	segments := words.NewSegmenter([]byte(sentence))
	for segments.Next() {
		token := strings.ToLower(string(segments.Bytes()))
		token = strings.TrimSpace(stripPunctuation(token))
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	if err := segments.Err(); err != nil {
		return "", err
	}
	return strings.Join(tokens, " "), nil
}

func stripPunctuation(token string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, token)
}

func digest(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
