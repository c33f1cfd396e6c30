package srt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// MalformedCueError reports a subtitle stream that does not follow the
// index/timing/text/blank block structure. The file it came from should be
// skipped for its corpus; the error is never fatal to a run.
type MalformedCueError struct {
	Line int
	Text string
}

func (e *MalformedCueError) Error() string {
	return fmt.Sprintf("malformed cue at line %d: expected integer index, got %q", e.Line, e.Text)
}

type parseState int

const (
	expectIndex parseState = iota
	expectTiming
	accumulateText
)

// Parse consumes a subtitle-cue stream and returns the cue text strings in
// order. Multi-line cue text is joined with single spaces. Each input line is
// NFC-normalized before parsing. The timing line's content is passed through
// unvalidated.
func Parse(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		cues    []string
		accum   []string
		state   = expectIndex
		lineNum = 0
	)

	for scanner.Scan() {
		lineNum++
		line := norm.NFC.String(strings.TrimSuffix(scanner.Text(), "\r"))
		trimmed := strings.TrimSpace(line)

		switch state {
		case expectIndex:
			if trimmed == "" {
				continue
			}
			if _, err := strconv.Atoi(trimmed); err != nil {
				return nil, &MalformedCueError{Line: lineNum, Text: trimmed}
			}
			state = expectTiming
		case expectTiming:
			state = accumulateText
		case accumulateText:
			if trimmed != "" {
				accum = append(accum, trimmed)
				continue
			}
			cues = append(cues, strings.Join(accum, " "))
			accum = accum[:0]
			state = expectIndex
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cues: %w", err)
	}

	// A file without a trailing blank line still yields its final cue.
	if len(accum) > 0 {
		cues = append(cues, strings.Join(accum, " "))
	}

	return cues, nil
}

// ParseFile reads and parses a subtitle file. Bytes that are not valid UTF-8
// are decoded as ISO-8859-1, the encoding the surrounding tooling historically
// produced for Western-European subtitle files.
func ParseFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}

	if !utf8.Valid(data) {
		decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if decErr != nil {
			return nil, fmt.Errorf("decode subtitle file %s: %w", path, decErr)
		}
		data = decoded
	}

	cues, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cues, nil
}
