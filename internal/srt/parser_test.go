package srt_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"submatch/internal/srt"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,000
Hello there.

2
00:00:04,000 --> 00:00:06,000
This cue spans
two lines.

3
00:00:07,000 --> 00:00:09,000
Final cue.
`

func TestParseJoinsMultilineCues(t *testing.T) {
	cues, err := srt.Parse(strings.NewReader(sampleSRT))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []string{"Hello there.", "This cue spans two lines.", "Final cue."}
	if len(cues) != len(want) {
		t.Fatalf("got %d cues, want %d: %v", len(cues), len(want), cues)
	}
	for i, cue := range cues {
		if cue != want[i] {
			t.Fatalf("cue %d: got %q want %q", i, cue, want[i])
		}
	}
}

func TestParseFlushesFinalCueWithoutTrailingBlank(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nNo trailing blank line"
	cues, err := srt.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cues) != 1 || cues[0] != "No trailing blank line" {
		t.Fatalf("unexpected cues: %v", cues)
	}
}

func TestParseSkipsExtraBlankLinesBetweenBlocks(t *testing.T) {
	input := "\n\n1\n00:00:01,000 --> 00:00:02,000\nfirst\n\n\n\n2\n00:00:03,000 --> 00:00:04,000\nsecond\n\n"
	cues, err := srt.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cues) != 2 || cues[0] != "first" || cues[1] != "second" {
		t.Fatalf("unexpected cues: %v", cues)
	}
}

func TestParseRejectsNonIntegerIndex(t *testing.T) {
	input := "not-a-number\n00:00:01,000 --> 00:00:02,000\ntext\n"
	_, err := srt.Parse(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for non-integer index line")
	}
	var malformed *srt.MalformedCueError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedCueError, got %T: %v", err, err)
	}
	if malformed.Line != 1 {
		t.Fatalf("unexpected line number: %d", malformed.Line)
	}
}

func TestParseDoesNotValidateTimingLine(t *testing.T) {
	input := "1\ngarbage timing line\ntext survives\n"
	cues, err := srt.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cues) != 1 || cues[0] != "text survives" {
		t.Fatalf("unexpected cues: %v", cues)
	}
}

func TestParseFileDecodesLatin1(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.srt")
	// "café" with 0xE9 for é, invalid as UTF-8.
	content := []byte("1\n00:00:01,000 --> 00:00:02,000\ncaf\xe9\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	cues, err := srt.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}
	if len(cues) != 1 || cues[0] != "café" {
		t.Fatalf("unexpected cues: %q", cues)
	}
}

func TestParseFileNormalizesToNFC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nfd.srt")
	// "é" written as 'e' + combining acute accent (NFD form).
	content := "1\n00:00:01,000 --> 00:00:02,000\ncafé\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cues, err := srt.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}
	if len(cues) != 1 || cues[0] != "café" {
		t.Fatalf("expected NFC-composed text, got %q", cues)
	}
}
