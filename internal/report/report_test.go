package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"submatch/internal/logging"
	"submatch/internal/matcher"
	"submatch/internal/report"
)

func TestWriteCSVHeaderAndRows(t *testing.T) {
	results := []matcher.Result{
		{Target: "/subs/ep1.srt", Source: "/videos/a.mkv", Score: 0.5},
		{Target: "/subs/ep2.srt", Source: "/videos/b.mkv", Score: 0.125},
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, results); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "Target,Best Source,Similarity" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "/subs/ep1.srt,/videos/a.mkv,0.5" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "/subs/ep2.srt,/videos/b.mkv,0.125" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestWriteCSVEmptyResultsStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "Target,Best Source,Similarity" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderTableContainsResults(t *testing.T) {
	out := report.RenderTable([]matcher.Result{
		{Target: "ep1.srt", Source: "a.mkv", Score: 1},
	})
	if !strings.Contains(out, "ep1.srt") || !strings.Contains(out, "a.mkv") {
		t.Fatalf("table missing result fields:\n%s", out)
	}
	if !strings.Contains(out, "1.0000") {
		t.Fatalf("table missing formatted score:\n%s", out)
	}
}

func TestMoverDestinationPath(t *testing.T) {
	m := report.NewMover("/out", false, logging.NewNop())
	got := m.DestinationPath(matcher.Result{
		Target: "/subs/Episode One.srt",
		Source: "/videos/unnamed123.mkv",
	})
	if got != filepath.Join("/out", "Episode One.mkv") {
		t.Fatalf("unexpected destination: %q", got)
	}
}

func TestMoverCopiesMatches(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.mkv")
	if err := os.WriteFile(src, []byte("video bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	m := report.NewMover(outDir, false, logging.NewNop())
	copied := m.Apply([]matcher.Result{
		{Target: filepath.Join(dir, "named.srt"), Source: src, Score: 0.9},
	})
	if copied != 1 {
		t.Fatalf("expected 1 copy, got %d", copied)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "named.mkv"))
	if err != nil {
		t.Fatalf("expected copied file: %v", err)
	}
	if string(data) != "video bytes" {
		t.Fatalf("unexpected copied content: %q", data)
	}
}

func TestMoverDryRunCopiesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.mkv")
	if err := os.WriteFile(src, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	m := report.NewMover(outDir, true, logging.NewNop())
	copied := m.Apply([]matcher.Result{
		{Target: "named.srt", Source: src, Score: 0.9},
	})
	if copied != 0 {
		t.Fatalf("expected no copies in dry run, got %d", copied)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatal("expected output directory to not be created in dry run")
	}
}

func TestMoverSkipsFailedCopyAndContinues(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.mkv")
	if err := os.WriteFile(good, []byte("ok"), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	m := report.NewMover(outDir, false, logging.NewNop())
	copied := m.Apply([]matcher.Result{
		{Target: "missing.srt", Source: filepath.Join(dir, "absent.mkv"), Score: 0.8},
		{Target: "present.srt", Source: good, Score: 0.7},
	})
	if copied != 1 {
		t.Fatalf("expected the surviving copy to succeed, got %d", copied)
	}
}
