package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"submatch/internal/logging"
)

// ErrUnavailable indicates that no usable subtitle output could be produced
// for a media file. The file contributes no corpus entry; the run continues.
var ErrUnavailable = errors.New("transcription unavailable")

// Producer yields a subtitle-cue file for a media file.
type Producer interface {
	Subtitles(ctx context.Context, mediaPath string) (string, error)
}

// CommandRunner executes an external tool. Tests substitute a fake so the
// real binaries never need to be installed.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Options configures a Whisper producer.
type Options struct {
	Model         string
	Language      string
	FFmpegBinary  string
	WhisperBinary string
	Runner        CommandRunner
}

// Whisper produces subtitles by extracting mono audio with ffmpeg and
// transcribing it with whisper. Output lands next to the media file as
// <stem>.whisper.<model>.srt; if that file already exists the whole step is
// skipped, making re-runs idempotent.
type Whisper struct {
	model    string
	language string
	ffmpeg   string
	whisper  string
	run      CommandRunner
	logger   *slog.Logger
}

// NewWhisper constructs a Whisper producer.  Missing options fall back to
// sensible defaults; a nil Runner executes real commands.
func NewWhisper(opts Options, logger *slog.Logger) *Whisper {
	w := &Whisper{
		model:    strings.TrimSpace(opts.Model),
		language: strings.TrimSpace(opts.Language),
		ffmpeg:   strings.TrimSpace(opts.FFmpegBinary),
		whisper:  strings.TrimSpace(opts.WhisperBinary),
		run:      opts.Runner,
		logger:   logging.NewComponentLogger(logger, "transcribe"),
	}
	if w.model == "" {
		w.model = "base"
	}
	if w.language == "" {
		w.language = "en"
	}
	if w.ffmpeg == "" {
		w.ffmpeg = "ffmpeg"
	}
	if w.whisper == "" {
		w.whisper = "whisper"
	}
	if w.run == nil {
		w.run = defaultCommandRunner
	}
	return w
}

// SubtitlePath returns the derived subtitle path for a media file.
func (w *Whisper) SubtitlePath(mediaPath string) string {
	dir := filepath.Dir(mediaPath)
	stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	return filepath.Join(dir, fmt.Sprintf("%s.whisper.%s.srt", stem, w.model))
}

// Subtitles implements Producer. ffmpeg failure maps to ErrUnavailable;
// whisper failure is reported as-is since at that point the audio conversion
// succeeded and the problem is likely worth surfacing.
func (w *Whisper) Subtitles(ctx context.Context, mediaPath string) (string, error) {
	srtPath := w.SubtitlePath(mediaPath)
	if _, err := os.Stat(srtPath); err == nil {
		w.logger.Debug("reusing previously extracted subtitles",
			logging.String("media", mediaPath),
			logging.String("subtitle", srtPath),
		)
		return srtPath, nil
	}

	dir := filepath.Dir(mediaPath)
	stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	wavPath := filepath.Join(dir, stem+".wav")
	_ = os.Remove(wavPath)

	w.logger.Info("transcribing media file",
		logging.String("media", mediaPath),
		logging.String("model", w.model),
	)

	if err := w.run(ctx, w.ffmpeg, "-i", mediaPath, "-ac", "1", wavPath); err != nil {
		return "", fmt.Errorf("%w: audio conversion failed for %s: %w", ErrUnavailable, mediaPath, err)
	}
	defer os.Remove(wavPath)

	if err := w.run(ctx, w.whisper, "--model", w.model, "--language", w.language, wavPath); err != nil {
		return "", fmt.Errorf("transcribe %s: %w", mediaPath, err)
	}

	// Whisper writes sidecar formats next to the audio; only the SRT is kept.
	for _, ext := range []string{"txt", "vtt", "tsv", "json"} {
		_ = os.Remove(filepath.Join(dir, fmt.Sprintf("%s.%s", stem, ext)))
	}

	produced := wavPath + ".srt"
	if err := os.Rename(produced, srtPath); err != nil {
		return "", fmt.Errorf("%w: move transcript for %s: %w", ErrUnavailable, mediaPath, err)
	}
	return srtPath, nil
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr strings.Builder
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, detail)
		}
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}
