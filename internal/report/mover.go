package report

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"submatch/internal/fileutil"
	"submatch/internal/logging"
	"submatch/internal/matcher"
)

// Mover copies matched source videos into the output directory under the
// matched target's name. Per-file copy failures are logged and skipped; the
// remaining matches still get copied.
type Mover struct {
	outputDir string
	dryRun    bool
	logger    *slog.Logger
}

// NewMover creates a Mover. With dryRun set, Apply only logs what it would do.
func NewMover(outputDir string, dryRun bool, logger *slog.Logger) *Mover {
	return &Mover{
		outputDir: outputDir,
		dryRun:    dryRun,
		logger:    logging.NewComponentLogger(logger, "mover"),
	}
}

// DestinationPath derives the copy destination for one match: the target's
// base name with the source's extension, inside the output directory.
func (m *Mover) DestinationPath(result matcher.Result) string {
	targetStem := strings.TrimSuffix(filepath.Base(result.Target), filepath.Ext(result.Target))
	return filepath.Join(m.outputDir, targetStem+filepath.Ext(result.Source))
}

// Apply copies every matched source. It returns the number of successful
// copies; failures are logged, never fatal.
func (m *Mover) Apply(results []matcher.Result) int {
	if m.dryRun {
		for _, result := range results {
			m.logger.Info("dry run, would copy",
				logging.String("source", result.Source),
				logging.String("destination", m.DestinationPath(result)),
			)
		}
		return 0
	}

	if len(results) > 0 {
		if err := os.MkdirAll(m.outputDir, 0o755); err != nil {
			m.logger.Error("cannot create output directory",
				logging.String("output_dir", m.outputDir),
				logging.Error(err),
			)
			return 0
		}
	}

	copied := 0
	for _, result := range results {
		dest := m.DestinationPath(result)
		m.logger.Info("copying matched video",
			logging.String("source", result.Source),
			logging.String("destination", dest),
			logging.Float64("score", result.Score),
		)
		if err := fileutil.CopyFileVerified(result.Source, dest); err != nil {
			m.logger.Warn("copy failed",
				logging.String("source", result.Source),
				logging.String("destination", dest),
				logging.Error(err),
			)
			continue
		}
		copied++
	}
	return copied
}
