package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"submatch/internal/corpus"
	"submatch/internal/fingerprint"
	"submatch/internal/fpcache"
	"submatch/internal/logging"
	"submatch/internal/matcher"
	"submatch/internal/report"
	"submatch/internal/resolve"
	"submatch/internal/transcribe"
)

type matchFlags struct {
	sources       []string
	targets       []string
	output        string
	minSimilarity float64
	dryRun        bool
	csvOutput     bool
	noCache       bool
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	flags := &matchFlags{minSimilarity: -1}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match source videos to target subtitles and copy them under matched names",
		Long: `Match transcribes each source video (unless a transcript already exists),
fingerprints the dialogue of both pools, scores every target subtitle against
every source, and reports the best source per target. Matches above the
similarity threshold are copied into the output directory named after their
target subtitle.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, ctx, flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.sources, "source", "s", nil, "Files, directories, or globs containing videos to select from")
	cmd.Flags().StringArrayVarP(&flags.targets, "target", "t", nil, "Files or directories containing subtitles with target names")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output directory for renamed video copies (default from config)")
	cmd.Flags().Float64VarP(&flags.minSimilarity, "min-similarity", "m", -1, "Minimum similarity for a match (default from config)")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "d", false, "Report matches without copying anything")
	cmd.Flags().BoolVar(&flags.csvOutput, "csv", false, "Force CSV output even on a terminal")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "Bypass the fingerprint cache")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func runMatch(cmd *cobra.Command, ctx *commandContext, flags *matchFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	threshold := cfg.Matching.MinSimilarity
	if flags.minSimilarity >= 0 {
		threshold = flags.minSimilarity
	}
	if threshold > 1 {
		return fmt.Errorf("min similarity %v out of range [0,1]", threshold)
	}
	outputDir := cfg.Paths.OutputDir
	if flags.output != "" {
		outputDir = flags.output
	}

	sourceFiles, err := resolve.Inputs(flags.sources, cfg.Matching.VideoExtensions)
	if err != nil {
		return err
	}
	targetFiles, err := resolve.Inputs(flags.targets, []string{"srt"})
	if err != nil {
		return err
	}
	logger.Info("resolved inputs",
		logging.Int("sources", len(sourceFiles)),
		logging.Int("targets", len(targetFiles)),
	)

	producer := transcribe.NewWhisper(transcribe.Options{
		Model:         cfg.Transcription.Model,
		Language:      cfg.Transcription.Language,
		FFmpegBinary:  cfg.Transcription.FFmpegBinary,
		WhisperBinary: cfg.Transcription.WhisperBinary,
	}, logger)

	sourceEntries := make([]corpus.Entry, 0, len(sourceFiles))
	for _, video := range sourceFiles {
		subtitle, err := producer.Subtitles(cmd.Context(), video)
		if err != nil {
			if errors.Is(err, transcribe.ErrUnavailable) {
				logger.Warn("no subtitles available for source, skipping",
					logging.String("source", video),
					logging.Error(err),
				)
				continue
			}
			logger.Warn("transcription failed for source, skipping",
				logging.String("source", video),
				logging.Error(err),
			)
			continue
		}
		sourceEntries = append(sourceEntries, corpus.Entry{Key: video, SubtitlePath: subtitle})
	}

	targetEntries := make([]corpus.Entry, 0, len(targetFiles))
	for _, subtitle := range targetFiles {
		targetEntries = append(targetEntries, corpus.Entry{Key: subtitle, SubtitlePath: subtitle})
	}

	normalizer, err := fingerprint.NewNormalizer()
	if err != nil {
		return err
	}

	var cache corpus.Cache
	if cfg.Cache.Enabled && !flags.noCache {
		c, err := fpcache.Open(cfg.Paths.CacheDir)
		if err != nil {
			logger.Warn("fingerprint cache unavailable, continuing without it",
				logging.Error(err),
			)
		} else {
			defer c.Close()
			cache = c
		}
	}

	builder := corpus.NewBuilder(normalizer, cache, cfg.Matching.Workers, logger)
	sources, err := builder.Build(cmd.Context(), sourceEntries)
	if err != nil {
		return err
	}
	targets, err := builder.Build(cmd.Context(), targetEntries)
	if err != nil {
		return err
	}
	logger.Info("corpora built",
		logging.Int("source_entries", sources.Len()),
		logging.Int("target_entries", targets.Len()),
	)

	results := matcher.Match(sources, targets, threshold, logger)
	logger.Info("matching complete",
		logging.Int("matched", len(results)),
		logging.Int("unmatched", targets.Len()-len(results)),
		logging.Float64("threshold", threshold),
	)

	if flags.csvOutput || !isatty.IsTerminal(os.Stdout.Fd()) {
		if err := report.WriteCSV(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), report.RenderTable(results))
	}

	mover := report.NewMover(outputDir, flags.dryRun, logger)
	mover.Apply(results)
	return nil
}
