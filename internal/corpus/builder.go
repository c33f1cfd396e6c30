package corpus

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"submatch/internal/fingerprint"
	"submatch/internal/logging"
	"submatch/internal/srt"
)

// Entry names one corpus member: the key the corpus is reported under (the
// video path for sources, the subtitle path for targets) and the subtitle
// file to fingerprint.
type Entry struct {
	Key          string
	SubtitlePath string
}

// Cache is an optional lookup for previously computed fingerprint sets.
// Implementations decide validity (typically by file size and mtime).
type Cache interface {
	Get(subtitlePath string) (fingerprint.Set, bool)
	Put(subtitlePath string, set fingerprint.Set) error
}

// Builder constructs corpora from subtitle files. Files are fingerprinted
// concurrently up to the worker cap; per-file failures are logged and the
// file is skipped, never failing the whole build. A file either contributes
// a complete set or no entry at all.
type Builder struct {
	normalizer *fingerprint.Normalizer
	cache      Cache
	workers    int
	logger     *slog.Logger
}

// NewBuilder creates a Builder. cache may be nil to disable caching; workers
// below one falls back to serial processing.
func NewBuilder(normalizer *fingerprint.Normalizer, cache Cache, workers int, logger *slog.Logger) *Builder {
	if workers < 1 {
		workers = 1
	}
	return &Builder{
		normalizer: normalizer,
		cache:      cache,
		workers:    workers,
		logger:     logging.NewComponentLogger(logger, "corpus"),
	}
}

// Build fingerprints every entry and returns the populated store. Entries
// appear in the store in input order regardless of worker scheduling, so
// downstream matching is deterministic.
func (b *Builder) Build(ctx context.Context, entries []Entry) (*Store, error) {
	results := make([]fingerprint.Set, len(entries))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(b.workers)
	for i, entry := range entries {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = b.fingerprintFile(entry)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	store := NewStore()
	for i, entry := range entries {
		if results[i] == nil {
			continue
		}
		store.Add(entry.Key, results[i])
	}
	return store, nil
}

// fingerprintFile returns nil when the file must be skipped.
func (b *Builder) fingerprintFile(entry Entry) fingerprint.Set {
	if b.cache != nil {
		if set, ok := b.cache.Get(entry.SubtitlePath); ok {
			b.logger.Debug("fingerprint cache hit",
				logging.String("subtitle", entry.SubtitlePath),
				logging.Int("sentences", set.Len()),
			)
			return set
		}
	}

	cues, err := srt.ParseFile(entry.SubtitlePath)
	if err != nil {
		b.logger.Warn("skipping file with malformed cues",
			logging.String("key", entry.Key),
			logging.String("subtitle", entry.SubtitlePath),
			logging.Error(err),
		)
		return nil
	}

	set, err := b.normalizer.Fingerprint(cues)
	if err != nil {
		b.logger.Warn("skipping file that failed normalization",
			logging.String("key", entry.Key),
			logging.String("subtitle", entry.SubtitlePath),
			logging.Error(err),
		)
		return nil
	}

	if b.cache != nil {
		if err := b.cache.Put(entry.SubtitlePath, set); err != nil {
			b.logger.Warn("fingerprint cache write failed",
				logging.String("subtitle", entry.SubtitlePath),
				logging.Error(err),
			)
		}
	}

	b.logger.Debug("fingerprinted file",
		logging.String("key", entry.Key),
		logging.String("subtitle", entry.SubtitlePath),
		logging.Int("sentences", set.Len()),
	)
	return set
}
