package matcher

import (
	"log/slog"

	"submatch/internal/corpus"
	"submatch/internal/fingerprint"
	"submatch/internal/logging"
)

// Result records the best source for one target. Results exist only for
// targets whose best score strictly exceeded the threshold; targets with no
// qualifying source are silently dropped, which is a documented choice rather
// than an omission.
type Result struct {
	Target string
	Source string
	Score  float64
}

// Jaccard computes intersection-over-union set similarity. An empty union
// scores zero.
func Jaccard(a, b fingerprint.Set) float64 {
	shared := a.Intersection(b)
	union := a.Len() + b.Len() - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// Match scores every target against every source and returns one Result per
// matched target, in target order. For each target the best score is tracked
// independently; ties keep the first source seen, so results are
// deterministic given the source corpus's insertion order.
func Match(sources, targets *corpus.Store, threshold float64, logger *slog.Logger) []Result {
	logger = logging.NewComponentLogger(logger, "matcher")

	sourceItems := sources.Items()
	var results []Result
	for _, target := range targets.Items() {
		bestScore := -1.0
		bestSource := ""
		for _, source := range sourceItems {
			score := Jaccard(source.Set, target.Set)
			if score > bestScore {
				bestScore = score
				bestSource = source.Path
			}
		}
		if bestSource == "" || bestScore <= threshold {
			logger.Debug("target unmatched",
				logging.String("target", target.Path),
				logging.Float64("best_score", bestScore),
				logging.Float64("threshold", threshold),
			)
			continue
		}
		logger.Debug("target matched",
			logging.String("target", target.Path),
			logging.String("source", bestSource),
			logging.Float64("score", bestScore),
		)
		results = append(results, Result{Target: target.Path, Source: bestSource, Score: bestScore})
	}
	return results
}
