package matcher_test

import (
	"fmt"
	"math"
	"testing"

	"submatch/internal/corpus"
	"submatch/internal/fingerprint"
	"submatch/internal/logging"
	"submatch/internal/matcher"
)

func setOf(digests ...string) fingerprint.Set {
	s := fingerprint.NewSet()
	for _, d := range digests {
		s.Add(d)
	}
	return s
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestJaccardSymmetryAndBounds(t *testing.T) {
	cases := []struct {
		a, b fingerprint.Set
	}{
		{setOf("1", "2", "3"), setOf("2", "3", "4")},
		{setOf("1"), setOf("1")},
		{setOf("1", "2"), setOf()},
		{setOf(), setOf()},
		{setOf("a", "b", "c", "d"), setOf("e", "f")},
	}
	for i, tc := range cases {
		ab := matcher.Jaccard(tc.a, tc.b)
		ba := matcher.Jaccard(tc.b, tc.a)
		if !almostEqual(ab, ba) {
			t.Fatalf("case %d: sim not symmetric: %v vs %v", i, ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Fatalf("case %d: sim out of bounds: %v", i, ab)
		}
	}
}

func TestJaccardSelfSimilarityIsOne(t *testing.T) {
	a := setOf("1", "2", "3")
	if got := matcher.Jaccard(a, a); !almostEqual(got, 1) {
		t.Fatalf("expected self similarity 1, got %v", got)
	}
}

func TestJaccardBothEmptyIsZero(t *testing.T) {
	if got := matcher.Jaccard(setOf(), setOf()); got != 0 {
		t.Fatalf("expected 0 for two empty sets, got %v", got)
	}
}

func TestJaccardOneSharedOfFourEach(t *testing.T) {
	// |A|=4, |B|=4, one shared sentence: 1 / (4+4-1) = 1/7.
	a := setOf("s1", "a2", "a3", "a4")
	b := setOf("s1", "b2", "b3", "b4")
	if got := matcher.Jaccard(a, b); !almostEqual(got, 1.0/7.0) {
		t.Fatalf("expected 1/7, got %v", got)
	}
}

func TestMatchSelectsBestSourcePerTarget(t *testing.T) {
	sources := corpus.NewStore()
	sources.Add("video1.mkv", setOf("a", "b", "c"))
	sources.Add("video2.mkv", setOf("x", "y", "z"))

	targets := corpus.NewStore()
	targets.Add("ep1.srt", setOf("a", "b", "c"))
	targets.Add("ep2.srt", setOf("x", "y", "q"))

	results := matcher.Match(sources, targets, 0.1, logging.NewNop())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Target != "ep1.srt" || results[0].Source != "video1.mkv" || !almostEqual(results[0].Score, 1) {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].Target != "ep2.srt" || results[1].Source != "video2.mkv" || !almostEqual(results[1].Score, 0.5) {
		t.Fatalf("unexpected second result: %+v", results[1])
	}
}

func TestMatchThresholdGatingIsStrict(t *testing.T) {
	sources := corpus.NewStore()
	sources.Add("video.mkv", setOf("a", "b"))

	targets := corpus.NewStore()
	targets.Add("exact.srt", setOf("a", "b", "c", "d")) // score 0.5
	targets.Add("weak.srt", setOf("a", "x", "y", "z", "w", "v", "u", "t", "s")) // score 0.1

	results := matcher.Match(sources, targets, 0.5, logging.NewNop())
	if len(results) != 0 {
		t.Fatalf("expected no results at strict threshold boundary, got %+v", results)
	}

	results = matcher.Match(sources, targets, 0.49, logging.NewNop())
	if len(results) != 1 || results[0].Target != "exact.srt" {
		t.Fatalf("expected only exact.srt above 0.49, got %+v", results)
	}
}

func TestMatchUnmatchedTargetProducesNoRow(t *testing.T) {
	sources := corpus.NewStore()
	sources.Add("video.mkv", setOf("a", "b", "c", "d", "e", "f", "g", "h"))

	targets := corpus.NewStore()
	targets.Add("far.srt", setOf("a", "x", "y")) // score 0.2

	results := matcher.Match(sources, targets, 0.5, logging.NewNop())
	if len(results) != 0 {
		t.Fatalf("expected unmatched target to be dropped, got %+v", results)
	}
}

func TestMatchTieKeepsFirstSeenSource(t *testing.T) {
	sources := corpus.NewStore()
	sources.Add("first.mkv", setOf("a", "b"))
	sources.Add("second.mkv", setOf("a", "b"))

	targets := corpus.NewStore()
	targets.Add("target.srt", setOf("a", "b"))

	for i := 0; i < 5; i++ {
		results := matcher.Match(sources, targets, 0.1, logging.NewNop())
		if len(results) != 1 || results[0].Source != "first.mkv" {
			t.Fatalf("run %d: expected stable tie-break to first.mkv, got %+v", i, results)
		}
	}
}

func TestMatchEmptySetsNeverCrash(t *testing.T) {
	sources := corpus.NewStore()
	sources.Add("empty.mkv", setOf())

	targets := corpus.NewStore()
	targets.Add("empty.srt", setOf())
	targets.Add("full.srt", setOf("a"))

	results := matcher.Match(sources, targets, 0.1, logging.NewNop())
	if len(results) != 0 {
		t.Fatalf("expected no matches with empty source set, got %+v", results)
	}
}

func TestMatchDeterministicAcrossRuns(t *testing.T) {
	sources := corpus.NewStore()
	targets := corpus.NewStore()
	for i := 0; i < 10; i++ {
		sources.Add(fmt.Sprintf("src%d.mkv", i), setOf(fmt.Sprintf("d%d", i), "shared"))
		targets.Add(fmt.Sprintf("tgt%d.srt", i), setOf(fmt.Sprintf("d%d", i), "shared"))
	}

	baseline := matcher.Match(sources, targets, 0.1, logging.NewNop())
	for run := 0; run < 3; run++ {
		again := matcher.Match(sources, targets, 0.1, logging.NewNop())
		if len(again) != len(baseline) {
			t.Fatalf("run %d: result count changed", run)
		}
		for i := range again {
			if again[i] != baseline[i] {
				t.Fatalf("run %d: result %d changed: %+v vs %+v", run, i, again[i], baseline[i])
			}
		}
	}
}
