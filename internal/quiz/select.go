package quiz

import (
	"math/rand"

	"github.com/Sash0G/PlamiItaly/internal/dataset"
)

// SelectWeighted draws min(count, len(pool)) distinct questions by repeated
// weighted sampling without replacement. Weights come from the supplied
// scores and stay fixed for the whole selection; each draw scans the
// cumulative distribution over the remaining candidates in their current
// relative order. Higher-weight questions tend to land earlier, so even a
// full-pool selection comes back in a biased random order rather than a
// plain permutation.
func SelectWeighted(rng *rand.Rand, pool []dataset.Question, count int, scores ScoreRecord) []dataset.Question {
	if count > len(pool) {
		count = len(pool)
	}
	if count <= 0 {
		return nil
	}

	remaining := make([]dataset.Question, len(pool))
	copy(remaining, pool)

	selected := make([]dataset.Question, 0, count)
	for i := 0; i < count; i++ {
		total := 0.0
		for _, q := range remaining {
			total += Weight(scores.Get(q.ID))
		}

		r := rng.Float64() * total
		pick := len(remaining) - 1
		running := 0.0
		for j, q := range remaining {
			running += Weight(scores.Get(q.ID))
			if r <= running {
				pick = j
				break
			}
		}

		selected = append(selected, remaining[pick])
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return selected
}
