package quiz

import (
	"math/rand"

	"github.com/Sash0G/PlamiItaly/internal/dataset"
)

// ShuffleOptions returns the question's options in a fresh uniform random
// order. Works on a copy so the canonical A..E order on the Question is
// never disturbed; callers invoke it once per render.
func ShuffleOptions(rng *rand.Rand, q dataset.Question) []dataset.Option {
	out := make([]dataset.Option, len(q.Options))
	copy(out, q.Options)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
