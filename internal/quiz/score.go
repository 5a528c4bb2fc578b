package quiz

// ScoreRecord maps question id to its persisted score. Missing entries
// read as 0.
type ScoreRecord map[string]int

func (r ScoreRecord) Get(id string) int { return r[id] }

// Clone returns an independent copy.
func (r ScoreRecord) Clone() ScoreRecord {
	out := make(ScoreRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// NextScore applies the score transition law for one graded first-pass
// answer: a correct answer adds 2, an incorrect answer resets a score of
// exactly 1 back to 0 and sets every other score to 1.
func NextScore(prev int, correct bool) int {
	if correct {
		return prev + 2
	}
	if prev == 1 {
		return 0
	}
	return 1
}

// Weight converts a score into a selection weight. Monotone decreasing:
// repeated correct answers push a question toward 0.2, one miss restores
// full weight via the reset in NextScore.
func Weight(score int) float64 {
	switch {
	case score == 0:
		return 1.0
	case score <= 2:
		return 0.5
	default:
		return 0.2
	}
}
