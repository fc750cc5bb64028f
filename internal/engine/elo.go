package engine

import "math"

// KFactor bounds how much one result can move a rating.
const KFactor = 32

// InitialRating seeds a player's first season entry.
const InitialRating = 1500

// EloExpected is the expected score of A against B.
func EloExpected(ratingA, ratingB int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(ratingB-ratingA)/400.0))
}

// EloDelta computes the winner-perspective rating change for A given the
// actual result (1 for a win, 0 for a loss). B's delta is the exact negation.
func EloDelta(ratingA, ratingB int, won bool) int {
	actual := 0.0
	if won {
		actual = 1.0
	}
	return int(math.Round(KFactor * (actual - EloExpected(ratingA, ratingB))))
}

// ApplyElo returns both updated ratings after A vs B with the given result,
// floored at zero.
func ApplyElo(ratingA, ratingB int, aWon bool) (newA, newB, delta int) {
	delta = EloDelta(ratingA, ratingB, aWon)
	newA = ratingA + delta
	newB = ratingB - delta
	if newA < 0 {
		newA = 0
	}
	if newB < 0 {
		newB = 0
	}
	return newA, newB, delta
}

// WinRate recomputes the derived win-rate after a match.
func WinRate(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total)
}
