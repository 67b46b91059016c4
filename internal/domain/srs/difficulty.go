package srs

import "github.com/phrazzld/flashlearn/internal/domain"

const (
	correctScoreDelta   = 0.1
	incorrectScoreDelta = -0.15
	responseTimeWeight  = 0.05
	maxTimeAdjustment   = 0.1
)

// UpdateDifficultyScore nudges a card's difficulty score after an answer.
//
// A correct answer adds 0.1 and a wrong one subtracts 0.15. Answering faster
// than averageSeconds adds up to 0.1 more, answering slower takes up to 0.1
// away. The result stays within [0, 1].
//
// A non-positive averageSeconds falls back to DefaultAverageResponseSeconds
// and a negative responseSeconds counts as 0.
func UpdateDifficultyScore(current float64, isCorrect bool, responseSeconds int, averageSeconds float64) float64 {
	if averageSeconds <= 0 {
		averageSeconds = DefaultAverageResponseSeconds
	}
	responseSeconds = max(responseSeconds, 0)

	base := incorrectScoreDelta
	if isCorrect {
		base = correctScoreDelta
	}

	ratio := float64(responseSeconds) / averageSeconds
	timeAdj := clampFloat((1-ratio)*responseTimeWeight, -maxTimeAdjustment, maxTimeAdjustment)

	return clampFloat(current+base+timeAdj, 0, 1)
}

// TierForScore buckets a difficulty score into a tier.
func TierForScore(score float64) domain.DifficultyTier {
	switch {
	case score < 0.3:
		return domain.DifficultyEasy
	case score < 0.7:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyHard
	}
}
