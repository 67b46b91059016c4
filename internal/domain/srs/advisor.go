package srs

import "github.com/phrazzld/flashlearn/internal/domain"

// Accuracy thresholds for recommending a harder tier. Both are strict.
const (
	hardAccuracyThreshold   = 0.8
	mediumAccuracyThreshold = 0.6
)

// Recommendation is the advisor's suggested tier for the rest of a session.
// Accuracy is nil when there were no attempts to judge by.
type Recommendation struct {
	Tier     domain.DifficultyTier `json:"recommended_difficulty"`
	Accuracy *float64              `json:"accuracy,omitempty"`
	Attempts int                   `json:"attempts"`
}

// RecommendDifficulty suggests a tier from the accuracy of a session's attempts.
func RecommendDifficulty(attempts []*domain.QuizAttempt) Recommendation {
	if len(attempts) == 0 {
		return Recommendation{Tier: domain.DifficultyMedium}
	}

	correct := 0
	for _, a := range attempts {
		if a.IsCorrect {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(attempts))

	tier := domain.DifficultyEasy
	switch {
	case accuracy > hardAccuracyThreshold:
		tier = domain.DifficultyHard
	case accuracy > mediumAccuracyThreshold:
		tier = domain.DifficultyMedium
	}

	return Recommendation{
		Tier:     tier,
		Accuracy: &accuracy,
		Attempts: len(attempts),
	}
}
