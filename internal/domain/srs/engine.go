package srs

import (
	"errors"
	"time"

	"github.com/phrazzld/flashlearn/internal/domain"
)

// ErrNilCard is returned when an answer is applied to a nil card.
var ErrNilCard = errors.New("flashcard cannot be nil")

// Engine ties the scheduler, the difficulty estimator, the card selector and
// the difficulty advisor to one set of Params. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	params Params
}

// NewEngine creates an Engine. A nil params uses NewDefaultParams.
func NewEngine(params *Params) *Engine {
	if params == nil {
		params = NewDefaultParams()
	}
	return &Engine{params: *params}
}

// Params returns a copy of the engine's configuration.
func (e *Engine) Params() Params {
	return e.params
}

// ApplyAnswer computes the state of a card after it was answered.
//
// The input card is not modified; a new card is returned with its review
// count, last review time, scheduling fields and difficulty score updated.
// A non-positive averageSeconds falls back to the configured default.
func (e *Engine) ApplyAnswer(
	card *domain.Flashcard,
	isCorrect bool,
	responseSeconds int,
	averageSeconds float64,
	now time.Time,
) (*domain.Flashcard, ReviewSchedule, error) {
	if card == nil {
		return nil, ReviewSchedule{}, ErrNilCard
	}

	ef, interval := e.schedulingInputs(card)
	schedule := ComputeNextReview(QualityFromAnswer(isCorrect), card.ReviewCount, ef, interval, now)

	if averageSeconds <= 0 {
		averageSeconds = e.params.DefaultAverageResponseSeconds
	}

	next := card.Clone()
	reviewedAt := now
	nextReviewAt := schedule.NextReviewAt

	next.ReviewCount++
	next.LastReviewedAt = &reviewedAt
	next.NextReviewAt = &nextReviewAt
	next.EasinessFactor = schedule.EasinessFactor
	next.ReviewIntervalDays = schedule.IntervalDays
	next.DifficultyScore = UpdateDifficultyScore(card.DifficultyScore, isCorrect, responseSeconds, averageSeconds)
	next.UpdatedAt = now

	return next, schedule, nil
}

func (e *Engine) schedulingInputs(card *domain.Flashcard) (float64, int) {
	if e.params.EasinessMode == EasinessModePersisted {
		ef := card.EasinessFactor
		if ef <= 0 {
			ef = domain.DefaultEasinessFactor
		}
		return ef, card.ReviewIntervalDays
	}
	return LegacyEasinessFactor(card.ReviewCount), 0
}

// SelectNextCards calls the package-level SelectNextCards.
func (e *Engine) SelectNextCards(
	deck []*domain.Flashcard,
	limit int,
	preferred *domain.DifficultyTier,
	now time.Time,
) []*domain.Flashcard {
	return SelectNextCards(deck, limit, preferred, now)
}

// RecommendDifficulty calls the package-level RecommendDifficulty.
func (e *Engine) RecommendDifficulty(attempts []*domain.QuizAttempt) Recommendation {
	return RecommendDifficulty(attempts)
}
