package srs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewedCard(reviewCount, intervalDays int, ef float64) *domain.Flashcard {
	last := reviewTime.AddDate(0, 0, -intervalDays)
	return &domain.Flashcard{
		ID:                 uuid.New(),
		UserID:             uuid.New(),
		Question:           "q",
		Answer:             "a",
		Topic:              domain.DefaultTopic,
		Difficulty:         domain.DifficultyMedium,
		DifficultyScore:    domain.DefaultDifficultyScore,
		EasinessFactor:     ef,
		ReviewIntervalDays: intervalDays,
		ReviewCount:        reviewCount,
		LastReviewedAt:     &last,
	}
}

func TestEngineApplyAnswerLegacy(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil)
	require.Equal(t, EasinessModeLegacy, engine.Params().EasinessMode)

	t.Run("first correct answer", func(t *testing.T) {
		t.Parallel()
		card := &domain.Flashcard{
			ID:              uuid.New(),
			Difficulty:      domain.DifficultyMedium,
			DifficultyScore: domain.DefaultDifficultyScore,
			EasinessFactor:  domain.DefaultEasinessFactor,
		}

		next, schedule, err := engine.ApplyAnswer(card, true, 30, 30, reviewTime)
		require.NoError(t, err)

		// Legacy easiness for review count 0 is 1.3, plus 0.1 for quality 5.
		assert.InDelta(t, 1.4, schedule.EasinessFactor, 1e-9)
		assert.Equal(t, 1, schedule.IntervalDays)

		assert.Equal(t, 1, next.ReviewCount)
		require.NotNil(t, next.LastReviewedAt)
		assert.Equal(t, reviewTime, *next.LastReviewedAt)
		require.NotNil(t, next.NextReviewAt)
		assert.Equal(t, reviewTime.AddDate(0, 0, 1), *next.NextReviewAt)
		assert.InDelta(t, 1.4, next.EasinessFactor, 1e-9)
		assert.Equal(t, 1, next.ReviewIntervalDays)
		assert.InDelta(t, 0.6, next.DifficultyScore, 1e-9)
		assert.Equal(t, domain.DifficultyMedium, next.Difficulty)

		// Input is not modified.
		assert.Zero(t, card.ReviewCount)
		assert.Nil(t, card.LastReviewedAt)
		assert.Equal(t, domain.DefaultDifficultyScore, card.DifficultyScore)
	})

	t.Run("stored interval is ignored", func(t *testing.T) {
		t.Parallel()
		next, schedule, err := engine.ApplyAnswer(reviewedCard(3, 10, 2.5), true, 30, 30, reviewTime)
		require.NoError(t, err)
		assert.Equal(t, 1, schedule.IntervalDays)
		assert.Equal(t, 4, next.ReviewCount)
	})

	t.Run("incorrect answer is due immediately", func(t *testing.T) {
		t.Parallel()
		next, schedule, err := engine.ApplyAnswer(reviewedCard(3, 10, 2.5), false, 30, 30, reviewTime)
		require.NoError(t, err)
		assert.Equal(t, MinEasinessFactor, schedule.EasinessFactor)
		assert.Equal(t, 0, schedule.IntervalDays)
		assert.Equal(t, reviewTime, *next.NextReviewAt)
		assert.InDelta(t, 0.35, next.DifficultyScore, 1e-9)
	})
}

func TestEngineApplyAnswerPersisted(t *testing.T) {
	t.Parallel()

	params, err := NewParams(ParamsConfig{EasinessMode: "persisted"})
	require.NoError(t, err)
	engine := NewEngine(params)

	next, schedule, err := engine.ApplyAnswer(reviewedCard(3, 10, 2.5), true, 30, 30, reviewTime)
	require.NoError(t, err)

	// floor(10*2.5)=25, jittered floor(25*1.1)=27
	assert.Equal(t, 27, schedule.IntervalDays)
	assert.Equal(t, 27, next.ReviewIntervalDays)
	assert.Equal(t, reviewTime.AddDate(0, 0, 27), *next.NextReviewAt)

	t.Run("missing easiness uses default", func(t *testing.T) {
		next, _, err := engine.ApplyAnswer(reviewedCard(3, 4, 0), true, 30, 30, reviewTime)
		require.NoError(t, err)
		assert.InDelta(t, domain.DefaultEasinessFactor, next.EasinessFactor, 1e-9)
		assert.Equal(t, 11, next.ReviewIntervalDays) // floor(4*2.5)=10, floor(10*1.1)=11
	})
}

func TestEngineApplyAnswerAverageFallback(t *testing.T) {
	t.Parallel()

	params, err := NewParams(ParamsConfig{DefaultAverageResponseSeconds: 60})
	require.NoError(t, err)
	engine := NewEngine(params)

	next, _, err := engine.ApplyAnswer(reviewedCard(0, 0, 2.5), true, 30, 0, reviewTime)
	require.NoError(t, err)
	// ratio 0.5 gives a 0.025 time bonus
	assert.InDelta(t, 0.625, next.DifficultyScore, 1e-9)
}

func TestEngineApplyAnswerNilCard(t *testing.T) {
	t.Parallel()

	_, _, err := NewEngine(nil).ApplyAnswer(nil, true, 10, 30, reviewTime)
	assert.ErrorIs(t, err, ErrNilCard)
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		p, err := NewParams(ParamsConfig{})
		require.NoError(t, err)
		assert.Equal(t, EasinessModeLegacy, p.EasinessMode)
		assert.Equal(t, DefaultAverageResponseSeconds, p.DefaultAverageResponseSeconds)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()
		p, err := NewParams(ParamsConfig{EasinessMode: " Persisted ", DefaultAverageResponseSeconds: 45})
		require.NoError(t, err)
		assert.Equal(t, EasinessModePersisted, p.EasinessMode)
		assert.Equal(t, 45.0, p.DefaultAverageResponseSeconds)
	})

	t.Run("unknown mode", func(t *testing.T) {
		t.Parallel()
		_, err := NewParams(ParamsConfig{EasinessMode: "adaptive"})
		assert.ErrorIs(t, err, ErrInvalidEasinessMode)
	})
}
