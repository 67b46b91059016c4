package srs

import (
	"math"
	"time"
)

// ReviewSchedule is the outcome of scheduling one review.
type ReviewSchedule struct {
	NextReviewAt   time.Time `json:"next_review_at"`
	EasinessFactor float64   `json:"easiness_factor"`
	IntervalDays   int       `json:"interval_days"`
}

// ComputeNextReview schedules the next review of a card with a modified SM-2.
//
// Parameters:
//   - quality: recall quality on a 0-5 scale; values outside are clamped
//   - reviewCount: number of reviews before this one
//   - easinessFactor: the easiness factor going into this review
//   - currentIntervalDays: the interval going into this review
//   - now: the time of the review
//
// Algorithm behavior:
//   - The easiness factor moves by 0.1-(5-q)*(0.08+(5-q)*0.02) and is clamped to [1.3, 2.5]
//   - Quality below 3 resets the interval to 1 day and easiness to 1.3
//   - The first review gets 1 day, the second 3 days
//   - Later reviews multiply the current interval by the new easiness factor
//   - The interval is then jittered by a factor in [0.9, 1.1] that grows with quality
//
// The jittered interval can floor to 0 days. NextReviewAt is then equal to now,
// meaning the card is due immediately.
func ComputeNextReview(
	quality int,
	reviewCount int,
	easinessFactor float64,
	currentIntervalDays int,
	now time.Time,
) ReviewSchedule {
	quality = clampInt(quality, 0, MaxQuality)
	reviewCount = max(reviewCount, 0)
	currentIntervalDays = max(currentIntervalDays, 0)

	ef := calculateNewEasinessFactor(easinessFactor, quality)

	var interval int
	switch {
	case quality < PassingQuality:
		interval = FirstReviewIntervalDays
		ef = MinEasinessFactor
	case reviewCount == 0:
		interval = FirstReviewIntervalDays
	case reviewCount == 1:
		interval = SecondReviewIntervalDays
	default:
		interval = max(1, int(math.Floor(float64(currentIntervalDays)*ef)))
	}

	final := applyJitter(interval, quality)

	return ReviewSchedule{
		NextReviewAt:   now.AddDate(0, 0, final),
		EasinessFactor: ef,
		IntervalDays:   final,
	}
}

func calculateNewEasinessFactor(current float64, quality int) float64 {
	miss := float64(MaxQuality - quality)
	delta := 0.1 - miss*(0.08+miss*0.02)
	return clampFloat(current+delta, MinEasinessFactor, MaxEasinessFactor)
}

// applyJitter spreads reviews so cards learned together do not all come due on the same day.
func applyJitter(interval, quality int) int {
	factor := 0.9 + 0.2*float64(quality)/float64(MaxQuality)
	return int(math.Floor(float64(interval) * factor))
}

// QualityFromAnswer maps a binary answer onto the 0-5 quality scale.
func QualityFromAnswer(isCorrect bool) int {
	if isCorrect {
		return MaxQuality
	}
	return 1
}

// LegacyEasinessFactor derives an easiness factor from the review count alone.
func LegacyEasinessFactor(reviewCount int) float64 {
	return clampFloat(float64(reviewCount)+MinEasinessFactor, MinEasinessFactor, MaxEasinessFactor)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
