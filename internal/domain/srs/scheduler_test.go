package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var reviewTime = time.Date(2025, 4, 14, 9, 30, 0, 0, time.UTC)

func TestComputeNextReview(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		quality      int
		reviewCount  int
		ef           float64
		interval     int
		wantEF       float64
		wantInterval int
	}{
		{
			name:         "first review with perfect recall is capped at max easiness",
			quality:      5,
			reviewCount:  0,
			ef:           2.5,
			interval:     0,
			wantEF:       2.5,
			wantInterval: 1, // floor(1 * 1.1)
		},
		{
			name:         "out of range easiness is clamped after the update",
			quality:      3,
			reviewCount:  0,
			ef:           3.0,
			interval:     0,
			wantEF:       2.5, // 3.0 - 0.14 = 2.86, clamped
			wantInterval: 1,   // floor(1 * 1.02)
		},
		{
			name:         "easiness below the floor is raised after the update",
			quality:      5,
			reviewCount:  0,
			ef:           1.0,
			interval:     0,
			wantEF:       1.3, // 1.0 + 0.1 = 1.1, clamped
			wantInterval: 1,
		},
		{
			name:         "second review uses three days",
			quality:      5,
			reviewCount:  1,
			ef:           2.5,
			interval:     1,
			wantEF:       2.5,
			wantInterval: 3, // floor(3 * 1.1)
		},
		{
			name:         "later review multiplies interval by easiness",
			quality:      5,
			reviewCount:  2,
			ef:           2.5,
			interval:     3,
			wantEF:       2.5,
			wantInterval: 7, // floor(3*2.5)=7, floor(7*1.1)=7
		},
		{
			name:         "quality four keeps easiness",
			quality:      4,
			reviewCount:  2,
			ef:           2.5,
			interval:     10,
			wantEF:       2.5,
			wantInterval: 26, // floor(25 * 1.06)
		},
		{
			name:         "quality three lowers easiness",
			quality:      3,
			reviewCount:  2,
			ef:           2.0,
			interval:     10,
			wantEF:       1.86,
			wantInterval: 18, // floor(10*1.86)=18, floor(18*1.02)=18
		},
		{
			name:         "later review with zero interval gets at least one day",
			quality:      5,
			reviewCount:  4,
			ef:           2.5,
			interval:     0,
			wantEF:       2.5,
			wantInterval: 1,
		},
		{
			name:         "forgotten card resets easiness and is due now",
			quality:      2,
			reviewCount:  5,
			ef:           2.5,
			interval:     30,
			wantEF:       1.3,
			wantInterval: 0, // floor(1 * 0.98)
		},
		{
			name:         "incorrect answer quality",
			quality:      1,
			reviewCount:  0,
			ef:           2.5,
			interval:     0,
			wantEF:       1.3,
			wantInterval: 0,
		},
		{
			name:         "quality above range is clamped",
			quality:      9,
			reviewCount:  1,
			ef:           2.5,
			interval:     1,
			wantEF:       2.5,
			wantInterval: 3,
		},
		{
			name:         "quality below range is clamped",
			quality:      -4,
			reviewCount:  3,
			ef:           2.5,
			interval:     10,
			wantEF:       1.3,
			wantInterval: 0,
		},
		{
			name:         "negative review count is a first review",
			quality:      5,
			reviewCount:  -2,
			ef:           2.5,
			interval:     0,
			wantEF:       2.5,
			wantInterval: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeNextReview(tc.quality, tc.reviewCount, tc.ef, tc.interval, reviewTime)

			assert.InDelta(t, tc.wantEF, got.EasinessFactor, 1e-9)
			assert.Equal(t, tc.wantInterval, got.IntervalDays)
			assert.Equal(t, reviewTime.AddDate(0, 0, tc.wantInterval), got.NextReviewAt)
		})
	}
}

func TestComputeNextReviewForgottenIgnoresHistory(t *testing.T) {
	t.Parallel()

	for quality := 0; quality < PassingQuality; quality++ {
		for _, ef := range []float64{1.3, 1.9, 2.5} {
			for _, interval := range []int{0, 1, 12, 400} {
				got := ComputeNextReview(quality, 7, ef, interval, reviewTime)
				assert.Equal(t, MinEasinessFactor, got.EasinessFactor)
				// The pre-jitter interval is 1; jitter below 1.0 floors it to 0.
				assert.Equal(t, 0, got.IntervalDays)
				assert.Equal(t, reviewTime, got.NextReviewAt)
			}
		}
	}
}

func TestComputeNextReviewRanges(t *testing.T) {
	t.Parallel()

	for quality := -1; quality <= 6; quality++ {
		for _, ef := range []float64{0, 1.0, 1.3, 2.0, 2.5, 3.7} {
			for reviewCount := 0; reviewCount < 5; reviewCount++ {
				for _, interval := range []int{-3, 0, 1, 5, 100} {
					got := ComputeNextReview(quality, reviewCount, ef, interval, reviewTime)
					assert.GreaterOrEqual(t, got.EasinessFactor, MinEasinessFactor)
					assert.LessOrEqual(t, got.EasinessFactor, MaxEasinessFactor)
					assert.GreaterOrEqual(t, got.IntervalDays, 0)
					assert.False(t, got.NextReviewAt.Before(reviewTime))
				}
			}
		}
	}
}

func TestQualityFromAnswer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, QualityFromAnswer(true))
	assert.Equal(t, 1, QualityFromAnswer(false))
}

func TestLegacyEasinessFactor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		reviewCount int
		want        float64
	}{
		{reviewCount: -5, want: 1.3},
		{reviewCount: 0, want: 1.3},
		{reviewCount: 1, want: 2.3},
		{reviewCount: 2, want: 2.5},
		{reviewCount: 50, want: 2.5},
	}

	for _, tc := range testCases {
		assert.InDelta(t, tc.want, LegacyEasinessFactor(tc.reviewCount), 1e-9, "reviewCount=%d", tc.reviewCount)
	}
}
