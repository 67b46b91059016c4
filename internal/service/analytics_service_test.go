package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/mocks"
	"github.com/phrazzld/flashlearn/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newAnalyticsFixture() (*analyticsServiceImpl, *mocks.AnalyticsStore, *mocks.FlashcardStore) {
	analytics := new(mocks.AnalyticsStore)
	cards := new(mocks.FlashcardStore)
	svc := NewAnalyticsService(analytics, cards, discardLogger()).(*analyticsServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc, analytics, cards
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc, analytics, cards := newAnalyticsFixture()

	analytics.On("CountFlashcards", mock.Anything, userID).Return(12, nil)
	analytics.On("SummarizeSessions", mock.Anything, userID).
		Return(store.SessionSummary{Completed: 4, TotalMinutes: 37.5}, nil)
	analytics.On("SummarizeAttempts", mock.Anything, userID).
		Return(store.AttemptSummary{Correct: 15, Total: 20}, nil)
	analytics.On("ListCompletionTimes", mock.Anything, userID).Return([]time.Time{
		fixedNow.Add(-time.Hour),
		fixedNow.Add(-26 * time.Hour),
		fixedNow.AddDate(0, 0, -5),
		fixedNow.AddDate(0, 0, -6),
	}, nil)
	analytics.On("CountDue", mock.Anything, userID, fixedNow).Return(3, nil)
	cards.On("ListTopics", mock.Anything, userID).Return([]string{"Biology", "Geography"}, nil)
	analytics.On("StudyMinutesByDay", mock.Anything, userID, day("2025-03-08")).
		Return(map[string]float64{"2025-03-14": 12.5, "2025-03-13": 5}, nil)
	analytics.On("AccuracyByTopic", mock.Anything, userID).Return([]domain.TopicAccuracy{
		{Topic: "Biology", Correct: 3, Total: 4},
		{Topic: "Geography", Correct: 0, Total: 0},
	}, nil)

	stats, err := svc.Dashboard(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalCards)
	assert.Equal(t, 4, stats.TotalSessions)
	assert.InDelta(t, 37.5, stats.TotalStudyMinutes, 1e-9)
	assert.InDelta(t, 0.75, stats.AverageAccuracy, 1e-9)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
	assert.Equal(t, 3, stats.CardsDueForReview)
	assert.Equal(t, []string{"Biology", "Geography"}, stats.Topics)
	assert.Equal(t, map[string]float64{"Biology": 0.75}, stats.AccuracyByTopic)
	assert.Len(t, stats.DailyStudyMinutes, DailyWindowDays)
	assert.InDelta(t, 12.5, stats.DailyStudyMinutes["2025-03-14"], 1e-9)
	assert.Zero(t, stats.DailyStudyMinutes["2025-03-08"])
}

func TestAnalyticsService_Dashboard_EmptyHistory(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc, analytics, cards := newAnalyticsFixture()

	analytics.On("CountFlashcards", mock.Anything, userID).Return(0, nil)
	analytics.On("SummarizeSessions", mock.Anything, userID).Return(store.SessionSummary{}, nil)
	analytics.On("SummarizeAttempts", mock.Anything, userID).Return(store.AttemptSummary{}, nil)
	analytics.On("ListCompletionTimes", mock.Anything, userID).Return([]time.Time{}, nil)
	analytics.On("CountDue", mock.Anything, userID, fixedNow).Return(0, nil)
	cards.On("ListTopics", mock.Anything, userID).Return([]string{}, nil)
	analytics.On("StudyMinutesByDay", mock.Anything, userID, mock.Anything).Return(map[string]float64{}, nil)
	analytics.On("AccuracyByTopic", mock.Anything, userID).Return([]domain.TopicAccuracy{}, nil)

	stats, err := svc.Dashboard(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, stats.AverageAccuracy)
	assert.Zero(t, stats.CurrentStreak)
	assert.Zero(t, stats.LongestStreak)
	assert.Empty(t, stats.AccuracyByTopic)
	assert.Len(t, stats.DailyStudyMinutes, DailyWindowDays)
}

func TestAnalyticsService_Dashboard_StoreFailure(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc, analytics, _ := newAnalyticsFixture()
	analytics.On("CountFlashcards", mock.Anything, userID).Return(0, errors.New("timeout"))

	_, err := svc.Dashboard(context.Background(), userID)
	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "dashboard", serviceErr.Operation)
	analytics.AssertNotCalled(t, "SummarizeSessions", mock.Anything, mock.Anything)
}

func TestAnalyticsService_CardsByDifficulty(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc, analytics, _ := newAnalyticsFixture()
	analytics.On("CountByDifficulty", mock.Anything, userID).
		Return(map[domain.DifficultyTier]int{domain.DifficultyHard: 4}, nil)

	counts, err := svc.CardsByDifficulty(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, map[domain.DifficultyTier]int{
		domain.DifficultyEasy:   0,
		domain.DifficultyMedium: 0,
		domain.DifficultyHard:   4,
	}, counts)
}

func TestStudyDays(t *testing.T) {
	t.Parallel()

	got := StudyDays([]time.Time{
		time.Date(2025, 3, 3, 23, 59, 0, 0, time.UTC),
		time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 0, 1, 0, 0, time.UTC),
		time.Date(2025, 3, 2, 12, 0, 0, 0, time.FixedZone("EST", -5*3600)),
	})
	assert.Equal(t, []time.Time{day("2025-03-01"), day("2025-03-02"), day("2025-03-03")}, got)
	assert.Empty(t, StudyDays(nil))
}

func TestStreaks(t *testing.T) {
	t.Parallel()

	today := fixedNow

	tests := []struct {
		name        string
		days        []string
		wantLongest int
		wantCurrent int
	}{
		{name: "no history"},
		{
			name:        "studied today only",
			days:        []string{"2025-03-14"},
			wantLongest: 1,
			wantCurrent: 1,
		},
		{
			name:        "run ending today",
			days:        []string{"2025-03-10", "2025-03-12", "2025-03-13", "2025-03-14"},
			wantLongest: 3,
			wantCurrent: 3,
		},
		{
			name:        "run ended yesterday",
			days:        []string{"2025-03-11", "2025-03-12", "2025-03-13"},
			wantLongest: 3,
			wantCurrent: 0,
		},
		{
			name:        "longest run in the past",
			days:        []string{"2025-02-01", "2025-02-02", "2025-02-03", "2025-02-04", "2025-03-14"},
			wantLongest: 4,
			wantCurrent: 1,
		},
		{
			name:        "future days are ignored for current",
			days:        []string{"2025-03-13", "2025-03-14", "2025-03-15"},
			wantLongest: 3,
			wantCurrent: 2,
		},
		{
			name:        "month boundary",
			days:        []string{"2025-02-27", "2025-02-28", "2025-03-01"},
			wantLongest: 3,
			wantCurrent: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			days := make([]time.Time, 0, len(tt.days))
			for _, d := range tt.days {
				days = append(days, day(d))
			}
			assert.Equal(t, tt.wantLongest, LongestStreak(days))
			assert.Equal(t, tt.wantCurrent, CurrentStreak(days, today))
		})
	}
}

func TestFillDailyMinutes(t *testing.T) {
	t.Parallel()

	got := FillDailyMinutes(map[string]float64{
		"2025-03-14": 10,
		"2025-03-01": 99,
	}, fixedNow, 3)

	assert.Equal(t, map[string]float64{
		"2025-03-12": 0,
		"2025-03-13": 0,
		"2025-03-14": 10,
	}, got)
	assert.Equal(t, day("2025-03-12"), WindowStart(fixedNow, 3))
}
