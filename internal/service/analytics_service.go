package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/phrazzld/flashlearn/internal/store"
)

// DailyWindowDays is how many days, today included, the dashboard's daily
// study minutes cover.
const DailyWindowDays = 7

const dayLayout = "2006-01-02"

// AnalyticsService builds progress summaries.
type AnalyticsService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*domain.DashboardStats, error)

	// CardsByDifficulty counts cards per tier. Every tier is present.
	CardsByDifficulty(ctx context.Context, userID uuid.UUID) (map[domain.DifficultyTier]int, error)
}

type analyticsServiceImpl struct {
	analytics store.AnalyticsStore
	cards     store.FlashcardStore
	now       func() time.Time
	logger    *slog.Logger
}

var _ AnalyticsService = (*analyticsServiceImpl)(nil)

// NewAnalyticsService creates an AnalyticsService. It panics on a nil dependency.
func NewAnalyticsService(analytics store.AnalyticsStore, cards store.FlashcardStore, log *slog.Logger) AnalyticsService {
	if analytics == nil || cards == nil {
		panic("analytics service dependencies cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &analyticsServiceImpl{
		analytics: analytics,
		cards:     cards,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    log.With(slog.String("component", "analytics_service")),
	}
}

func (s *analyticsServiceImpl) Dashboard(ctx context.Context, userID uuid.UUID) (*domain.DashboardStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()
	fail := func(step string, err error) (*domain.DashboardStats, error) {
		log.Error("failed to build dashboard",
			slog.String("step", step),
			slog.String("error", err.Error()))
		return nil, NewServiceError("dashboard", step, err)
	}

	totalCards, err := s.analytics.CountFlashcards(ctx, userID)
	if err != nil {
		return fail("count flashcards", err)
	}
	sessions, err := s.analytics.SummarizeSessions(ctx, userID)
	if err != nil {
		return fail("summarize sessions", err)
	}
	attempts, err := s.analytics.SummarizeAttempts(ctx, userID)
	if err != nil {
		return fail("summarize attempts", err)
	}
	completions, err := s.analytics.ListCompletionTimes(ctx, userID)
	if err != nil {
		return fail("list completion times", err)
	}
	due, err := s.analytics.CountDue(ctx, userID, now)
	if err != nil {
		return fail("count due cards", err)
	}
	topics, err := s.cards.ListTopics(ctx, userID)
	if err != nil {
		return fail("list topics", err)
	}
	since := WindowStart(now, DailyWindowDays)
	minutes, err := s.analytics.StudyMinutesByDay(ctx, userID, since)
	if err != nil {
		return fail("study minutes by day", err)
	}
	byTopic, err := s.analytics.AccuracyByTopic(ctx, userID)
	if err != nil {
		return fail("accuracy by topic", err)
	}

	accuracy := 0.0
	if attempts.Total > 0 {
		accuracy = float64(attempts.Correct) / float64(attempts.Total)
	}

	topicAccuracy := make(map[string]float64, len(byTopic))
	for _, ta := range byTopic {
		if ta.Total > 0 {
			topicAccuracy[ta.Topic] = ta.Accuracy()
		}
	}

	days := StudyDays(completions)
	return &domain.DashboardStats{
		TotalCards:        totalCards,
		TotalSessions:     sessions.Completed,
		TotalStudyMinutes: sessions.TotalMinutes,
		AverageAccuracy:   accuracy,
		LongestStreak:     LongestStreak(days),
		CurrentStreak:     CurrentStreak(days, now),
		CardsDueForReview: due,
		Topics:            topics,
		DailyStudyMinutes: FillDailyMinutes(minutes, now, DailyWindowDays),
		AccuracyByTopic:   topicAccuracy,
	}, nil
}

func (s *analyticsServiceImpl) CardsByDifficulty(
	ctx context.Context,
	userID uuid.UUID,
) (map[domain.DifficultyTier]int, error) {
	counts, err := s.analytics.CountByDifficulty(ctx, userID)
	if err != nil {
		return nil, NewServiceError("cards_by_difficulty", "failed to count cards", err)
	}
	out := map[domain.DifficultyTier]int{
		domain.DifficultyEasy:   0,
		domain.DifficultyMedium: 0,
		domain.DifficultyHard:   0,
	}
	for tier, n := range counts {
		if tier.IsValid() {
			out[tier] = n
		}
	}
	return out, nil
}

// StudyDays returns the distinct UTC calendar days of the given times,
// oldest first.
func StudyDays(times []time.Time) []time.Time {
	days := make([]time.Time, 0, len(times))
	for _, t := range times {
		days = append(days, truncateDay(t))
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return slices.CompactFunc(days, func(a, b time.Time) bool { return a.Equal(b) })
}

// LongestStreak returns the longest run of consecutive days in sorted,
// distinct days.
func LongestStreak(days []time.Time) int {
	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && d.Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// CurrentStreak returns the run of consecutive days ending today. A day
// without study today means no current streak.
func CurrentStreak(days []time.Time, now time.Time) int {
	expected := truncateDay(now)
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		switch {
		case days[i].After(expected):
			continue
		case days[i].Equal(expected):
			streak++
			expected = expected.AddDate(0, 0, -1)
		default:
			return streak
		}
	}
	return streak
}

// WindowStart returns midnight UTC of the first day of a window of the given
// length that ends today.
func WindowStart(now time.Time, days int) time.Time {
	return truncateDay(now).AddDate(0, 0, -(days - 1))
}

// FillDailyMinutes returns one entry per day of the window ending today,
// keyed YYYY-MM-DD, with zero for days without study.
func FillDailyMinutes(minutes map[string]float64, now time.Time, days int) map[string]float64 {
	out := make(map[string]float64, days)
	start := WindowStart(now, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).Format(dayLayout)
		out[key] = minutes[key]
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
