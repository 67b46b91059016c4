package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
)

// SessionSummary aggregates a user's completed study sessions.
type SessionSummary struct {
	Completed    int
	TotalMinutes float64
}

// AttemptSummary aggregates every quiz attempt a user has made.
type AttemptSummary struct {
	Correct int
	Total   int
}

// AnalyticsStore answers the read-only aggregate queries behind the dashboard.
type AnalyticsStore interface {
	CountFlashcards(ctx context.Context, userID uuid.UUID) (int, error)

	// CountDue counts flashcards that are new or were last reviewed before now.
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	CountByDifficulty(ctx context.Context, userID uuid.UUID) (map[domain.DifficultyTier]int, error)

	SummarizeSessions(ctx context.Context, userID uuid.UUID) (SessionSummary, error)

	SummarizeAttempts(ctx context.Context, userID uuid.UUID) (AttemptSummary, error)

	// ListCompletionTimes returns the completion time of every completed session.
	ListCompletionTimes(ctx context.Context, userID uuid.UUID) ([]time.Time, error)

	// StudyMinutesByDay sums session durations by UTC creation date for
	// sessions created at or after since. Keys are YYYY-MM-DD.
	StudyMinutesByDay(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]float64, error)

	AccuracyByTopic(ctx context.Context, userID uuid.UUID) ([]domain.TopicAccuracy, error)
}
