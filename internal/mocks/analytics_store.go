package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/store"
	"github.com/stretchr/testify/mock"
)

// AnalyticsStore is a testify mock of store.AnalyticsStore.
type AnalyticsStore struct {
	mock.Mock
}

var _ store.AnalyticsStore = (*AnalyticsStore)(nil)

func (m *AnalyticsStore) CountFlashcards(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *AnalyticsStore) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	args := m.Called(ctx, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *AnalyticsStore) CountByDifficulty(
	ctx context.Context,
	userID uuid.UUID,
) (map[domain.DifficultyTier]int, error) {
	args := m.Called(ctx, userID)
	if counts, ok := args.Get(0).(map[domain.DifficultyTier]int); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsStore) SummarizeSessions(ctx context.Context, userID uuid.UUID) (store.SessionSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(store.SessionSummary), args.Error(1)
}

func (m *AnalyticsStore) SummarizeAttempts(ctx context.Context, userID uuid.UUID) (store.AttemptSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(store.AttemptSummary), args.Error(1)
}

func (m *AnalyticsStore) ListCompletionTimes(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if times, ok := args.Get(0).([]time.Time); ok {
		return times, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsStore) StudyMinutesByDay(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (map[string]float64, error) {
	args := m.Called(ctx, userID, since)
	if minutes, ok := args.Get(0).(map[string]float64); ok {
		return minutes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsStore) AccuracyByTopic(ctx context.Context, userID uuid.UUID) ([]domain.TopicAccuracy, error) {
	args := m.Called(ctx, userID)
	if acc, ok := args.Get(0).([]domain.TopicAccuracy); ok {
		return acc, args.Error(1)
	}
	return nil, args.Error(1)
}
