package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/platform/postgres"
	"github.com/phrazzld/flashlearn/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsStoreCounts(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresAnalyticsStore(db, nil)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM flashcards WHERE user_id = $1")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("last_reviewed_at IS NULL OR last_reviewed_at < $2")).
		WithArgs(userID, fixedTime).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := s.CountFlashcards(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	due, err := s.CountDue(context.Background(), userID, fixedTime)
	require.NoError(t, err)
	assert.Equal(t, 4, due)
}

func TestAnalyticsStoreCountByDifficulty(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresAnalyticsStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY difficulty")).
		WillReturnRows(sqlmock.NewRows([]string{"difficulty", "count"}).AddRow("easy", 3).AddRow("hard", 1))

	counts, err := s.CountByDifficulty(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, map[domain.DifficultyTier]int{domain.DifficultyEasy: 3, domain.DifficultyHard: 1}, counts)
}

func TestAnalyticsStoreSummaries(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresAnalyticsStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM study_sessions")).
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(3, 42.5))
	mock.ExpectQuery(regexp.QuoteMeta("FROM quiz_attempts qa")).
		WillReturnRows(sqlmock.NewRows([]string{"correct", "total"}).AddRow(7, 10))

	sessions, err := s.SummarizeSessions(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, store.SessionSummary{Completed: 3, TotalMinutes: 42.5}, sessions)

	attempts, err := s.SummarizeAttempts(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, store.AttemptSummary{Correct: 7, Total: 10}, attempts)
}

func TestAnalyticsStoreTimeSeries(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresAnalyticsStore(db, nil)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT completed_at FROM study_sessions")).
		WillReturnRows(sqlmock.NewRows([]string{"completed_at"}).AddRow(fixedTime).AddRow(fixedTime.AddDate(0, 0, 1)))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY day")).
		WithArgs(userID, fixedTime.AddDate(0, 0, -6)).
		WillReturnRows(sqlmock.NewRows([]string{"day", "minutes"}).AddRow("2025-03-14", 25.0))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY f.topic")).
		WillReturnRows(sqlmock.NewRows([]string{"topic", "correct", "total"}).AddRow("Biology", 2, 4))

	times, err := s.ListCompletionTimes(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, times, 2)

	daily, err := s.StudyMinutesByDay(context.Background(), userID, fixedTime.AddDate(0, 0, -6))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"2025-03-14": 25}, daily)

	topics, err := s.AccuracyByTopic(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []domain.TopicAccuracy{{Topic: "Biology", Correct: 2, Total: 4}}, topics)
}

func TestAnalyticsStoreQueryError(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresAnalyticsStore(db, nil)

	boom := errors.New("connection lost")
	mock.ExpectQuery("SELECT COUNT").WillReturnError(boom)

	_, err := s.CountFlashcards(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
}
