package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/phrazzld/flashlearn/internal/store"
)

// PostgresAnalyticsStore implements store.AnalyticsStore with read-only
// aggregate queries.
type PostgresAnalyticsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAnalyticsStore creates a new PostgreSQL implementation of the AnalyticsStore interface.
func NewPostgresAnalyticsStore(db store.DBTX, logger *slog.Logger) *PostgresAnalyticsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAnalyticsStore{
		db:     db,
		logger: logger.With(slog.String("component", "analytics_store")),
	}
}

var _ store.AnalyticsStore = (*PostgresAnalyticsStore)(nil)

func (s *PostgresAnalyticsStore) count(ctx context.Context, name, query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("analytics query failed",
			slog.String("query", name),
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return n, nil
}

// CountFlashcards returns the number of cards the user owns.
func (s *PostgresAnalyticsStore) CountFlashcards(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.count(ctx, "count_flashcards",
		`SELECT COUNT(*) FROM flashcards WHERE user_id = $1`, userID)
}

// CountDue counts cards that are new or were last reviewed before now.
func (s *PostgresAnalyticsStore) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	return s.count(ctx, "count_due", `
		SELECT COUNT(*) FROM flashcards
		WHERE user_id = $1 AND (last_reviewed_at IS NULL OR last_reviewed_at < $2)
	`, userID, now)
}

// CountByDifficulty returns card counts per tier. Tiers with no cards are absent.
func (s *PostgresAnalyticsStore) CountByDifficulty(
	ctx context.Context,
	userID uuid.UUID,
) (map[domain.DifficultyTier]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT difficulty, COUNT(*) FROM flashcards
		WHERE user_id = $1
		GROUP BY difficulty
	`, userID)
	if err != nil {
		log.Error("failed to count cards by difficulty", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[domain.DifficultyTier]int)
	for rows.Next() {
		var (
			tier string
			n    int
		)
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, MapError(err)
		}
		counts[domain.DifficultyTier(tier)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return counts, nil
}

// SummarizeSessions counts completed sessions and sums their durations.
func (s *PostgresAnalyticsStore) SummarizeSessions(
	ctx context.Context,
	userID uuid.UUID,
) (store.SessionSummary, error) {
	var summary store.SessionSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(duration_minutes), 0)
		FROM study_sessions
		WHERE user_id = $1 AND status = 'completed'
	`, userID).Scan(&summary.Completed, &summary.TotalMinutes)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to summarize sessions",
			slog.String("error", err.Error()))
		return store.SessionSummary{}, MapError(err)
	}
	return summary, nil
}

// SummarizeAttempts tallies every attempt the user has made, in any session.
func (s *PostgresAnalyticsStore) SummarizeAttempts(
	ctx context.Context,
	userID uuid.UUID,
) (store.AttemptSummary, error) {
	var summary store.AttemptSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE qa.is_correct), COUNT(*)
		FROM quiz_attempts qa
		JOIN study_sessions ss ON ss.id = qa.session_id
		WHERE ss.user_id = $1
	`, userID).Scan(&summary.Correct, &summary.Total)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to summarize attempts",
			slog.String("error", err.Error()))
		return store.AttemptSummary{}, MapError(err)
	}
	return summary, nil
}

// ListCompletionTimes returns completion timestamps of completed sessions, oldest first.
func (s *PostgresAnalyticsStore) ListCompletionTimes(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT completed_at FROM study_sessions
		WHERE user_id = $1 AND status = 'completed' AND completed_at IS NOT NULL
		ORDER BY completed_at
	`, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list completion times",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	times := make([]time.Time, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, MapError(err)
		}
		times = append(times, t.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return times, nil
}

// StudyMinutesByDay sums session durations per UTC creation date for
// sessions created at or after since, regardless of status.
func (s *PostgresAnalyticsStore) StudyMinutesByDay(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT to_char((created_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS day,
		       COALESCE(SUM(duration_minutes), 0)
		FROM study_sessions
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY day
	`, userID, since)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to sum study minutes by day",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	minutes := make(map[string]float64)
	for rows.Next() {
		var (
			day   string
			total float64
		)
		if err := rows.Scan(&day, &total); err != nil {
			return nil, MapError(err)
		}
		minutes[day] = total
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return minutes, nil
}

// AccuracyByTopic tallies attempts per topic of the answered card.
func (s *PostgresAnalyticsStore) AccuracyByTopic(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.TopicAccuracy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.topic, COUNT(*) FILTER (WHERE qa.is_correct), COUNT(*)
		FROM quiz_attempts qa
		JOIN study_sessions ss ON ss.id = qa.session_id
		JOIN flashcards f ON f.id = qa.flashcard_id
		WHERE ss.user_id = $1
		GROUP BY f.topic
		ORDER BY f.topic
	`, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to compute accuracy by topic",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.TopicAccuracy, 0)
	for rows.Next() {
		var ta domain.TopicAccuracy
		if err := rows.Scan(&ta.Topic, &ta.Correct, &ta.Total); err != nil {
			return nil, MapError(err)
		}
		out = append(out, ta)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return out, nil
}
