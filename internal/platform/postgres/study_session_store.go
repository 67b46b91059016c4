package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/phrazzld/flashlearn/internal/store"
)

// PostgresStudySessionStore implements store.StudySessionStore.
type PostgresStudySessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudySessionStore creates a new PostgreSQL implementation of the StudySessionStore interface.
func NewPostgresStudySessionStore(db store.DBTX, logger *slog.Logger) *PostgresStudySessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudySessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_session_store")),
	}
}

var _ store.StudySessionStore = (*PostgresStudySessionStore)(nil)

const studySessionColumns = `id, user_id, topic, status, target_count, cards_studied, cards_correct,
	duration_minutes, paused_at, paused_seconds, created_at, updated_at, completed_at`

func scanStudySession(row rowScanner) (*domain.StudySession, error) {
	var (
		session   domain.StudySession
		topic     sql.NullString
		status    string
		pausedAt  sql.NullTime
		completed sql.NullTime
	)
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&topic,
		&status,
		&session.TargetCount,
		&session.CardsStudied,
		&session.CardsCorrect,
		&session.DurationMinutes,
		&pausedAt,
		&session.PausedSeconds,
		&session.CreatedAt,
		&session.UpdatedAt,
		&completed,
	)
	if err != nil {
		return nil, err
	}
	session.Topic = stringPtr(topic)
	session.Status = domain.SessionStatus(status)
	session.PausedAt = timePtr(pausedAt)
	session.CompletedAt = timePtr(completed)
	return &session, nil
}

// Create inserts a new study session.
// Returns store.ErrInvalidEntity if the user does not exist.
func (s *PostgresStudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("study session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_sessions (` + studySessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		nullString(session.Topic),
		string(session.Status),
		session.TargetCount,
		session.CardsStudied,
		session.CardsCorrect,
		session.DurationMinutes,
		nullTime(session.PausedAt),
		session.PausedSeconds,
		session.CreatedAt,
		session.UpdatedAt,
		nullTime(session.CompletedAt),
	)
	if err != nil {
		log.Error("failed to create study session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.String("user_id", session.UserID.String()))
		return MapError(err)
	}

	log.Info("study session created",
		slog.String("session_id", session.ID.String()),
		slog.String("user_id", session.UserID.String()))
	return nil
}

// GetByID returns store.ErrStudySessionNotFound if the session does not exist.
func (s *PostgresStudySessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	query := `SELECT ` + studySessionColumns + ` FROM study_sessions WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetForUpdate locks the session row until the surrounding transaction ends.
func (s *PostgresStudySessionStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	query := `SELECT ` + studySessionColumns + ` FROM study_sessions WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, query, id)
}

func (s *PostgresStudySessionStore) getOne(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := scanStudySession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study session not found", slog.String("session_id", id.String()))
			return nil, store.ErrStudySessionNotFound
		}
		log.Error("failed to get study session",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, MapError(err)
	}
	return session, nil
}

// Update persists the session's mutable state.
func (s *PostgresStudySessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("study session validation failed during update",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		UPDATE study_sessions SET
			status = $2,
			cards_studied = $3,
			cards_correct = $4,
			duration_minutes = $5,
			paused_at = $6,
			paused_seconds = $7,
			updated_at = $8,
			completed_at = $9
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		string(session.Status),
		session.CardsStudied,
		session.CardsCorrect,
		session.DurationMinutes,
		nullTime(session.PausedAt),
		session.PausedSeconds,
		session.UpdatedAt,
		nullTime(session.CompletedAt),
	)
	if err != nil {
		log.Error("failed to update study session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrStudySessionNotFound); err != nil {
		return err
	}

	log.Debug("study session updated",
		slog.String("session_id", session.ID.String()),
		slog.String("status", string(session.Status)))
	return nil
}

// WithTx returns a store bound to the given transaction.
func (s *PostgresStudySessionStore) WithTx(tx *sql.Tx) store.StudySessionStore {
	return &PostgresStudySessionStore{
		db:     tx,
		logger: s.logger,
	}
}

// PostgresQuizAttemptStore implements store.QuizAttemptStore.
type PostgresQuizAttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuizAttemptStore creates a new PostgreSQL implementation of the QuizAttemptStore interface.
func NewPostgresQuizAttemptStore(db store.DBTX, logger *slog.Logger) *PostgresQuizAttemptStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuizAttemptStore{
		db:     db,
		logger: logger.With(slog.String("component", "quiz_attempt_store")),
	}
}

var _ store.QuizAttemptStore = (*PostgresQuizAttemptStore)(nil)

// Create inserts an attempt. Attempts are never updated afterwards.
func (s *PostgresQuizAttemptStore) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := attempt.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO quiz_attempts (id, session_id, flashcard_id, is_correct, response_time_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		attempt.ID,
		attempt.SessionID,
		attempt.FlashcardID,
		attempt.IsCorrect,
		attempt.ResponseTimeSeconds,
		attempt.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create quiz attempt",
			slog.String("error", err.Error()),
			slog.String("session_id", attempt.SessionID.String()),
			slog.String("flashcard_id", attempt.FlashcardID.String()))
		return MapError(err)
	}

	log.Debug("quiz attempt recorded",
		slog.String("attempt_id", attempt.ID.String()),
		slog.Bool("is_correct", attempt.IsCorrect))
	return nil
}

// ListBySession returns the session's attempts in the order they were made.
func (s *PostgresQuizAttemptStore) ListBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]*domain.QuizAttempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, session_id, flashcard_id, is_correct, response_time_seconds, created_at
		FROM quiz_attempts
		WHERE session_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		log.Error("failed to list quiz attempts",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	attempts := make([]*domain.QuizAttempt, 0)
	for rows.Next() {
		var a domain.QuizAttempt
		if err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.FlashcardID,
			&a.IsCorrect,
			&a.ResponseTimeSeconds,
			&a.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		attempts = append(attempts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return attempts, nil
}

// WithTx returns a store bound to the given transaction.
func (s *PostgresQuizAttemptStore) WithTx(tx *sql.Tx) store.QuizAttemptStore {
	return &PostgresQuizAttemptStore{
		db:     tx,
		logger: s.logger,
	}
}
