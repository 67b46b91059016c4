package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
)

// StudySessionStore defines the interface for study session persistence.
type StudySessionStore interface {
	Create(ctx context.Context, session *domain.StudySession) error

	// GetByID returns ErrStudySessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// GetForUpdate locks the session row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// Update writes the session status, counters and timing fields.
	Update(ctx context.Context, session *domain.StudySession) error

	WithTx(tx *sql.Tx) StudySessionStore
}

// QuizAttemptStore defines the interface for quiz attempt persistence.
// Attempts are append-only.
type QuizAttemptStore interface {
	Create(ctx context.Context, attempt *domain.QuizAttempt) error

	// ListBySession returns a session's attempts in the order they were made.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.QuizAttempt, error)

	WithTx(tx *sql.Tx) QuizAttemptStore
}
