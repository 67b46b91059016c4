package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
)

// FlashcardStore defines the interface for flashcard persistence.
type FlashcardStore interface {
	// Create saves a single flashcard.
	Create(ctx context.Context, card *domain.Flashcard) error

	// CreateMultiple saves several flashcards.
	// It MUST be run within a transaction (see WithTx) to be atomic.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// GetByID retrieves a flashcard by ID.
	// Returns ErrFlashcardNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// GetForUpdate is GetByID with a row lock held until the surrounding
	// transaction ends. It is only meaningful on a store returned by WithTx.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// ListByUser returns a user's flashcards, oldest first, narrowed by filter.
	ListByUser(ctx context.Context, userID uuid.UUID, filter domain.FlashcardFilter) ([]*domain.Flashcard, error)

	// ListTopics returns the distinct non-empty topics of a user's flashcards, sorted.
	ListTopics(ctx context.Context, userID uuid.UUID) ([]string, error)

	// Update writes every mutable field of the flashcard, including its
	// scheduling state. Returns ErrFlashcardNotFound if it does not exist.
	Update(ctx context.Context, card *domain.Flashcard) error

	// Delete removes a flashcard and, through ON DELETE CASCADE, its quiz attempts.
	// Returns ErrFlashcardNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new FlashcardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) FlashcardStore
}
