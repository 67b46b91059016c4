package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/phrazzld/flashlearn/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the FlashcardStore interface.
// If logger is nil, the default logger is used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

const flashcardColumns = `id, user_id, question, answer, topic, difficulty, difficulty_score,
	easiness_factor, review_interval_days, review_count, last_reviewed_at, next_review_at,
	created_at, updated_at`

const insertFlashcardQuery = `
	INSERT INTO flashcards (` + flashcardColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func flashcardArgs(card *domain.Flashcard) []any {
	return []any{
		card.ID,
		card.UserID,
		card.Question,
		card.Answer,
		card.Topic,
		string(card.Difficulty),
		card.DifficultyScore,
		card.EasinessFactor,
		card.ReviewIntervalDays,
		card.ReviewCount,
		nullTime(card.LastReviewedAt),
		nullTime(card.NextReviewAt),
		card.CreatedAt,
		card.UpdatedAt,
	}
}

func scanFlashcard(row rowScanner) (*domain.Flashcard, error) {
	var (
		card         domain.Flashcard
		difficulty   string
		lastReviewed sql.NullTime
		nextReview   sql.NullTime
	)
	err := row.Scan(
		&card.ID,
		&card.UserID,
		&card.Question,
		&card.Answer,
		&card.Topic,
		&difficulty,
		&card.DifficultyScore,
		&card.EasinessFactor,
		&card.ReviewIntervalDays,
		&card.ReviewCount,
		&lastReviewed,
		&nextReview,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	card.Difficulty = domain.DifficultyTier(difficulty)
	card.LastReviewedAt = timePtr(lastReviewed)
	card.NextReviewAt = timePtr(nextReview)
	return &card, nil
}

// Create inserts a single card after validating it.
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during create",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	if _, err := s.db.ExecContext(ctx, insertFlashcardQuery, flashcardArgs(card)...); err != nil {
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()),
			slog.String("user_id", card.UserID.String()))
		return MapError(err)
	}

	log.Debug("flashcard created",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("user_id", card.UserID.String()))
	return nil
}

// CreateMultiple inserts the cards with one prepared statement. It does not
// open its own transaction; run it on a store returned by WithTx to make the
// batch atomic.
func (s *PostgresFlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("flashcard validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return err
		}
	}

	stmt, err := s.db.PrepareContext(ctx, insertFlashcardQuery)
	if err != nil {
		log.Error("failed to prepare flashcard insert", slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Warn("failed to close prepared statement", slog.String("error", closeErr.Error()))
		}
	}()

	for _, card := range cards {
		if _, err := stmt.ExecContext(ctx, flashcardArgs(card)...); err != nil {
			log.Error("failed to insert flashcard in batch",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return MapError(err)
		}
	}

	log.Info("flashcards created",
		slog.Int("count", len(cards)),
		slog.String("user_id", cards[0].UserID.String()))
	return nil
}

// GetByID returns store.ErrFlashcardNotFound if the card does not exist.
func (s *PostgresFlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	query := `SELECT ` + flashcardColumns + ` FROM flashcards WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetForUpdate is GetByID with a row lock held until the surrounding
// transaction ends. Only meaningful on a store returned by WithTx.
func (s *PostgresFlashcardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	query := `SELECT ` + flashcardColumns + ` FROM flashcards WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, query, id)
}

func (s *PostgresFlashcardStore) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard not found", slog.String("flashcard_id", id.String()))
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to get flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return nil, MapError(err)
	}
	return card, nil
}

// ListByUser returns the user's cards oldest first, optionally narrowed by
// topic and difficulty tier.
func (s *PostgresFlashcardStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.FlashcardFilter,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var b strings.Builder
	b.WriteString(`SELECT ` + flashcardColumns + ` FROM flashcards WHERE user_id = $1`)
	args := []any{userID}
	if filter.Topic != "" {
		args = append(args, filter.Topic)
		fmt.Fprintf(&b, " AND topic = $%d", len(args))
	}
	if filter.Difficulty != "" {
		args = append(args, string(filter.Difficulty))
		fmt.Fprintf(&b, " AND difficulty = $%d", len(args))
	}
	b.WriteString(" ORDER BY created_at, id")

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		log.Error("failed to list flashcards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards := make([]*domain.Flashcard, 0)
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			log.Error("failed to scan flashcard row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating flashcard rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("listed flashcards",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

// ListTopics returns the user's distinct non-empty topics in alphabetical order.
func (s *PostgresFlashcardStore) ListTopics(ctx context.Context, userID uuid.UUID) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT DISTINCT topic FROM flashcards
		WHERE user_id = $1 AND topic <> ''
		ORDER BY topic
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list topics",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	topics := make([]string, 0)
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, MapError(err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return topics, nil
}

// Update overwrites the card's content and scheduling state.
// Returns store.ErrFlashcardNotFound if the card does not exist.
func (s *PostgresFlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during update",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE flashcards SET
			question = $2,
			answer = $3,
			topic = $4,
			difficulty = $5,
			difficulty_score = $6,
			easiness_factor = $7,
			review_interval_days = $8,
			review_count = $9,
			last_reviewed_at = $10,
			next_review_at = $11,
			updated_at = $12
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.Question,
		card.Answer,
		card.Topic,
		string(card.Difficulty),
		card.DifficultyScore,
		card.EasinessFactor,
		card.ReviewIntervalDays,
		card.ReviewCount,
		nullTime(card.LastReviewedAt),
		nullTime(card.NextReviewAt),
		card.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrFlashcardNotFound); err != nil {
		log.Debug("flashcard not found for update", slog.String("flashcard_id", card.ID.String()))
		return err
	}

	log.Debug("flashcard updated", slog.String("flashcard_id", card.ID.String()))
	return nil
}

// Delete removes the card and, by cascade, its quiz attempts.
// Returns store.ErrFlashcardNotFound if the card does not exist.
func (s *PostgresFlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrFlashcardNotFound); err != nil {
		log.Debug("flashcard not found for delete", slog.String("flashcard_id", id.String()))
		return err
	}

	log.Info("flashcard deleted", slog.String("flashcard_id", id.String()))
	return nil
}

// WithTx returns a store bound to the given transaction.
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}
