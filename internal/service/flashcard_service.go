package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/generation"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/phrazzld/flashlearn/internal/store"
)

// CreateFlashcardInput is a hand-written card.
type CreateFlashcardInput struct {
	Question   string
	Answer     string
	Topic      string
	Difficulty domain.DifficultyTier
}

// FlashcardService manages a learner's deck. Cards owned by someone else are
// reported as store.ErrFlashcardNotFound.
type FlashcardService interface {
	List(ctx context.Context, userID uuid.UUID, filter domain.FlashcardFilter) ([]*domain.Flashcard, error)
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.Flashcard, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateFlashcardInput) (*domain.Flashcard, error)
	Update(ctx context.Context, userID, cardID uuid.UUID, patch domain.FlashcardPatch) (*domain.Flashcard, error)
	Delete(ctx context.Context, userID, cardID uuid.UUID) error
	ListTopics(ctx context.Context, userID uuid.UUID) ([]string, error)

	// Generate asks the configured generator for cards about req.Text and
	// saves all of them in one transaction.
	Generate(ctx context.Context, userID uuid.UUID, req generation.Request) ([]*domain.Flashcard, error)
}

type flashcardServiceImpl struct {
	db        *sql.DB
	cards     store.FlashcardStore
	generator generation.Generator
	logger    *slog.Logger
}

var _ FlashcardService = (*flashcardServiceImpl)(nil)

// NewFlashcardService creates a FlashcardService. The generator may be nil,
// in which case Generate returns ErrGeneratorUnavailable.
func NewFlashcardService(
	db *sql.DB,
	cards store.FlashcardStore,
	generator generation.Generator,
	log *slog.Logger,
) FlashcardService {
	if db == nil || cards == nil {
		panic("flashcard service dependencies cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &flashcardServiceImpl{
		db:        db,
		cards:     cards,
		generator: generator,
		logger:    log.With(slog.String("component", "flashcard_service")),
	}
}

func (s *flashcardServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.FlashcardFilter,
) ([]*domain.Flashcard, error) {
	if filter.Difficulty != "" && !filter.Difficulty.IsValid() {
		return nil, domain.ErrInvalidDifficulty
	}
	cards, err := s.cards.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, NewServiceError("list_flashcards", "failed to list flashcards", err)
	}
	return cards, nil
}

func (s *flashcardServiceImpl) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.Flashcard, error) {
	return ownedCard(ctx, s.cards.GetByID, userID, cardID)
}

func (s *flashcardServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	input CreateFlashcardInput,
) (*domain.Flashcard, error) {
	card, err := domain.NewFlashcard(userID, input.Question, input.Answer, input.Topic, input.Difficulty)
	if err != nil {
		return nil, err
	}
	if err := s.cards.Create(ctx, card); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create flashcard",
			slog.String("error", err.Error()))
		return nil, NewServiceError("create_flashcard", "failed to save flashcard", err)
	}
	return card, nil
}

func (s *flashcardServiceImpl) Update(
	ctx context.Context,
	userID, cardID uuid.UUID,
	patch domain.FlashcardPatch,
) (*domain.Flashcard, error) {
	var updated *domain.Flashcard
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)

		card, err := ownedCard(ctx, cards.GetForUpdate, userID, cardID)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			updated = card
			return nil
		}
		if err := card.Apply(patch); err != nil {
			return err
		}
		if err := cards.Update(ctx, card); err != nil {
			return NewServiceError("update_flashcard", "failed to save flashcard", err)
		}
		updated = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *flashcardServiceImpl) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)

		if _, err := ownedCard(ctx, cards.GetForUpdate, userID, cardID); err != nil {
			return err
		}
		if err := cards.Delete(ctx, cardID); err != nil {
			return NewServiceError("delete_flashcard", "failed to delete flashcard", err)
		}
		logger.FromContextOrDefault(ctx, s.logger).Info("flashcard deleted",
			slog.String("card_id", cardID.String()))
		return nil
	})
}

func (s *flashcardServiceImpl) ListTopics(ctx context.Context, userID uuid.UUID) ([]string, error) {
	topics, err := s.cards.ListTopics(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_topics", "failed to list topics", err)
	}
	return topics, nil
}

func (s *flashcardServiceImpl) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req generation.Request,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateCards(ctx, req)
	if err != nil {
		log.Warn("card generation failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	cards := make([]*domain.Flashcard, 0, len(generated))
	for _, g := range generated {
		card, err := domain.NewFlashcard(userID, g.Question, g.Answer, req.Topic, req.Difficulty)
		if err != nil {
			log.Debug("skipping invalid generated card", slog.String("error", err.Error()))
			continue
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		return nil, generation.ErrInvalidResponse
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.cards.WithTx(tx).CreateMultiple(ctx, cards)
	})
	if err != nil {
		log.Error("failed to save generated flashcards", slog.String("error", err.Error()))
		return nil, NewServiceError("generate_flashcards", "failed to save generated flashcards", err)
	}

	log.Info("generated flashcards",
		slog.String("user_id", userID.String()),
		slog.String("topic", req.Topic),
		slog.Int("requested", req.NumCards),
		slog.Int("saved", len(cards)))
	return cards, nil
}

// ownedCard loads a card with get and hides cards that belong to another user.
func ownedCard(
	ctx context.Context,
	get func(context.Context, uuid.UUID) (*domain.Flashcard, error),
	userID, cardID uuid.UUID,
) (*domain.Flashcard, error) {
	card, err := get(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrFlashcardNotFound
		}
		return nil, NewServiceError("get_flashcard", "failed to load flashcard", err)
	}
	if card.UserID != userID {
		return nil, store.ErrFlashcardNotFound
	}
	return card, nil
}
