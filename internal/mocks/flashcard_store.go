package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/store"
	"github.com/stretchr/testify/mock"
)

// FlashcardStore is a testify mock of store.FlashcardStore.
type FlashcardStore struct {
	mock.Mock
}

var _ store.FlashcardStore = (*FlashcardStore)(nil)

func (m *FlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	return m.Called(ctx, card).Error(0)
}

func (m *FlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	return m.Called(ctx, cards).Error(0)
}

func (m *FlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	args := m.Called(ctx, id)
	if card, ok := args.Get(0).(*domain.Flashcard); ok {
		return card, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FlashcardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	args := m.Called(ctx, id)
	if card, ok := args.Get(0).(*domain.Flashcard); ok {
		return card, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FlashcardStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.FlashcardFilter,
) ([]*domain.Flashcard, error) {
	args := m.Called(ctx, userID, filter)
	if cards, ok := args.Get(0).([]*domain.Flashcard); ok {
		return cards, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FlashcardStore) ListTopics(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if topics, ok := args.Get(0).([]string); ok {
		return topics, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	return m.Called(ctx, card).Error(0)
}

func (m *FlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns the configured store, or the mock itself when none was set.
func (m *FlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.FlashcardStore); ok {
		return ret
	}
	return m
}
