package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/store"
	"github.com/stretchr/testify/mock"
)

// StudySessionStore is a testify mock of store.StudySessionStore.
type StudySessionStore struct {
	mock.Mock
}

var _ store.StudySessionStore = (*StudySessionStore)(nil)

func (m *StudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *StudySessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	args := m.Called(ctx, id)
	if session, ok := args.Get(0).(*domain.StudySession); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StudySessionStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	args := m.Called(ctx, id)
	if session, ok := args.Get(0).(*domain.StudySession); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StudySessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	return m.Called(ctx, session).Error(0)
}

// WithTx returns the configured store, or the mock itself when none was set.
func (m *StudySessionStore) WithTx(tx *sql.Tx) store.StudySessionStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.StudySessionStore); ok {
		return ret
	}
	return m
}

// QuizAttemptStore is a testify mock of store.QuizAttemptStore.
type QuizAttemptStore struct {
	mock.Mock
}

var _ store.QuizAttemptStore = (*QuizAttemptStore)(nil)

func (m *QuizAttemptStore) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	return m.Called(ctx, attempt).Error(0)
}

func (m *QuizAttemptStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.QuizAttempt, error) {
	args := m.Called(ctx, sessionID)
	if attempts, ok := args.Get(0).([]*domain.QuizAttempt); ok {
		return attempts, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the configured store, or the mock itself when none was set.
func (m *QuizAttemptStore) WithTx(tx *sql.Tx) store.QuizAttemptStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.QuizAttemptStore); ok {
		return ret
	}
	return m
}
