package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/domain/srs"
	"github.com/phrazzld/flashlearn/internal/generation"
	"github.com/phrazzld/flashlearn/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Register(ctx context.Context, email, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, username, password)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *mockUserService) Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type mockFlashcardService struct{ mock.Mock }

func (m *mockFlashcardService) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.FlashcardFilter,
) ([]*domain.Flashcard, error) {
	args := m.Called(ctx, userID, filter)
	cards, _ := args.Get(0).([]*domain.Flashcard)
	return cards, args.Error(1)
}

func (m *mockFlashcardService) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.Flashcard, error) {
	args := m.Called(ctx, userID, cardID)
	card, _ := args.Get(0).(*domain.Flashcard)
	return card, args.Error(1)
}

func (m *mockFlashcardService) Create(
	ctx context.Context,
	userID uuid.UUID,
	input service.CreateFlashcardInput,
) (*domain.Flashcard, error) {
	args := m.Called(ctx, userID, input)
	card, _ := args.Get(0).(*domain.Flashcard)
	return card, args.Error(1)
}

func (m *mockFlashcardService) Update(
	ctx context.Context,
	userID, cardID uuid.UUID,
	patch domain.FlashcardPatch,
) (*domain.Flashcard, error) {
	args := m.Called(ctx, userID, cardID, patch)
	card, _ := args.Get(0).(*domain.Flashcard)
	return card, args.Error(1)
}

func (m *mockFlashcardService) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	return m.Called(ctx, userID, cardID).Error(0)
}

func (m *mockFlashcardService) ListTopics(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	topics, _ := args.Get(0).([]string)
	return topics, args.Error(1)
}

func (m *mockFlashcardService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req generation.Request,
) ([]*domain.Flashcard, error) {
	args := m.Called(ctx, userID, req)
	cards, _ := args.Get(0).([]*domain.Flashcard)
	return cards, args.Error(1)
}

type mockStudyService struct{ mock.Mock }

func (m *mockStudyService) session(args mock.Arguments) (*domain.StudySession, error) {
	s, _ := args.Get(0).(*domain.StudySession)
	return s, args.Error(1)
}

func (m *mockStudyService) StartSession(
	ctx context.Context,
	userID uuid.UUID,
	topic *string,
	targetCount int,
) (*domain.StudySession, error) {
	return m.session(m.Called(ctx, userID, topic, targetCount))
}

func (m *mockStudyService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error) {
	return m.session(m.Called(ctx, userID, sessionID))
}

func (m *mockStudyService) CompleteSession(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.StudySession, error) {
	return m.session(m.Called(ctx, userID, sessionID))
}

func (m *mockStudyService) PauseSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error) {
	return m.session(m.Called(ctx, userID, sessionID))
}

func (m *mockStudyService) ResumeSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error) {
	return m.session(m.Called(ctx, userID, sessionID))
}

func (m *mockStudyService) CardsForSession(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	preferred *domain.DifficultyTier,
	limit int,
) ([]*domain.Flashcard, error) {
	args := m.Called(ctx, userID, sessionID, preferred, limit)
	cards, _ := args.Get(0).([]*domain.Flashcard)
	return cards, args.Error(1)
}

func (m *mockStudyService) SubmitAnswer(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	input service.AnswerInput,
) (*service.AnswerResult, error) {
	args := m.Called(ctx, userID, sessionID, input)
	res, _ := args.Get(0).(*service.AnswerResult)
	return res, args.Error(1)
}

func (m *mockStudyService) AdaptiveDifficulty(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (srs.Recommendation, error) {
	args := m.Called(ctx, userID, sessionID)
	rec, _ := args.Get(0).(srs.Recommendation)
	return rec, args.Error(1)
}

type mockAnalyticsService struct{ mock.Mock }

func (m *mockAnalyticsService) Dashboard(ctx context.Context, userID uuid.UUID) (*domain.DashboardStats, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*domain.DashboardStats)
	return stats, args.Error(1)
}

func (m *mockAnalyticsService) CardsByDifficulty(
	ctx context.Context,
	userID uuid.UUID,
) (map[domain.DifficultyTier]int, error) {
	args := m.Called(ctx, userID)
	counts, _ := args.Get(0).(map[domain.DifficultyTier]int)
	return counts, args.Error(1)
}

var (
	_ service.UserService      = (*mockUserService)(nil)
	_ service.FlashcardService = (*mockFlashcardService)(nil)
	_ service.StudyService     = (*mockStudyService)(nil)
	_ service.AnalyticsService = (*mockAnalyticsService)(nil)
)
