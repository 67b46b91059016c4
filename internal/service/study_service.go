package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/domain/srs"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/phrazzld/flashlearn/internal/store"
)

// MaxCardLimit caps how many cards CardsForSession returns.
const MaxCardLimit = 100

// AnswerInput is one answer submitted during a session.
type AnswerInput struct {
	FlashcardID         uuid.UUID
	IsCorrect           bool
	ResponseTimeSeconds int
}

// AnswerResult is the outcome of SubmitAnswer.
type AnswerResult struct {
	Attempt  *domain.QuizAttempt
	Card     *domain.Flashcard
	Schedule srs.ReviewSchedule
	Session  *domain.StudySession
}

// StudyService runs study sessions on top of the spaced-repetition engine.
// Sessions owned by someone else are reported as store.ErrStudySessionNotFound.
type StudyService interface {
	StartSession(ctx context.Context, userID uuid.UUID, topic *string, targetCount int) (*domain.StudySession, error)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error)
	CompleteSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error)
	PauseSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error)
	ResumeSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error)

	// CardsForSession picks the next cards to study from the learner's deck,
	// restricted to the session topic. A non-positive limit uses the default.
	CardsForSession(
		ctx context.Context,
		userID, sessionID uuid.UUID,
		preferred *domain.DifficultyTier,
		limit int,
	) ([]*domain.Flashcard, error)

	// SubmitAnswer records an attempt and reschedules the card in one
	// transaction. The session and card rows stay locked until it commits.
	SubmitAnswer(ctx context.Context, userID, sessionID uuid.UUID, input AnswerInput) (*AnswerResult, error)

	// AdaptiveDifficulty recommends a tier from the session's attempts.
	AdaptiveDifficulty(ctx context.Context, userID, sessionID uuid.UUID) (srs.Recommendation, error)
}

type studyServiceImpl struct {
	db           *sql.DB
	sessions     store.StudySessionStore
	attempts     store.QuizAttemptStore
	cards        store.FlashcardStore
	engine       *srs.Engine
	defaultLimit int
	now          func() time.Time
	logger       *slog.Logger
}

var _ StudyService = (*studyServiceImpl)(nil)

// NewStudyService creates a StudyService. It panics on a nil dependency.
func NewStudyService(
	db *sql.DB,
	sessions store.StudySessionStore,
	attempts store.QuizAttemptStore,
	cards store.FlashcardStore,
	engine *srs.Engine,
	defaultLimit int,
	log *slog.Logger,
) StudyService {
	if db == nil || sessions == nil || attempts == nil || cards == nil || engine == nil {
		panic("study service dependencies cannot be nil")
	}
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultTargetCount
	}
	if log == nil {
		log = slog.Default()
	}
	return &studyServiceImpl{
		db:           db,
		sessions:     sessions,
		attempts:     attempts,
		cards:        cards,
		engine:       engine,
		defaultLimit: min(defaultLimit, MaxCardLimit),
		now:          func() time.Time { return time.Now().UTC() },
		logger:       log.With(slog.String("component", "study_service")),
	}
}

func (s *studyServiceImpl) StartSession(
	ctx context.Context,
	userID uuid.UUID,
	topic *string,
	targetCount int,
) (*domain.StudySession, error) {
	session, err := domain.NewStudySession(userID, topic, targetCount, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create study session",
			slog.String("error", err.Error()))
		return nil, NewServiceError("start_session", "failed to save session", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("study session started",
		slog.String("session_id", session.ID.String()),
		slog.String("topic", session.TopicFilter()))
	return session, nil
}

func (s *studyServiceImpl) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error) {
	return ownedSession(ctx, s.sessions.GetByID, userID, sessionID)
}

func (s *studyServiceImpl) CompleteSession(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.StudySession, error) {
	return s.transition(ctx, "complete_session", userID, sessionID, (*domain.StudySession).Complete)
}

func (s *studyServiceImpl) PauseSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error) {
	return s.transition(ctx, "pause_session", userID, sessionID, (*domain.StudySession).Pause)
}

func (s *studyServiceImpl) ResumeSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error) {
	return s.transition(ctx, "resume_session", userID, sessionID, (*domain.StudySession).Resume)
}

// transition applies a status change to a locked session row.
func (s *studyServiceImpl) transition(
	ctx context.Context,
	operation string,
	userID, sessionID uuid.UUID,
	apply func(*domain.StudySession, time.Time) error,
) (*domain.StudySession, error) {
	var result *domain.StudySession
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		sessions := s.sessions.WithTx(tx)

		session, err := ownedSession(ctx, sessions.GetForUpdate, userID, sessionID)
		if err != nil {
			return err
		}
		if err := apply(session, s.now()); err != nil {
			return err
		}
		if err := sessions.Update(ctx, session); err != nil {
			return NewServiceError(operation, "failed to save session", err)
		}
		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("study session updated",
		slog.String("operation", operation),
		slog.String("session_id", sessionID.String()),
		slog.String("status", string(result.Status)))
	return result, nil
}

func (s *studyServiceImpl) CardsForSession(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	preferred *domain.DifficultyTier,
	limit int,
) ([]*domain.Flashcard, error) {
	if preferred != nil && !preferred.IsValid() {
		return nil, domain.ErrInvalidDifficulty
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	limit = min(limit, MaxCardLimit)

	session, err := ownedSession(ctx, s.sessions.GetByID, userID, sessionID)
	if err != nil {
		return nil, err
	}

	deck, err := s.cards.ListByUser(ctx, userID, domain.FlashcardFilter{Topic: session.TopicFilter()})
	if err != nil {
		return nil, NewServiceError("cards_for_session", "failed to load deck", err)
	}

	selected := s.engine.SelectNextCards(deck, limit, preferred, s.now())
	logger.FromContextOrDefault(ctx, s.logger).Debug("selected cards for session",
		slog.String("session_id", sessionID.String()),
		slog.Int("deck_size", len(deck)),
		slog.Int("selected", len(selected)))
	return selected, nil
}

func (s *studyServiceImpl) SubmitAnswer(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	input AnswerInput,
) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	var result *AnswerResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		sessions := s.sessions.WithTx(tx)
		attempts := s.attempts.WithTx(tx)
		cards := s.cards.WithTx(tx)

		// Session before card, so concurrent submissions lock in the same order.
		session, err := ownedSession(ctx, sessions.GetForUpdate, userID, sessionID)
		if err != nil {
			return err
		}
		if session.Status != domain.SessionStatusActive {
			return domain.ErrSessionNotActive
		}

		card, err := ownedCard(ctx, cards.GetForUpdate, userID, input.FlashcardID)
		if err != nil {
			return err
		}

		attempt, err := domain.NewQuizAttempt(session.ID, card.ID, input.IsCorrect, input.ResponseTimeSeconds, now)
		if err != nil {
			return err
		}
		if err := attempts.Create(ctx, attempt); err != nil {
			return NewServiceError("submit_answer", "failed to save attempt", err)
		}

		history, err := attempts.ListBySession(ctx, session.ID)
		if err != nil {
			return NewServiceError("submit_answer", "failed to load session attempts", err)
		}

		next, schedule, err := s.engine.ApplyAnswer(
			card,
			input.IsCorrect,
			input.ResponseTimeSeconds,
			domain.MeanResponseSeconds(history),
			now,
		)
		if err != nil {
			return NewServiceError("submit_answer", "failed to schedule card", err)
		}
		if err := cards.Update(ctx, next); err != nil {
			return NewServiceError("submit_answer", "failed to save card", err)
		}

		if err := session.RecordAnswer(input.IsCorrect, now); err != nil {
			return err
		}
		if err := sessions.Update(ctx, session); err != nil {
			return NewServiceError("submit_answer", "failed to save session", err)
		}

		result = &AnswerResult{Attempt: attempt, Card: next, Schedule: schedule, Session: session}
		return nil
	})
	if err != nil {
		if isExpected(err) {
			log.Debug("answer rejected",
				slog.String("session_id", sessionID.String()),
				slog.String("error", err.Error()))
		} else {
			log.Error("failed to submit answer",
				slog.String("session_id", sessionID.String()),
				slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Debug("answer recorded",
		slog.String("session_id", sessionID.String()),
		slog.String("card_id", input.FlashcardID.String()),
		slog.Bool("correct", input.IsCorrect),
		slog.Int("interval_days", result.Schedule.IntervalDays),
		slog.Float64("difficulty_score", result.Card.DifficultyScore))
	return result, nil
}

func (s *studyServiceImpl) AdaptiveDifficulty(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (srs.Recommendation, error) {
	if _, err := ownedSession(ctx, s.sessions.GetByID, userID, sessionID); err != nil {
		return srs.Recommendation{}, err
	}
	attempts, err := s.attempts.ListBySession(ctx, sessionID)
	if err != nil {
		return srs.Recommendation{}, NewServiceError("adaptive_difficulty", "failed to load attempts", err)
	}
	return s.engine.RecommendDifficulty(attempts), nil
}

// ownedSession loads a session with get and hides sessions that belong to another user.
func ownedSession(
	ctx context.Context,
	get func(context.Context, uuid.UUID) (*domain.StudySession, error),
	userID, sessionID uuid.UUID,
) (*domain.StudySession, error) {
	session, err := get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrStudySessionNotFound
		}
		return nil, NewServiceError("get_session", "failed to load session", err)
	}
	if session.UserID != userID {
		return nil, store.ErrStudySessionNotFound
	}
	return session, nil
}

// isExpected reports whether err is a client-facing rejection rather than a failure.
func isExpected(err error) bool {
	var serviceErr *ServiceError
	return !errors.As(err, &serviceErr)
}
