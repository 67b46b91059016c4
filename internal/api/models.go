package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/service"
)

// TokenTypeBearer is the token_type of every auth response.
const TokenTypeBearer = "bearer"

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the body of POST /api/auth/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresAt    string       `json:"expires_at"`
	User         UserResponse `json:"user"`
}

// CreateFlashcardRequest is the body of POST /api/flashcards.
type CreateFlashcardRequest struct {
	Question   string `json:"question"   validate:"required,max=2000"`
	Answer     string `json:"answer"     validate:"required,max=2000"`
	Topic      string `json:"topic"      validate:"omitempty,max=100"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// UpdateFlashcardRequest is the body of PUT /api/flashcards/{id}. Omitted
// fields keep their value.
type UpdateFlashcardRequest struct {
	Question   string `json:"question"   validate:"omitempty,max=2000"`
	Answer     string `json:"answer"     validate:"omitempty,max=2000"`
	Topic      string `json:"topic"      validate:"omitempty,max=100"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// GenerateFlashcardsRequest is the body of POST /api/flashcards/generate.
type GenerateFlashcardsRequest struct {
	Text       string `json:"text"       validate:"required,max=50000"`
	Topic      string `json:"topic"      validate:"omitempty,max=100"`
	NumCards   int    `json:"num_cards"  validate:"omitempty,min=1,max=20"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// FlashcardResponse is a card with its scheduling state.
type FlashcardResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Question           string                `json:"question"`
	Answer             string                `json:"answer"`
	Topic              string                `json:"topic"`
	Difficulty         domain.DifficultyTier `json:"difficulty"`
	DifficultyScore    float64               `json:"difficulty_score"`
	EasinessFactor     float64               `json:"easiness_factor"`
	ReviewIntervalDays int                   `json:"review_interval_days"`
	ReviewCount        int                   `json:"review_count"`
	LastReviewedAt     *time.Time            `json:"last_reviewed_at"`
	NextReviewAt       *time.Time            `json:"next_review_at"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// StudyCardResponse is a card served during a session, without its answer.
type StudyCardResponse struct {
	ID              uuid.UUID             `json:"id"`
	Question        string                `json:"question"`
	Topic           string                `json:"topic"`
	Difficulty      domain.DifficultyTier `json:"difficulty"`
	DifficultyScore float64               `json:"difficulty_score"`
	ReviewCount     int                   `json:"review_count"`
	LastReviewedAt  *time.Time            `json:"last_reviewed_at"`
}

// StartSessionRequest is the body of POST /api/study/sessions.
type StartSessionRequest struct {
	Topic       *string `json:"topic"        validate:"omitempty,max=100"`
	TargetCount int     `json:"target_count" validate:"omitempty,min=1,max=100"`
}

// StudySessionResponse is the public view of a session.
type StudySessionResponse struct {
	ID              uuid.UUID            `json:"id"`
	Topic           *string              `json:"topic"`
	Status          domain.SessionStatus `json:"status"`
	TargetCount     int                  `json:"target_count"`
	CardsStudied    int                  `json:"cards_studied"`
	CardsCorrect    int                  `json:"cards_correct"`
	Accuracy        float64              `json:"accuracy"`
	DurationMinutes float64              `json:"duration_minutes"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	CompletedAt     *time.Time           `json:"completed_at"`
}

// SubmitAnswerRequest is the body of POST /api/study/sessions/{id}/answers.
type SubmitAnswerRequest struct {
	FlashcardID         string `json:"flashcard_id"          validate:"required,uuid"`
	IsCorrect           *bool  `json:"is_correct"            validate:"required"`
	ResponseTimeSeconds int    `json:"response_time_seconds" validate:"gte=0,lte=86400"`
}

// QuizAttemptResponse is one recorded answer.
type QuizAttemptResponse struct {
	ID                  uuid.UUID `json:"id"`
	SessionID           uuid.UUID `json:"session_id"`
	FlashcardID         uuid.UUID `json:"flashcard_id"`
	IsCorrect           bool      `json:"is_correct"`
	ResponseTimeSeconds int       `json:"response_time_seconds"`
	CreatedAt           time.Time `json:"created_at"`
}

// AnswerResponse is the outcome of submitting an answer.
type AnswerResponse struct {
	Attempt         QuizAttemptResponse  `json:"attempt"`
	NextReviewAt    time.Time            `json:"next_review_at"`
	IntervalDays    int                  `json:"interval_days"`
	EasinessFactor  float64              `json:"easiness_factor"`
	DifficultyScore float64              `json:"difficulty_score"`
	Session         StudySessionResponse `json:"session"`
}

// CardsByDifficultyResponse counts cards per tier.
type CardsByDifficultyResponse struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Username: u.Username, CreatedAt: u.CreatedAt}
}

func authResultToResponse(res *service.AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		TokenType:    TokenTypeBearer,
		ExpiresAt:    res.Tokens.ExpiresAt.UTC().Format(time.RFC3339),
		User:         userToResponse(res.User),
	}
}

func flashcardToResponse(c *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:                 c.ID,
		Question:           c.Question,
		Answer:             c.Answer,
		Topic:              c.Topic,
		Difficulty:         c.Difficulty,
		DifficultyScore:    c.DifficultyScore,
		EasinessFactor:     c.EasinessFactor,
		ReviewIntervalDays: c.ReviewIntervalDays,
		ReviewCount:        c.ReviewCount,
		LastReviewedAt:     c.LastReviewedAt,
		NextReviewAt:       c.NextReviewAt,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func flashcardsToResponse(cards []*domain.Flashcard) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, flashcardToResponse(c))
	}
	return out
}

func studyCardsToResponse(cards []*domain.Flashcard) []StudyCardResponse {
	out := make([]StudyCardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, StudyCardResponse{
			ID:              c.ID,
			Question:        c.Question,
			Topic:           c.Topic,
			Difficulty:      c.Difficulty,
			DifficultyScore: c.DifficultyScore,
			ReviewCount:     c.ReviewCount,
			LastReviewedAt:  c.LastReviewedAt,
		})
	}
	return out
}

func sessionToResponse(s *domain.StudySession) StudySessionResponse {
	return StudySessionResponse{
		ID:              s.ID,
		Topic:           s.Topic,
		Status:          s.Status,
		TargetCount:     s.TargetCount,
		CardsStudied:    s.CardsStudied,
		CardsCorrect:    s.CardsCorrect,
		Accuracy:        s.Accuracy(),
		DurationMinutes: s.DurationMinutes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		CompletedAt:     s.CompletedAt,
	}
}

func answerToResponse(res *service.AnswerResult) AnswerResponse {
	return AnswerResponse{
		Attempt: QuizAttemptResponse{
			ID:                  res.Attempt.ID,
			SessionID:           res.Attempt.SessionID,
			FlashcardID:         res.Attempt.FlashcardID,
			IsCorrect:           res.Attempt.IsCorrect,
			ResponseTimeSeconds: res.Attempt.ResponseTimeSeconds,
			CreatedAt:           res.Attempt.CreatedAt,
		},
		NextReviewAt:    res.Schedule.NextReviewAt,
		IntervalDays:    res.Schedule.IntervalDays,
		EasinessFactor:  res.Schedule.EasinessFactor,
		DifficultyScore: res.Card.DifficultyScore,
		Session:         sessionToResponse(res.Session),
	}
}
