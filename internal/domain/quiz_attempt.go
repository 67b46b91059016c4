package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Quiz attempt validation errors
var (
	ErrAttemptSessionIDEmpty   = errors.New("quiz attempt session ID cannot be empty")
	ErrAttemptFlashcardIDEmpty = errors.New("quiz attempt flashcard ID cannot be empty")
	ErrNegativeResponseTime    = errors.New("response time cannot be negative")
)

// QuizAttempt records one answer given during a study session.
// Attempts are immutable once created.
type QuizAttempt struct {
	ID                  uuid.UUID `json:"id"`
	SessionID           uuid.UUID `json:"session_id"`
	FlashcardID         uuid.UUID `json:"flashcard_id"`
	IsCorrect           bool      `json:"is_correct"`
	ResponseTimeSeconds int       `json:"response_time_seconds"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewQuizAttempt creates a validated attempt stamped with the given time.
func NewQuizAttempt(
	sessionID, flashcardID uuid.UUID,
	isCorrect bool,
	responseTimeSeconds int,
	now time.Time,
) (*QuizAttempt, error) {
	attempt := &QuizAttempt{
		ID:                  uuid.New(),
		SessionID:           sessionID,
		FlashcardID:         flashcardID,
		IsCorrect:           isCorrect,
		ResponseTimeSeconds: responseTimeSeconds,
		CreatedAt:           now.UTC(),
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}
	return attempt, nil
}

// Validate checks if the QuizAttempt has valid data.
func (a *QuizAttempt) Validate() error {
	if a.ID == uuid.Nil {
		return ErrInvalidID
	}
	if a.SessionID == uuid.Nil {
		return ErrAttemptSessionIDEmpty
	}
	if a.FlashcardID == uuid.Nil {
		return ErrAttemptFlashcardIDEmpty
	}
	if a.ResponseTimeSeconds < 0 {
		return ErrNegativeResponseTime
	}
	return nil
}

// MeanResponseSeconds returns the mean response time of the attempts.
// It returns 0 for an empty slice.
func MeanResponseSeconds(attempts []*QuizAttempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	total := 0
	for _, a := range attempts {
		total += a.ResponseTimeSeconds
	}
	return float64(total) / float64(len(attempts))
}
