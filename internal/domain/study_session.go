package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Study session validation errors
var (
	ErrSessionUserIDEmpty    = errors.New("study session user ID cannot be empty")
	ErrInvalidSessionStatus  = errors.New("invalid study session status")
	ErrInvalidTargetCount    = errors.New("target count must be positive")
	ErrSessionCountsMismatch = errors.New("cards correct cannot exceed cards studied")
)

// SessionStatus is the lifecycle state of a study session.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusPaused    SessionStatus = "paused"
	SessionStatusCompleted SessionStatus = "completed"
)

// DefaultTargetCount is the number of cards a session aims for when the
// learner does not choose one.
const DefaultTargetCount = 10

// IsValid reports whether the status is a known value.
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusActive, SessionStatusPaused, SessionStatusCompleted:
		return true
	default:
		return false
	}
}

// StudySession groups the quiz attempts a learner makes in one sitting.
//
// Status moves active <-> paused and from either of those to completed.
// Completed is terminal. Time spent paused does not count toward
// DurationMinutes.
type StudySession struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	Topic           *string       `json:"topic,omitempty"`
	Status          SessionStatus `json:"status"`
	TargetCount     int           `json:"target_count"`
	CardsStudied    int           `json:"cards_studied"`
	CardsCorrect    int           `json:"cards_correct"`
	DurationMinutes float64       `json:"duration_minutes"`
	PausedAt        *time.Time    `json:"paused_at,omitempty"`
	PausedSeconds   int64         `json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
}

// NewStudySession starts an active session. A nil or blank topic means the
// session draws from every card; a non-positive target falls back to
// DefaultTargetCount.
func NewStudySession(userID uuid.UUID, topic *string, targetCount int, now time.Time) (*StudySession, error) {
	if targetCount <= 0 {
		targetCount = DefaultTargetCount
	}
	if topic != nil && *topic == "" {
		topic = nil
	}

	session := &StudySession{
		ID:          uuid.New(),
		UserID:      userID,
		Topic:       topic,
		Status:      SessionStatusActive,
		TargetCount: targetCount,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}
	return session, nil
}

// Validate checks if the StudySession has valid data.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrInvalidID
	}
	if s.UserID == uuid.Nil {
		return ErrSessionUserIDEmpty
	}
	if !s.Status.IsValid() {
		return ErrInvalidSessionStatus
	}
	if s.TargetCount <= 0 {
		return ErrInvalidTargetCount
	}
	if s.CardsCorrect > s.CardsStudied {
		return ErrSessionCountsMismatch
	}
	return nil
}

// TopicFilter returns the session topic, or "" when the session spans all topics.
func (s *StudySession) TopicFilter() string {
	if s.Topic == nil {
		return ""
	}
	return *s.Topic
}

// Accuracy returns the fraction of answers that were correct, or 0 when
// nothing has been answered yet.
func (s *StudySession) Accuracy() float64 {
	if s.CardsStudied == 0 {
		return 0
	}
	return float64(s.CardsCorrect) / float64(s.CardsStudied)
}

// RecordAnswer bumps the session counters. Only active sessions accept answers.
func (s *StudySession) RecordAnswer(correct bool, now time.Time) error {
	if s.Status != SessionStatusActive {
		return ErrSessionNotActive
	}
	s.CardsStudied++
	if correct {
		s.CardsCorrect++
	}
	s.UpdatedAt = now.UTC()
	return nil
}

// Pause suspends an active session.
func (s *StudySession) Pause(now time.Time) error {
	if s.Status != SessionStatusActive {
		return ErrInvalidSessionTransition
	}
	t := now.UTC()
	s.Status = SessionStatusPaused
	s.PausedAt = &t
	s.UpdatedAt = t
	return nil
}

// Resume reactivates a paused session and banks the paused interval.
func (s *StudySession) Resume(now time.Time) error {
	if s.Status != SessionStatusPaused {
		return ErrInvalidSessionTransition
	}
	s.bankPause(now)
	s.Status = SessionStatusActive
	s.UpdatedAt = now.UTC()
	return nil
}

// Complete finishes the session and fixes its duration.
func (s *StudySession) Complete(now time.Time) error {
	if s.Status == SessionStatusCompleted {
		return ErrInvalidSessionTransition
	}
	if s.Status == SessionStatusPaused {
		s.bankPause(now)
	}

	t := now.UTC()
	active := t.Sub(s.CreatedAt) - time.Duration(s.PausedSeconds)*time.Second
	if active < 0 {
		active = 0
	}

	s.Status = SessionStatusCompleted
	s.CompletedAt = &t
	s.DurationMinutes = math.Round(active.Minutes()*100) / 100
	s.UpdatedAt = t
	return nil
}

func (s *StudySession) bankPause(now time.Time) {
	if s.PausedAt == nil {
		return
	}
	if d := now.UTC().Sub(*s.PausedAt); d > 0 {
		s.PausedSeconds += int64(d / time.Second)
	}
	s.PausedAt = nil
}
