package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flashcard validation errors
var (
	ErrFlashcardIDEmpty       = errors.New("flashcard ID cannot be empty")
	ErrFlashcardUserIDEmpty   = errors.New("flashcard user ID cannot be empty")
	ErrFlashcardQuestionEmpty = errors.New("flashcard question cannot be empty")
	ErrFlashcardAnswerEmpty   = errors.New("flashcard answer cannot be empty")
	ErrFlashcardTopicEmpty    = errors.New("flashcard topic cannot be empty")
	ErrDifficultyScoreRange   = errors.New("difficulty score must be between 0 and 1")
)

// DifficultyTier is the coarse, user-facing difficulty label of a card.
type DifficultyTier string

const (
	DifficultyEasy   DifficultyTier = "easy"
	DifficultyMedium DifficultyTier = "medium"
	DifficultyHard   DifficultyTier = "hard"
)

// Default scheduling state for a card that has never been reviewed.
const (
	DefaultDifficultyScore = 0.5
	DefaultEasinessFactor  = 2.5
	DefaultTopic           = "General"
)

// IsValid reports whether the tier is one of easy, medium or hard.
func (d DifficultyTier) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ParseDifficultyTier converts a string into a DifficultyTier.
// The empty string is rejected; callers decide on their own default.
func ParseDifficultyTier(s string) (DifficultyTier, error) {
	tier := DifficultyTier(strings.ToLower(strings.TrimSpace(s)))
	if !tier.IsValid() {
		return "", ErrInvalidDifficulty
	}
	return tier, nil
}

// Flashcard is a question/answer pair owned by one learner, together with
// its spaced-repetition scheduling state.
//
// LastReviewedAt is nil until the first answer is recorded; a nil value is
// what makes a card "new" to the card selector.
type Flashcard struct {
	ID                 uuid.UUID      `json:"id"`
	UserID             uuid.UUID      `json:"user_id"`
	Question           string         `json:"question"`
	Answer             string         `json:"answer"`
	Topic              string         `json:"topic"`
	Difficulty         DifficultyTier `json:"difficulty"`
	DifficultyScore    float64        `json:"difficulty_score"`
	EasinessFactor     float64        `json:"easiness_factor"`
	ReviewIntervalDays int            `json:"review_interval_days"`
	ReviewCount        int            `json:"review_count"`
	LastReviewedAt     *time.Time     `json:"last_reviewed_at,omitempty"`
	NextReviewAt       *time.Time     `json:"next_review_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// NewFlashcard creates a never-reviewed card with default scheduling state.
// An empty topic falls back to DefaultTopic and an empty tier to medium.
func NewFlashcard(
	userID uuid.UUID,
	question, answer, topic string,
	difficulty DifficultyTier,
) (*Flashcard, error) {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	if difficulty == "" {
		difficulty = DifficultyMedium
	}

	now := time.Now().UTC()
	card := &Flashcard{
		ID:              uuid.New(),
		UserID:          userID,
		Question:        strings.TrimSpace(question),
		Answer:          strings.TrimSpace(answer),
		Topic:           strings.TrimSpace(topic),
		Difficulty:      difficulty,
		DifficultyScore: DefaultDifficultyScore,
		EasinessFactor:  DefaultEasinessFactor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}
	if f.UserID == uuid.Nil {
		return ErrFlashcardUserIDEmpty
	}
	if f.Question == "" {
		return ErrFlashcardQuestionEmpty
	}
	if f.Answer == "" {
		return ErrFlashcardAnswerEmpty
	}
	if f.Topic == "" {
		return ErrFlashcardTopicEmpty
	}
	if !f.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}
	if f.DifficultyScore < 0 || f.DifficultyScore > 1 {
		return ErrDifficultyScoreRange
	}
	return nil
}

// IsNew reports whether the card has never been reviewed.
func (f *Flashcard) IsNew() bool {
	return f.LastReviewedAt == nil
}

// FlashcardPatch holds a partial update. Empty fields are left unchanged.
type FlashcardPatch struct {
	Question   string
	Answer     string
	Topic      string
	Difficulty DifficultyTier
}

// IsEmpty reports whether the patch changes nothing.
func (p FlashcardPatch) IsEmpty() bool {
	return p.Question == "" && p.Answer == "" && p.Topic == "" && p.Difficulty == ""
}

// Apply updates the card in place with the non-empty fields of the patch.
// The card is left untouched if the result would be invalid.
func (f *Flashcard) Apply(p FlashcardPatch) error {
	updated := *f
	if q := strings.TrimSpace(p.Question); q != "" {
		updated.Question = q
	}
	if a := strings.TrimSpace(p.Answer); a != "" {
		updated.Answer = a
	}
	if t := strings.TrimSpace(p.Topic); t != "" {
		updated.Topic = t
	}
	if p.Difficulty != "" {
		updated.Difficulty = p.Difficulty
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*f = updated
	return nil
}

// Clone returns a deep copy of the card, including its time pointers.
func (f *Flashcard) Clone() *Flashcard {
	c := *f
	if f.LastReviewedAt != nil {
		t := *f.LastReviewedAt
		c.LastReviewedAt = &t
	}
	if f.NextReviewAt != nil {
		t := *f.NextReviewAt
		c.NextReviewAt = &t
	}
	return &c
}

// FlashcardFilter narrows a card listing. Zero values mean "no filter".
type FlashcardFilter struct {
	Topic      string
	Difficulty DifficultyTier
}
