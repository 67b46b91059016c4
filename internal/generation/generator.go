package generation

import (
	"context"
	"strings"

	"github.com/phrazzld/flashlearn/internal/domain"
)

// Card limits for a single generation request.
const (
	DefaultNumCards = 5
	MaxNumCards     = 20
)

// Request describes one generation call.
type Request struct {
	Text       string
	Topic      string
	NumCards   int
	Difficulty domain.DifficultyTier
}

// Normalize fills defaults and validates the request. Zero NumCards means
// DefaultNumCards, an empty topic means domain.DefaultTopic and an empty
// difficulty means medium.
func (r Request) Normalize() (Request, error) {
	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		return r, ErrEmptyText
	}

	r.Topic = strings.TrimSpace(r.Topic)
	if r.Topic == "" {
		r.Topic = domain.DefaultTopic
	}

	if r.NumCards == 0 {
		r.NumCards = DefaultNumCards
	}
	if r.NumCards < 1 || r.NumCards > MaxNumCards {
		return r, ErrInvalidCardCount
	}

	if r.Difficulty == "" {
		r.Difficulty = domain.DifficultyMedium
	}
	if !r.Difficulty.IsValid() {
		return r, domain.ErrInvalidDifficulty
	}

	return r, nil
}

// Card is one generated question/answer pair, not yet owned by anyone.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generator defines the interface for generating flashcards from text.
type Generator interface {
	// GenerateCards returns at most req.NumCards cards. The request is
	// expected to be normalized. An error wraps one of the sentinels in
	// errors.go.
	GenerateCards(ctx context.Context, req Request) ([]Card, error)
}

// Pinger is implemented by generators that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
