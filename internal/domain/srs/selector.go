package srs

import (
	"slices"
	"time"

	"github.com/phrazzld/flashlearn/internal/domain"
)

// IsDue reports whether a reviewed card is ready for another review.
// Never-reviewed cards are not due; they are new.
func IsDue(card *domain.Flashcard, now time.Time) bool {
	return card.LastReviewedAt != nil && card.LastReviewedAt.Before(now)
}

// SelectNextCards picks up to limit cards to study next.
//
// Due cards always come before new cards. Cards reviewed at or after now are
// never returned. With a preferred tier, each of the two groups is reordered
// so matching cards come first, then medium cards, then the rest, keeping the
// original order within equal ranks.
func SelectNextCards(
	deck []*domain.Flashcard,
	limit int,
	preferred *domain.DifficultyTier,
	now time.Time,
) []*domain.Flashcard {
	if limit <= 0 {
		return []*domain.Flashcard{}
	}

	var due, fresh []*domain.Flashcard
	for _, card := range deck {
		if card == nil {
			continue
		}
		switch {
		case card.IsNew():
			fresh = append(fresh, card)
		case IsDue(card, now):
			due = append(due, card)
		}
	}

	if preferred != nil {
		rank := tierRank(*preferred)
		slices.SortStableFunc(due, rank)
		slices.SortStableFunc(fresh, rank)
	}

	selected := make([]*domain.Flashcard, 0, min(limit, len(due)+len(fresh)))
	selected = append(selected, due...)
	selected = append(selected, fresh...)
	if len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

func tierRank(preferred domain.DifficultyTier) func(a, b *domain.Flashcard) int {
	key := func(c *domain.Flashcard) int {
		switch c.Difficulty {
		case preferred:
			return 0
		case domain.DifficultyMedium:
			return 1
		default:
			return 2
		}
	}
	return func(a, b *domain.Flashcard) int {
		return key(a) - key(b)
	}
}
