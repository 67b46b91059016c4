package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var selectTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// card builds a test flashcard. A nil lastReviewed makes it new.
func card(name string, tier domain.DifficultyTier, lastReviewed *time.Time) *domain.Flashcard {
	return &domain.Flashcard{
		ID:             uuid.New(),
		Question:       name,
		Difficulty:     tier,
		LastReviewedAt: lastReviewed,
	}
}

func at(d time.Duration) *time.Time {
	t := selectTime.Add(d)
	return &t
}

func questions(cards []*domain.Flashcard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Question)
	}
	return out
}

func tierPtr(t domain.DifficultyTier) *domain.DifficultyTier {
	return &t
}

func TestSelectNextCards(t *testing.T) {
	t.Parallel()

	deck := []*domain.Flashcard{
		card("new-easy", domain.DifficultyEasy, nil),
		card("due-hard", domain.DifficultyHard, at(-48*time.Hour)),
		card("future-easy", domain.DifficultyEasy, at(time.Hour)),
		card("new-hard", domain.DifficultyHard, nil),
		card("due-medium", domain.DifficultyMedium, at(-time.Hour)),
		card("now-medium", domain.DifficultyMedium, at(0)),
		card("due-easy", domain.DifficultyEasy, at(-time.Minute)),
		card("new-medium", domain.DifficultyMedium, nil),
	}

	testCases := []struct {
		name      string
		limit     int
		preferred *domain.DifficultyTier
		want      []string
	}{
		{
			name:  "due before new in deck order",
			limit: 10,
			want:  []string{"due-hard", "due-medium", "due-easy", "new-easy", "new-hard", "new-medium"},
		},
		{
			name:      "prefer easy",
			limit:     10,
			preferred: tierPtr(domain.DifficultyEasy),
			want:      []string{"due-easy", "due-medium", "due-hard", "new-easy", "new-medium", "new-hard"},
		},
		{
			name:      "prefer hard",
			limit:     10,
			preferred: tierPtr(domain.DifficultyHard),
			want:      []string{"due-hard", "due-medium", "due-easy", "new-hard", "new-medium", "new-easy"},
		},
		{
			name:      "prefer medium keeps other tiers in order",
			limit:     10,
			preferred: tierPtr(domain.DifficultyMedium),
			want:      []string{"due-medium", "due-hard", "due-easy", "new-medium", "new-easy", "new-hard"},
		},
		{
			name:      "preference never lifts new above due",
			limit:     4,
			preferred: tierPtr(domain.DifficultyHard),
			want:      []string{"due-hard", "due-medium", "due-easy", "new-hard"},
		},
		{
			name:  "truncated to limit",
			limit: 2,
			want:  []string{"due-hard", "due-medium"},
		},
		{
			name:  "zero limit",
			limit: 0,
			want:  []string{},
		},
		{
			name:  "negative limit",
			limit: -1,
			want:  []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := SelectNextCards(deck, tc.limit, tc.preferred, selectTime)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, questions(got))
		})
	}
}

func TestSelectNextCardsNeverReturnsNotYetDue(t *testing.T) {
	t.Parallel()

	deck := []*domain.Flashcard{
		card("future", domain.DifficultyEasy, at(24*time.Hour)),
		card("exactly-now", domain.DifficultyEasy, at(0)),
	}

	got := SelectNextCards(deck, len(deck)+5, tierPtr(domain.DifficultyEasy), selectTime)
	assert.Empty(t, got)
}

func TestSelectNextCardsLeavesDeckUntouched(t *testing.T) {
	t.Parallel()

	deck := []*domain.Flashcard{
		card("a", domain.DifficultyHard, nil),
		card("b", domain.DifficultyEasy, nil),
		nil,
		card("c", domain.DifficultyEasy, at(-time.Hour)),
	}
	before := questions([]*domain.Flashcard{deck[0], deck[1], deck[3]})

	got := SelectNextCards(deck, 10, tierPtr(domain.DifficultyEasy), selectTime)

	assert.Equal(t, []string{"c", "b", "a"}, questions(got))
	assert.Equal(t, before, questions([]*domain.Flashcard{deck[0], deck[1], deck[3]}))
}

func TestSelectNextCardsEmptyDeck(t *testing.T) {
	t.Parallel()

	assert.Empty(t, SelectNextCards(nil, 5, nil, selectTime))
}

func TestIsDue(t *testing.T) {
	t.Parallel()

	assert.False(t, IsDue(card("new", domain.DifficultyEasy, nil), selectTime))
	assert.True(t, IsDue(card("past", domain.DifficultyEasy, at(-time.Second)), selectTime))
	assert.False(t, IsDue(card("now", domain.DifficultyEasy, at(0)), selectTime))
	assert.False(t, IsDue(card("future", domain.DifficultyEasy, at(time.Second)), selectTime))
}
