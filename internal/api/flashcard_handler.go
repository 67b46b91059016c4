package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashlearn/internal/api/shared"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/generation"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/phrazzld/flashlearn/internal/service"
)

// FlashcardHandler serves the learner's deck.
type FlashcardHandler struct {
	cards  service.FlashcardService
	logger *slog.Logger
}

// NewFlashcardHandler creates a FlashcardHandler.
func NewFlashcardHandler(cards service.FlashcardService, log *slog.Logger) *FlashcardHandler {
	if cards == nil {
		panic("flashcard service cannot be nil for FlashcardHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &FlashcardHandler{
		cards:  cards,
		logger: log.With(slog.String("component", "flashcard_handler")),
	}
}

// List handles GET /api/flashcards?topic=&difficulty=.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r)
	if !ok {
		return
	}
	difficulty, err := queryDifficulty(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	filter := domain.FlashcardFilter{Topic: r.URL.Query().Get("topic"), Difficulty: difficulty}
	cards, err := h.cards.List(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, flashcardsToResponse(cards))
}

// Get handles GET /api/flashcards/{id}.
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	card, err := h.cards.Get(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load flashcard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, flashcardToResponse(card))
}

// Create handles POST /api/flashcards.
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r)
	if !ok {
		return
	}
	var req CreateFlashcardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cards.Create(r.Context(), userID, service.CreateFlashcardInput{
		Question:   req.Question,
		Answer:     req.Answer,
		Topic:      req.Topic,
		Difficulty: domain.DifficultyTier(req.Difficulty),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create flashcard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, flashcardToResponse(card))
}

// Update handles PUT /api/flashcards/{id}.
func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateFlashcardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cards.Update(r.Context(), userID, cardID, domain.FlashcardPatch{
		Question:   req.Question,
		Answer:     req.Answer,
		Topic:      req.Topic,
		Difficulty: domain.DifficultyTier(req.Difficulty),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update flashcard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, flashcardToResponse(card))
}

// Delete handles DELETE /api/flashcards/{id}.
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.cards.Delete(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete flashcard")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Topics handles GET /api/flashcards/topics.
func (h *FlashcardHandler) Topics(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r)
	if !ok {
		return
	}
	topics, err := h.cards.ListTopics(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list topics")
		return
	}
	if topics == nil {
		topics = []string{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, topics)
}

// Generate handles POST /api/flashcards/generate.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r)
	if !ok {
		return
	}
	var req GenerateFlashcardsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cards, err := h.cards.Generate(r.Context(), userID, generation.Request{
		Text:       req.Text,
		Topic:      req.Topic,
		NumCards:   req.NumCards,
		Difficulty: domain.DifficultyTier(req.Difficulty),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate flashcards")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("flashcards generated",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusCreated, flashcardsToResponse(cards))
}
