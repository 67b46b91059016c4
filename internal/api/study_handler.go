package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/api/shared"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/service"
)

// StudyHandler serves study sessions.
type StudyHandler struct {
	study  service.StudyService
	logger *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(study service.StudyService, log *slog.Logger) *StudyHandler {
	if study == nil {
		panic("study service cannot be nil for StudyHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &StudyHandler{
		study:  study,
		logger: log.With(slog.String("component", "study_handler")),
	}
}

// StartSession handles POST /api/study/sessions. The body is optional.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r)
	if !ok {
		return
	}

	var req StartSessionRequest
	if r.ContentLength != 0 {
		if !decodeAndValidate(w, r, &req) {
			return
		}
	}

	session, err := h.study.StartSession(r.Context(), userID, req.Topic, req.TargetCount)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start study session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// GetSession handles GET /api/study/sessions/{id}.
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	session, err := h.study.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load study session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// CompleteSession handles POST /api/study/sessions/{id}/complete.
func (h *StudyHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.study.CompleteSession)
}

// PauseSession handles POST /api/study/sessions/{id}/pause.
func (h *StudyHandler) PauseSession(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.study.PauseSession)
}

// ResumeSession handles POST /api/study/sessions/{id}/resume.
func (h *StudyHandler) ResumeSession(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.study.ResumeSession)
}

// transition runs a session status change for the session in the path.
func (h *StudyHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error),
) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	session, err := apply(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update study session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// Cards handles GET /api/study/sessions/{id}/cards?difficulty=&limit=.
// Answers are not included.
func (h *StudyHandler) Cards(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var preferred *domain.DifficultyTier
	difficulty, err := queryDifficulty(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if difficulty != "" {
		preferred = &difficulty
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards, err := h.study.CardsForSession(r.Context(), userID, sessionID, preferred, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to select cards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, studyCardsToResponse(cards))
}

// SubmitAnswer handles POST /api/study/sessions/{id}/answers.
func (h *StudyHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	cardID, err := uuid.Parse(req.FlashcardID)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("flashcard_id", "has invalid format", domain.ErrInvalidID), "")
		return
	}

	result, err := h.study.SubmitAnswer(r.Context(), userID, sessionID, service.AnswerInput{
		FlashcardID:         cardID,
		IsCorrect:           *req.IsCorrect,
		ResponseTimeSeconds: req.ResponseTimeSeconds,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, answerToResponse(result))
}

// AdaptiveDifficulty handles GET /api/study/sessions/{id}/adaptive-difficulty.
func (h *StudyHandler) AdaptiveDifficulty(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	rec, err := h.study.AdaptiveDifficulty(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to recommend difficulty")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, rec)
}
