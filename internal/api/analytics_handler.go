package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashlearn/internal/api/shared"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/service"
)

// AnalyticsHandler serves progress summaries.
type AnalyticsHandler struct {
	analytics service.AnalyticsService
	logger    *slog.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(analytics service.AnalyticsService, log *slog.Logger) *AnalyticsHandler {
	if analytics == nil {
		panic("analytics service cannot be nil for AnalyticsHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &AnalyticsHandler{
		analytics: analytics,
		logger:    log.With(slog.String("component", "analytics_handler")),
	}
}

// Dashboard handles GET /api/analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r)
	if !ok {
		return
	}
	stats, err := h.analytics.Dashboard(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load dashboard")
		return
	}
	if stats.Topics == nil {
		stats.Topics = []string{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// CardsByDifficulty handles GET /api/analytics/cards-by-difficulty.
func (h *AnalyticsHandler) CardsByDifficulty(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r)
	if !ok {
		return
	}
	counts, err := h.analytics.CardsByDifficulty(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to count flashcards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CardsByDifficultyResponse{
		Easy:   counts[domain.DifficultyEasy],
		Medium: counts[domain.DifficultyMedium],
		Hard:   counts[domain.DifficultyHard],
	})
}
