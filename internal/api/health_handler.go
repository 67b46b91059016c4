package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/flashlearn/internal/api/shared"
	"github.com/phrazzld/flashlearn/internal/generation"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/phrazzld/flashlearn/internal/redact"
)

// Health check states.
const (
	HealthOK            = "ok"
	HealthDegraded      = "degraded"
	HealthUnavailable   = "unavailable"
	HealthNotConfigured = "not_configured"
)

const healthCheckTimeout = 3 * time.Second

// DBPinger is satisfied by *sql.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Generator string `json:"generator"`
}

// HealthHandler reports whether the database and the card generator respond.
type HealthHandler struct {
	db        DBPinger
	generator generation.Pinger
	logger    *slog.Logger
}

// NewHealthHandler creates a HealthHandler. generator may be nil.
func NewHealthHandler(db DBPinger, generator generation.Pinger, log *slog.Logger) *HealthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HealthHandler{
		db:        db,
		generator: generator,
		logger:    log.With(slog.String("component", "health_handler")),
	}
}

// Check handles GET /health. An unreachable database is 503; an unreachable
// generator only degrades the status.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Status: HealthOK, Database: HealthOK, Generator: HealthNotConfigured}
	status := http.StatusOK

	if h.db == nil {
		resp.Database = HealthNotConfigured
	} else if err := h.db.PingContext(ctx); err != nil {
		log.Error("database health check failed", slog.String("error", redact.Error(err)))
		resp.Database = HealthUnavailable
		resp.Status = HealthUnavailable
		status = http.StatusServiceUnavailable
	}

	if h.generator != nil {
		resp.Generator = HealthOK
		if err := h.generator.Ping(ctx); err != nil {
			log.Warn("generator health check failed", slog.String("error", redact.Error(err)))
			resp.Generator = HealthUnavailable
			if resp.Status == HealthOK {
				resp.Status = HealthDegraded
			}
		}
	}

	shared.RespondWithJSON(w, r, status, resp)
}
