package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashlearn/internal/config"
	"github.com/phrazzld/flashlearn/internal/domain/srs"
	"github.com/phrazzld/flashlearn/internal/generation"
	"github.com/phrazzld/flashlearn/internal/platform/gemini"
	"github.com/phrazzld/flashlearn/internal/platform/ollama"
	"github.com/phrazzld/flashlearn/internal/platform/postgres"
	"github.com/phrazzld/flashlearn/internal/service"
	"github.com/phrazzld/flashlearn/internal/service/auth"
	"github.com/phrazzld/flashlearn/internal/store"
)

// cardGenerator is what the configured LLM backend provides.
type cardGenerator interface {
	generation.Generator
	generation.Pinger
}

// application holds the shared dependencies so they can be wired once and
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore      store.UserStore
	flashcardStore store.FlashcardStore
	sessionStore   store.StudySessionStore
	attemptStore   store.QuizAttemptStore
	analyticsStore store.AnalyticsStore

	jwtService auth.JWTService
	generator  cardGenerator
	engine     *srs.Engine

	userService      service.UserService
	flashcardService service.FlashcardService
	studyService     service.StudyService
	analyticsService service.AnalyticsService
}

// newApplication wires stores, the scheduling engine, the card generator and
// the services on top of an open database.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.userStore = postgres.NewPostgresUserStore(db, log)
	app.flashcardStore = postgres.NewPostgresFlashcardStore(db, log)
	app.sessionStore = postgres.NewPostgresStudySessionStore(db, log)
	app.attemptStore = postgres.NewPostgresQuizAttemptStore(db, log)
	app.analyticsStore = postgres.NewPostgresAnalyticsStore(db, log)

	params, err := srs.NewParams(srs.ParamsConfig{
		EasinessMode:                  cfg.SRS.EasinessMode,
		DefaultAverageResponseSeconds: cfg.SRS.DefaultAverageResponseSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure SRS engine: %w", err)
	}
	app.engine = srs.NewEngine(params)

	app.generator, err = newGenerator(ctx, cfg.LLM, log.With(slog.String("component", "llm_generator")))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	log.Info("LLM generator initialized", slog.String("provider", cfg.LLM.Provider))

	hasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	app.userService = service.NewUserService(app.userStore, hasher, hasher, app.jwtService, log)
	app.flashcardService = service.NewFlashcardService(db, app.flashcardStore, app.generator, log)
	app.studyService = service.NewStudyService(
		db,
		app.sessionStore,
		app.attemptStore,
		app.flashcardStore,
		app.engine,
		cfg.SRS.DefaultCardLimit,
		log,
	)
	app.analyticsService = service.NewAnalyticsService(app.analyticsStore, app.flashcardStore, log)

	log.Info("application initialized")
	return app, nil
}

// newGenerator builds the backend named by cfg.Provider.
func newGenerator(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (cardGenerator, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewGenerator(ctx, log, gemini.OptionsFromConfig(cfg))
	case "ollama":
		return ollama.NewGenerator(log, ollama.OptionsFromConfig(cfg))
	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// Run serves HTTP until ctx is cancelled, then drains and releases resources.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
