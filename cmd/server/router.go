package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashlearn/internal/api"
	apiMiddleware "github.com/phrazzld/flashlearn/internal/api/middleware"
)

// setupRouter registers every route and the middleware stack.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	flashcardHandler := api.NewFlashcardHandler(app.flashcardService, app.logger)
	studyHandler := api.NewStudyHandler(app.studyService, app.logger)
	analyticsHandler := api.NewAnalyticsHandler(app.analyticsService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// A nil *sql.DB must stay a nil interface.
	var dbPinger api.DBPinger
	if app.db != nil {
		dbPinger = app.db
	}
	healthHandler := api.NewHealthHandler(dbPinger, app.generator, app.logger)
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			r.Route("/flashcards", func(r chi.Router) {
				r.Get("/", flashcardHandler.List)
				r.Post("/", flashcardHandler.Create)
				r.Get("/topics", flashcardHandler.Topics)
				r.Post("/generate", flashcardHandler.Generate)
				r.Get("/{id}", flashcardHandler.Get)
				r.Put("/{id}", flashcardHandler.Update)
				r.Delete("/{id}", flashcardHandler.Delete)
			})

			r.Route("/study/sessions", func(r chi.Router) {
				r.Post("/", studyHandler.StartSession)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", studyHandler.GetSession)
					r.Post("/complete", studyHandler.CompleteSession)
					r.Post("/pause", studyHandler.PauseSession)
					r.Post("/resume", studyHandler.ResumeSession)
					r.Get("/cards", studyHandler.Cards)
					r.Post("/answers", studyHandler.SubmitAnswer)
					r.Get("/adaptive-difficulty", studyHandler.AdaptiveDifficulty)
				})
			})

			r.Get("/analytics/dashboard", analyticsHandler.Dashboard)
			r.Get("/analytics/cards-by-difficulty", analyticsHandler.CardsByDifficulty)
		})
	})

	return r
}
