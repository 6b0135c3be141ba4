package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/proxygen/internal/api/handlers"
)

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	system := handlers.NewSystemHandler(s.catalog, s.metrics, s.cfg.Version)
	decklist := handlers.NewDecklistHandler(s.catalog, s.cfg.MaxTotalCount, s.metrics, s.logger)
	card := handlers.NewCardHandler(s.catalog, s.metrics)

	s.router.Get("/health", system.Health)

	// HTML pages
	s.router.Get("/", handlers.Form)
	s.router.Get("/proxygen.html", handlers.Form)
	s.router.Get("/proxygen.css", handlers.Stylesheet)
	s.router.Post("/proxygen.html", decklist.Render)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(jsonContentType)

		r.Post("/decklists/parse", decklist.Parse)

		r.Route("/cards", func(r chi.Router) {
			r.Get("/suggest", card.Suggest)
			r.Get("/{name}", card.GetCard)
		})

		r.Get("/metrics", system.Metrics)
	})
}
