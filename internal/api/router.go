package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/api/handlers"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		raidHandler := handlers.NewRaidHandler(s.store)
		r.Route("/raids", func(r chi.Router) {
			r.Get("/", raidHandler.ListRaids)
			r.Post("/compare", raidHandler.Compare)
			r.Post("/trends", raidHandler.Trends)
			r.Post("/class-changes", raidHandler.ClassChanges)
			r.Get("/{raid}", raidHandler.GetRaid)
			r.Get("/{raid}/top", raidHandler.GetTopSpecs)
		})

		mythicHandler := handlers.NewMythicHandler(s.mythic)
		r.Route("/mythic", func(r chi.Router) {
			r.Get("/scaling", mythicHandler.GetScaling)
			r.Get("/scaling/deltas", mythicHandler.GetScalingDeltas)
		})
	})

	// Dashboard HTML pages
	dashboardHandler := handlers.NewDashboardHandler(s.store, s.mythic, s.chartCfg)
	s.router.Get("/dashboard/{view}", dashboardHandler.Render)
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "parseviz-api",
	})
}
