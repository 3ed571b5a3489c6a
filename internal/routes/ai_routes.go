package routes

import (
	"github.com/go-chi/chi/v5"

	"jobtrack/internal/handlers"
)

func RegisterAIRoutes(router chi.Router) {
	aiHandler := handlers.NewAIHandler()

	router.Route("/ai", func(r chi.Router) {
		r.Post("/summarize", aiHandler.Summarize)
		r.Post("/compare", aiHandler.Compare)
	})
}
