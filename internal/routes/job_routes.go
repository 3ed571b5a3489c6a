package routes

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jobtrack/internal/config"
	"jobtrack/internal/handlers"
	"jobtrack/internal/repository"
	"jobtrack/internal/services"
)

func RegisterJobRoutes(router chi.Router, db *sql.DB, s3Config *config.S3Config, authenticate func(http.Handler) http.Handler) {
	jobRepo := repository.NewJobRepository(db)
	jobHandler := handlers.NewJobHandler(jobRepo)
	resumeHandler := handlers.NewResumeHandler(jobRepo, services.NewResumeStorage(s3Config))

	router.Route("/jobs", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", jobHandler.ListJobs)
		r.Post("/", jobHandler.CreateJob)
		r.Get("/stats", jobHandler.GetStats)
		r.Get("/calendar/events", jobHandler.CalendarEvents)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", jobHandler.GetJob)
			r.Put("/", jobHandler.UpdateJob)
			r.Delete("/", jobHandler.DeleteJob)
			r.Post("/resume", resumeHandler.UploadResume)
			r.Get("/resume", resumeHandler.DownloadResume)
		})
	})
}
