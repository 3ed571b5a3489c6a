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

func RegisterEmailRoutes(router chi.Router, db *sql.DB, cfg *config.Config, authenticate func(http.Handler) http.Handler) {
	mailer := &services.SMTPSender{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPassword,
		From:   cfg.SMTPFrom,
		UseTLS: cfg.SMTPUseTLS,
	}

	emailHandler := handlers.NewEmailHandler(mailer, repository.NewJobRepository(db))

	router.Route("/email", func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/send", emailHandler.SendEmail)
		r.Post("/reminder", emailHandler.SendReminder)
	})
}
