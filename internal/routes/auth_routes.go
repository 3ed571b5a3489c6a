package routes

import (
	"database/sql"
	"time"

	"github.com/go-chi/chi/v5"

	"jobtrack/internal/auth"
	"jobtrack/internal/config"
	"jobtrack/internal/handlers"
	"jobtrack/internal/repository"
	"jobtrack/internal/services"
)

func RegisterAuthRoutes(router chi.Router, db *sql.DB, cfg *config.Config, codec *auth.TokenCodec) {
	mailer := &services.SMTPSender{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPassword,
		From:   cfg.SMTPFrom,
		UseTLS: cfg.SMTPUseTLS,
	}

	hasher := auth.NewHasher(auth.Argon2Params{
		MemoryKB: cfg.Argon2MemoryKB,
		Time:     cfg.Argon2Time,
		Threads:  cfg.Argon2Threads,
	})

	svc := services.NewAuthService(
		db,
		repository.NewUserRepository(db),
		repository.NewPasswordResetRepository(db),
		hasher,
		codec,
		mailer,
		time.Duration(cfg.ResetTokenTTLMinutes)*time.Minute,
		cfg.FrontendURL,
	)

	authHandler := handlers.NewAuthHandler(svc, cfg)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
	})
}
