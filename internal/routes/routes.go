// internal/routes/routes.go
package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"jobtrack/internal/auth"
	"jobtrack/internal/config"
	"jobtrack/internal/middleware"
	"jobtrack/internal/repository"
)

func SetupRoutes(db *sql.DB, cfg *config.Config, s3Config *config.S3Config) (*chi.Mux, error) {
	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTAlgorithm,
		time.Duration(cfg.JWTExpiresInSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	authenticate := middleware.Authenticate(codec, userRepo)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL, "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Job Tracker API running"})
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "pong"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{"status": "ok"}
		dbStatus := map[string]any{"status": "ok"}
		code := http.StatusOK

		if err := db.PingContext(r.Context()); err != nil {
			dbStatus["status"] = "down"
			dbStatus["error"] = err.Error()
			resp["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}
		resp["db"] = dbStatus

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	})

	RegisterSwaggerRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		RegisterAuthRoutes(r, db, cfg, codec)
		RegisterJobRoutes(r, db, s3Config, authenticate)
		RegisterEmailRoutes(r, db, cfg, authenticate)
		RegisterAIRoutes(r)
	})

	return r, nil
}
