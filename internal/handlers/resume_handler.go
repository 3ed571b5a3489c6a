// internal/handlers/resume_handler.go
package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobtrack/internal/logger"
	"jobtrack/internal/middleware"
	"jobtrack/internal/repository"
	"jobtrack/internal/services"
)

type ResumeHandler struct {
	jobs    repository.JobRepository
	storage *services.ResumeStorage
}

func NewResumeHandler(jobs repository.JobRepository, storage *services.ResumeStorage) *ResumeHandler {
	return &ResumeHandler{jobs: jobs, storage: storage}
}

// UploadResume handles POST /api/v1/jobs/{id}/resume (multipart)
// @Tags Jobs
// @Summary Upload the resume used for a job application
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Job ID"
// @Param file formData file true "Resume file"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/jobs/{id}/resume [post]
func (h *ResumeHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	if !h.storage.Enabled() {
		writeJSONError(w, http.StatusServiceUnavailable, "storage_unavailable", "Resume storage is not configured")
		return
	}

	jobID := chi.URLParam(r, "id")
	userID := middleware.UserID(r.Context())

	if _, err := h.jobs.GetByID(r.Context(), jobID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Job not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to fetch job")
		return
	}

	const maxMemory = 10 << 20 // 10MB
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "file is required")
		return
	}
	defer file.Close()

	key, err := h.storage.Upload(r.Context(), userID, jobID, header.Filename, file)
	if err != nil {
		logger.Log.Error("resume upload failed",
			zap.String("job_id", jobID), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "upload_failed", "Failed to upload resume")
		return
	}

	if err := h.jobs.SetResume(r.Context(), jobID, userID, key); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "upload_failed", "Failed to record resume")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"resume_key": key})
}

// DownloadResume handles GET /api/v1/jobs/{id}/resume and returns a
// presigned, time-limited URL.
func (h *ResumeHandler) DownloadResume(w http.ResponseWriter, r *http.Request) {
	if !h.storage.Enabled() {
		writeJSONError(w, http.StatusServiceUnavailable, "storage_unavailable", "Resume storage is not configured")
		return
	}

	jobID := chi.URLParam(r, "id")
	userID := middleware.UserID(r.Context())

	job, err := h.jobs.GetByID(r.Context(), jobID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Job not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to fetch job")
		return
	}
	if job.ResumeKey == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "No resume uploaded for this job")
		return
	}

	url, err := h.storage.PresignDownload(r.Context(), *job.ResumeKey, 15*time.Minute)
	if err != nil {
		logger.Log.Error("resume presign failed",
			zap.String("job_id", jobID), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "presign_failed", "Failed to generate download URL")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"url": url})
}
