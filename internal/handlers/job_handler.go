// internal/handlers/job_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobtrack/internal/logger"
	"jobtrack/internal/middleware"
	"jobtrack/internal/models"
	"jobtrack/internal/repository"
)

type JobHandler struct {
	repo repository.JobRepository
	v    *validator.Validate
}

func NewJobHandler(repo repository.JobRepository) *JobHandler {
	return &JobHandler{
		repo: repo,
		v:    validator.New(),
	}
}

// CreateJob handles POST /api/v1/jobs
// @Tags Jobs
// @Summary Create a job application
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateJobRequest true "Job payload"
// @Success 201 {object} models.Job
// @Router /api/v1/jobs [post]
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if req.Status == "" {
		req.Status = string(models.JobStatusApplied)
	}
	if req.Platform == "" {
		req.Platform = "LinkedIn"
	}
	if req.Source == "" {
		req.Source = "manual"
	}

	now := time.Now().UTC()
	job := &models.Job{
		ID:             uuid.NewString(),
		UserID:         middleware.UserID(r.Context()),
		Company:        req.Company,
		Role:           req.Role,
		JobLink:        req.JobLink,
		Status:         models.JobStatus(req.Status),
		Platform:       req.Platform,
		Source:         req.Source,
		Notes:          req.Notes,
		ResumeVersion:  req.ResumeVersion,
		InterviewDate:  req.InterviewDate,
		InterviewType:  req.InterviewType,
		InterviewNotes: req.InterviewNotes,
		ReminderSent:   req.ReminderSent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.repo.Create(r.Context(), job); err != nil {
		logger.Log.Error("failed to create job", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "create_job_failed", "Failed to create job")
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// ListJobs handles GET /api/v1/jobs with optional filters
// @Tags Jobs
// @Summary List job applications
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Param platform query string false "Filter by platform"
// @Param company query string false "Filter by company substring"
// @Param date_from query string false "Created-at lower bound (RFC3339)"
// @Param date_to query string false "Created-at upper bound (RFC3339)"
// @Success 200 {array} models.Job
// @Router /api/v1/jobs [get]
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	filter := repository.JobFilter{
		Status:   r.URL.Query().Get("status"),
		Platform: r.URL.Query().Get("platform"),
		Company:  r.URL.Query().Get("company"),
	}
	if v := r.URL.Query().Get("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "date_from must be RFC3339")
			return
		}
		filter.DateFrom = &t
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "date_to must be RFC3339")
			return
		}
		filter.DateTo = &t
	}

	jobs, err := h.repo.List(r.Context(), middleware.UserID(r.Context()), filter)
	if err != nil {
		logger.Log.Error("failed to list jobs", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "list_jobs_failed", "Failed to list jobs")
		return
	}

	if jobs == nil {
		jobs = []*models.Job{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

// GetStats handles GET /api/v1/jobs/stats
// @Tags Jobs
// @Summary Application statistics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.JobStats
// @Router /api/v1/jobs/stats [get]
func (h *JobHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		logger.Log.Error("failed to compute stats", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "stats_failed", "Failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GetJob handles GET /api/v1/jobs/{id}
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.repo.GetByID(r.Context(), id, middleware.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Job not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "get_job_failed", "Failed to fetch job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// UpdateJob handles PUT /api/v1/jobs/{id}
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	job, err := h.repo.Update(r.Context(), id, middleware.UserID(r.Context()), &req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Job not found")
			return
		}
		logger.Log.Error("failed to update job", zap.String("job_id", id), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "update_job_failed", "Failed to update job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// DeleteJob handles DELETE /api/v1/jobs/{id}
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id, middleware.UserID(r.Context())); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Job not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "delete_job_failed", "Failed to delete job")
		return
	}
	writeJSONMessage(w, http.StatusOK, "Deleted")
}

// CalendarEvents handles GET /api/v1/jobs/calendar/events
func (h *JobHandler) CalendarEvents(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	events, err := h.repo.CalendarEvents(r.Context(), middleware.UserID(r.Context()), month, year)
	if err != nil {
		logger.Log.Error("failed to list calendar events", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "calendar_failed", "Failed to list events")
		return
	}
	if events == nil {
		events = []*models.CalendarEvent{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
