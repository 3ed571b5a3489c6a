package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"jobtrack/internal/logger"
	"jobtrack/internal/middleware"
	"jobtrack/internal/models"
	"jobtrack/internal/repository"
	"jobtrack/internal/services"
)

type EmailHandler struct {
	mailer services.EmailSender
	jobs   repository.JobRepository
	v      *validator.Validate
}

func NewEmailHandler(mailer services.EmailSender, jobs repository.JobRepository) *EmailHandler {
	return &EmailHandler{
		mailer: mailer,
		jobs:   jobs,
		v:      validator.New(),
	}
}

// SendEmail handles POST /api/v1/email/send
// @Tags Email
// @Summary Send an email
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.EmailRequest true "Email payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/email/send [post]
func (h *EmailHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.mailer.Send(req.ToEmail, req.Subject, req.Body); err != nil {
		logger.Log.Error("failed to send email", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "send_failed", "Failed to send email")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Email sent")
}

// SendReminder handles POST /api/v1/email/reminder: mails the authenticated
// user an interview reminder for one of their jobs and flips reminder_sent.
func (h *EmailHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	var req models.ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	userID := middleware.UserID(r.Context())
	email := middleware.Email(r.Context())

	job, err := h.jobs.GetByID(r.Context(), req.JobID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Job not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to fetch job")
		return
	}
	if job.InterviewDate == nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "Job has no interview date")
		return
	}

	subject := fmt.Sprintf("Interview reminder: %s at %s", job.Role, job.Company)
	body := fmt.Sprintf("Your interview for %s at %s is scheduled for %s.",
		job.Role, job.Company, job.InterviewDate.Format("Mon, 02 Jan 2006 15:04 MST"))

	if err := h.mailer.Send(email, subject, body); err != nil {
		logger.Log.Error("failed to send reminder",
			zap.String("job_id", job.ID), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "send_failed", "Failed to send reminder")
		return
	}

	if err := h.jobs.MarkReminderSent(r.Context(), job.ID, userID); err != nil {
		logger.Log.Error("failed to mark reminder sent",
			zap.String("job_id", job.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Reminder sent",
		"sent_to": email,
	})
}
