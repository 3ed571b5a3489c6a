package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"

	"jobtrack/internal/middleware"
	"jobtrack/internal/repository"
)

var jobCols = []string{
	"id", "user_id", "company", "role", "job_link", "status", "platform", "source", "notes",
	"resume_version", "resume_key", "interview_date", "interview_type", "interview_notes",
	"reminder_sent", "created_at", "updated_at",
}

func newJobRouter(t *testing.T) (*chi.Mux, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := NewJobHandler(repository.NewJobRepository(db))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.CtxUserID, "user-1")
			ctx = context.WithValue(ctx, middleware.CtxEmail, "user@example.com")
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Post("/jobs", h.CreateJob)
	r.Get("/jobs", h.ListJobs)
	r.Get("/jobs/stats", h.GetStats)
	r.Get("/jobs/{id}", h.GetJob)
	r.Delete("/jobs/{id}", h.DeleteJob)
	return r, mock
}

func TestCreateJob(t *testing.T) {
	t.Run("applies defaults and returns 201", func(t *testing.T) {
		r, mock := newJobRouter(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO jobs")).
			WithArgs(
				sqlmock.AnyArg(), "user-1", "Acme", "Engineer", "https://acme.example/jobs/1",
				"applied", "LinkedIn", "manual",
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		body := `{"company":"Acme","role":"Engineer","job_link":"https://acme.example/jobs/1"}`
		req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
		}

		var resp map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		if resp["status"] != "applied" || resp["platform"] != "LinkedIn" || resp["source"] != "manual" {
			t.Errorf("defaults not applied: %v", resp)
		}
		if resp["user_id"] != "user-1" {
			t.Errorf("expected user_id from context, got %v", resp["user_id"])
		}
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		r, _ := newJobRouter(t)

		body := `{"company":"Acme","role":"Engineer","job_link":"https://acme.example/jobs/1","status":"ghosted"}`
		req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestListJobs(t *testing.T) {
	t.Run("filters by status and scopes to the user", func(t *testing.T) {
		r, mock := newJobRouter(t)

		mock.ExpectQuery("SELECT .+ FROM jobs WHERE user_id = .+ AND status =").
			WithArgs("user-1", "interview").
			WillReturnRows(sqlmock.NewRows(jobCols).AddRow(
				"job-1", "user-1", "Acme", "Engineer", "https://acme.example/jobs/1",
				"interview", "LinkedIn", "manual", nil, nil, nil, nil, nil, nil,
				false, time.Now(), time.Now(),
			))

		req := httptest.NewRequest(http.MethodGet, "/jobs?status=interview", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		r, mock := newJobRouter(t)

		mock.ExpectQuery("SELECT .+ FROM jobs WHERE user_id =").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(jobCols))

		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if strings.TrimSpace(rr.Body.String()) != "[]" {
			t.Errorf("expected [], got %s", rr.Body.String())
		}
	})

	t.Run("bad date filter returns 400", func(t *testing.T) {
		r, _ := newJobRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/jobs?date_from=yesterday", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestGetJob(t *testing.T) {
	t.Run("another user's job is a 404", func(t *testing.T) {
		r, mock := newJobRouter(t)

		mock.ExpectQuery("SELECT .+ FROM jobs WHERE id = .+ AND user_id =").
			WithArgs("job-9", "user-1").
			WillReturnError(sql.ErrNoRows)

		req := httptest.NewRequest(http.MethodGet, "/jobs/job-9", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})
}

func TestDeleteJob(t *testing.T) {
	t.Run("deleting a missing job is a 404", func(t *testing.T) {
		r, mock := newJobRouter(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM jobs")).
			WithArgs("job-9", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		req := httptest.NewRequest(http.MethodDelete, "/jobs/job-9", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})
}

func TestGetStats(t *testing.T) {
	r, mock := newJobRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, platform FROM jobs")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "platform"}).
			AddRow("applied", "LinkedIn").
			AddRow("applied", "Indeed").
			AddRow("interview", "LinkedIn"))

	req := httptest.NewRequest(http.MethodGet, "/jobs/stats", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Total          int            `json:"total_applications"`
		StatusCounts   map[string]int `json:"status_counts"`
		PlatformCounts map[string]int `json:"platform_counts"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("expected 3 total applications, got %d", resp.Total)
	}
	if resp.StatusCounts["applied"] != 2 || resp.StatusCounts["interview"] != 1 {
		t.Errorf("unexpected status counts: %v", resp.StatusCounts)
	}
	if resp.PlatformCounts["LinkedIn"] != 2 {
		t.Errorf("unexpected platform counts: %v", resp.PlatformCounts)
	}
}
