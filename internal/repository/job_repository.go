package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobtrack/internal/models"
)

type JobFilter struct {
	Status   string
	Platform string
	Company  string
	DateFrom *time.Time
	DateTo   *time.Time
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id, userID string) (*models.Job, error)
	List(ctx context.Context, userID string, filter JobFilter) ([]*models.Job, error)
	Update(ctx context.Context, id, userID string, req *models.UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, id, userID string) error
	Stats(ctx context.Context, userID string) (*models.JobStats, error)
	CalendarEvents(ctx context.Context, userID string, month, year int) ([]*models.CalendarEvent, error)
	SetResume(ctx context.Context, id, userID, resumeKey string) error
	MarkReminderSent(ctx context.Context, id, userID string) error
}

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `id, user_id, company, role, job_link, status, platform, source, notes,
	resume_version, resume_key, interview_date, interview_type, interview_notes,
	reminder_sent, created_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID, &j.UserID, &j.Company, &j.Role, &j.JobLink, &j.Status, &j.Platform,
		&j.Source, &j.Notes, &j.ResumeVersion, &j.ResumeKey, &j.InterviewDate,
		&j.InterviewType, &j.InterviewNotes, &j.ReminderSent, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (
			id, user_id, company, role, job_link, status, platform, source, notes,
			resume_version, interview_date, interview_type, interview_notes,
			reminder_sent, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		job.ID, job.UserID, job.Company, job.Role, job.JobLink, job.Status,
		job.Platform, job.Source, job.Notes, job.ResumeVersion, job.InterviewDate,
		job.InterviewType, job.InterviewNotes, job.ReminderSent, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) GetByID(ctx context.Context, id, userID string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND user_id = $2`
	return scanJob(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *jobRepository) List(ctx context.Context, userID string, filter JobFilter) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1`
	args := []any{userID}
	argPos := 2

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Platform != "" {
		query += fmt.Sprintf(" AND platform = $%d", argPos)
		args = append(args, filter.Platform)
		argPos++
	}
	if filter.Company != "" {
		query += fmt.Sprintf(" AND company ILIKE $%d", argPos)
		args = append(args, "%"+filter.Company+"%")
		argPos++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *jobRepository) Update(ctx context.Context, id, userID string, req *models.UpdateJobRequest) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET company = COALESCE($1, company),
			role = COALESCE($2, role),
			job_link = COALESCE($3, job_link),
			status = COALESCE($4, status),
			platform = COALESCE($5, platform),
			notes = COALESCE($6, notes),
			resume_version = COALESCE($7, resume_version),
			interview_date = COALESCE($8, interview_date),
			interview_type = COALESCE($9, interview_type),
			interview_notes = COALESCE($10, interview_notes),
			reminder_sent = COALESCE($11, reminder_sent),
			updated_at = $12
		WHERE id = $13 AND user_id = $14
		RETURNING ` + jobColumns

	return scanJob(r.db.QueryRowContext(ctx, query,
		req.Company, req.Role, req.JobLink, req.Status, req.Platform, req.Notes,
		req.ResumeVersion, req.InterviewDate, req.InterviewType, req.InterviewNotes,
		req.ReminderSent, time.Now().UTC(), id, userID,
	))
}

func (r *jobRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *jobRepository) Stats(ctx context.Context, userID string) (*models.JobStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, platform FROM jobs WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &models.JobStats{
		StatusCounts:   map[string]int{},
		PlatformCounts: map[string]int{},
	}
	for rows.Next() {
		var status, platform string
		if err := rows.Scan(&status, &platform); err != nil {
			return nil, err
		}
		stats.TotalApplications++
		stats.StatusCounts[status]++
		stats.PlatformCounts[platform]++
	}
	return stats, rows.Err()
}

func (r *jobRepository) CalendarEvents(ctx context.Context, userID string, month, year int) ([]*models.CalendarEvent, error) {
	query := `
		SELECT id, company, role, interview_date, interview_type, interview_notes, status, reminder_sent
		FROM jobs
		WHERE user_id = $1 AND interview_date IS NOT NULL
	`
	args := []any{userID}

	if month > 0 && year > 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		query += " AND interview_date >= $2 AND interview_date < $3"
		args = append(args, start, end)
	}

	query += " ORDER BY interview_date ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.CalendarEvent
	for rows.Next() {
		var e models.CalendarEvent
		if err := rows.Scan(&e.ID, &e.Company, &e.Role, &e.InterviewDate,
			&e.InterviewType, &e.InterviewNotes, &e.Status, &e.ReminderSent); err != nil {
			return nil, err
		}
		e.JobID = e.ID
		events = append(events, &e)
	}
	return events, rows.Err()
}

func (r *jobRepository) SetResume(ctx context.Context, id, userID, resumeKey string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET resume_key = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		resumeKey, time.Now().UTC(), id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *jobRepository) MarkReminderSent(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET reminder_sent = TRUE, updated_at = $1 WHERE id = $2 AND user_id = $3`,
		time.Now().UTC(), id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
