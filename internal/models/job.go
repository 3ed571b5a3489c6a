// internal/models/job.go
package models

import "time"

type JobStatus string

const (
	JobStatusApplied   JobStatus = "applied"
	JobStatusInterview JobStatus = "interview"
	JobStatusRejected  JobStatus = "rejected"
	JobStatusOffer     JobStatus = "offer"
)

type Job struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Company        string     `json:"company" validate:"required"`
	Role           string     `json:"role" validate:"required"`
	JobLink        string     `json:"job_link"`
	Status         JobStatus  `json:"status"`
	Platform       string     `json:"platform"`
	Source         string     `json:"source"`
	Notes          *string    `json:"notes,omitempty"`
	ResumeVersion  *string    `json:"resume_version,omitempty"`
	ResumeKey      *string    `json:"resume_key,omitempty"`
	InterviewDate  *time.Time `json:"interview_date,omitempty"`
	InterviewType  *string    `json:"interview_type,omitempty"`
	InterviewNotes *string    `json:"interview_notes,omitempty"`
	ReminderSent   bool       `json:"reminder_sent"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type CreateJobRequest struct {
	Company        string     `json:"company" validate:"required,min=1,max=200"`
	Role           string     `json:"role" validate:"required,min=1,max=200"`
	JobLink        string     `json:"job_link" validate:"required,min=1"`
	Status         string     `json:"status" validate:"omitempty,oneof=applied interview rejected offer"`
	Platform       string     `json:"platform" validate:"omitempty,oneof=LinkedIn Indeed Glassdoor Company Other"`
	Source         string     `json:"source"`
	Notes          *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
	ResumeVersion  *string    `json:"resume_version,omitempty" validate:"omitempty,max=100"`
	InterviewDate  *time.Time `json:"interview_date,omitempty"`
	InterviewType  *string    `json:"interview_type,omitempty" validate:"omitempty,max=100"`
	InterviewNotes *string    `json:"interview_notes,omitempty" validate:"omitempty,max=2000"`
	ReminderSent   bool       `json:"reminder_sent"`
}

type UpdateJobRequest struct {
	Company        *string    `json:"company,omitempty" validate:"omitempty,min=1,max=200"`
	Role           *string    `json:"role,omitempty" validate:"omitempty,min=1,max=200"`
	JobLink        *string    `json:"job_link,omitempty"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=applied interview rejected offer"`
	Platform       *string    `json:"platform,omitempty" validate:"omitempty,oneof=LinkedIn Indeed Glassdoor Company Other"`
	Notes          *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
	ResumeVersion  *string    `json:"resume_version,omitempty" validate:"omitempty,max=100"`
	InterviewDate  *time.Time `json:"interview_date,omitempty"`
	InterviewType  *string    `json:"interview_type,omitempty" validate:"omitempty,max=100"`
	InterviewNotes *string    `json:"interview_notes,omitempty" validate:"omitempty,max=2000"`
	ReminderSent   *bool      `json:"reminder_sent,omitempty"`
}

type JobStats struct {
	TotalApplications int            `json:"total_applications"`
	StatusCounts      map[string]int `json:"status_counts"`
	PlatformCounts    map[string]int `json:"platform_counts"`
}

type CalendarEvent struct {
	ID             string     `json:"id"`
	JobID          string     `json:"job_id"`
	Company        string     `json:"company"`
	Role           string     `json:"role"`
	InterviewDate  *time.Time `json:"interview_date"`
	InterviewType  *string    `json:"interview_type,omitempty"`
	InterviewNotes *string    `json:"interview_notes,omitempty"`
	Status         JobStatus  `json:"status"`
	ReminderSent   bool       `json:"reminder_sent"`
}
