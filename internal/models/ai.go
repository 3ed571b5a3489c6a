package models

type SummarizeRequest struct {
	JobDescription string `json:"job_description" validate:"required,min=10"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type CompareRequest struct {
	JobDescription string `json:"job_description" validate:"required,min=10"`
	ResumeText     string `json:"resume_text" validate:"required,min=10"`
}

type CompareResponse struct {
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

type EmailRequest struct {
	ToEmail string `json:"to_email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

type ReminderRequest struct {
	JobID string `json:"job_id" validate:"required"`
}
