package domain

import "time"

// Job is a posting created by an employer. Salary and Location are free-form.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Salary      string    `json:"salary,omitempty"`
	Location    string    `json:"location,omitempty"`
	PostedBy    string    `json:"posted_by"`
	PostedByID  int64     `json:"posted_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Application records one job seeker's interest in one job.
type Application struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"job_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
