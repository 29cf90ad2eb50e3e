package db

import (
	"time"

	"github.com/google/uuid"
)

// Job represents a job posting in the catalog
type Job struct {
	ID             uuid.UUID  `json:"_id"`
	EmployerID     *uuid.UUID `json:"employer_id,omitempty"`
	Title          string     `json:"title"`
	CompanyName    string     `json:"companyName"`
	CompanyWebsite *string    `json:"companyWebsite,omitempty"`
	SalaryRange    *string    `json:"salaryRange,omitempty"`
	Benefits       []string   `json:"benefits"`
	Locations      []string   `json:"locations"`
	Schedule       *string    `json:"schedule,omitempty"`
	JobDescription string     `json:"jobDescription"`
	Skills         []string   `json:"skills"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// JobCreateInput is used when an employer creates a new posting
type JobCreateInput struct {
	EmployerID     uuid.UUID
	Title          string
	CompanyName    string
	CompanyWebsite string
	SalaryRange    string
	Benefits       []string
	Locations      []string
	Schedule       string
	JobDescription string
	Skills         []string
}
