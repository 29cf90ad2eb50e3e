package types

import (
	"github.com/go-playground/validator/v10"
)

// CreateJobRequest represents an employer's new posting.
type CreateJobRequest struct {
	Title          string   `json:"title" validate:"required,min=1"`
	CompanyName    string   `json:"companyName" validate:"required,min=1"`
	CompanyWebsite string   `json:"companyWebsite,omitempty" validate:"omitempty,url"`
	SalaryRange    string   `json:"salaryRange,omitempty"`
	Benefits       []string `json:"benefits,omitempty"`
	Locations      []string `json:"locations,omitempty"`
	Schedule       string   `json:"schedule,omitempty"`
	JobDescription string   `json:"jobDescription" validate:"required,min=1"`
	Skills         []string `json:"skills,omitempty"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
