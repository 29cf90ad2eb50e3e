// Package types provides validated request and response shapes for the
// NextStep HTTP API.
package types

import (
	"github.com/go-playground/validator/v10"
)

// SignupRequest represents the request to create a new account.
type SignupRequest struct {
	FullName     string `json:"full_name" validate:"required,min=1"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Phone        string `json:"phone,omitempty"`
	EmployerFlag bool   `json:"employerFlag"`
}

// SigninRequest represents the email/password login request.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleSigninRequest carries the Google-issued ID token.
type GoogleSigninRequest struct {
	Token string `json:"token" validate:"required"`
}

// SigninResponse is returned after a successful signin or signup.
type SigninResponse struct {
	Token      string `json:"token"`
	Message    string `json:"message"`
	IsEmployer bool   `json:"isEmployer"`
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SigninRequest using the validator.
func (r *SigninRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GoogleSigninRequest using the validator.
func (r *GoogleSigninRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
