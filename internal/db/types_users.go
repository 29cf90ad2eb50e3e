package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform account (job seeker or employer)
type User struct {
	ID            uuid.UUID `json:"_id"`
	FullName      string    `json:"full_name"`
	FirstName     string    `json:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Location      string    `json:"location,omitempty"`
	PasswordHash  string    `json:"-"` // never serialized
	EmployerFlag  bool      `json:"employerFlag"`
	EmailVerified bool      `json:"emailVerified"`
	PictureURL    string    `json:"pictureUrl,omitempty"`
	EncodedPhoto  string    `json:"encodedPhoto,omitempty"`
	ResumeName    string    `json:"resumeName,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Contact is the trimmed user view returned to the messenger roster
type Contact struct {
	ID           uuid.UUID `json:"_id"`
	FullName     string    `json:"full_name"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Email        string    `json:"email"`
	EncodedPhoto string    `json:"encodedPhoto,omitempty"`
}

// UserCreateInput is used when registering a new account
type UserCreateInput struct {
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	EmployerFlag bool
}

// GoogleUserInput carries the profile fields from a verified Google ID token
type GoogleUserInput struct {
	FullName   string
	FirstName  string
	LastName   string
	Email      string
	PictureURL string
}

// ProfileUpdateInput is used when updating profile details. Empty string
// fields are left unchanged.
type ProfileUpdateInput struct {
	FullName     string
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	Location     string
	EncodedPhoto string
	ResumeName   string
	ResumeData   []byte
}
