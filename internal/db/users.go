package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmailTaken is returned when creating a user with an email that is
// already registered.
var ErrEmailTaken = errors.New("email already registered")

const userColumns = `id, full_name, COALESCE(first_name, ''), COALESCE(last_name, ''),
	        email, COALESCE(phone, ''), COALESCE(location, ''),
	        COALESCE(password_hash, ''), employer_flag, email_verified,
	        COALESCE(picture_url, ''), COALESCE(encoded_photo, ''),
	        COALESCE(resume_name, ''), created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.Location, &u.PasswordHash, &u.EmployerFlag, &u.EmailVerified,
		&u.PictureURL, &u.EncodedPhoto, &u.ResumeName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers a new account
func (db *DB) CreateUser(ctx context.Context, input *UserCreateInput) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`INSERT INTO users (full_name, email, phone, password_hash, employer_flag)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		input.FullName, input.Email, nullIfEmpty(input.Phone),
		nullIfEmpty(input.PasswordHash), input.EmployerFlag,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetUser retrieves a user by ID. Returns (nil, nil) when absent.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// FindOrCreateGoogleUser provisions an account for a verified Google sign-in
// if one does not already exist for the email.
func (db *DB) FindOrCreateGoogleUser(ctx context.Context, input *GoogleUserInput) (*User, error) {
	existing, err := db.GetUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	u, err := scanUser(db.pool.QueryRow(ctx,
		`INSERT INTO users (full_name, first_name, last_name, email, picture_url,
		                    employer_flag, email_verified)
		 VALUES ($1, $2, $3, $4, $5, FALSE, TRUE)
		 ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		 RETURNING `+userColumns,
		input.FullName, nullIfEmpty(input.FirstName), nullIfEmpty(input.LastName),
		input.Email, nullIfEmpty(input.PictureURL),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to provision google user: %w", err)
	}
	return u, nil
}

// UpdateProfile updates the mutable profile fields of a user. Empty input
// fields keep their stored value.
func (db *DB) UpdateProfile(ctx context.Context, id uuid.UUID, input *ProfileUpdateInput) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`UPDATE users SET
		     full_name     = COALESCE(NULLIF($2, ''), full_name),
		     first_name    = COALESCE(NULLIF($3, ''), first_name),
		     last_name     = COALESCE(NULLIF($4, ''), last_name),
		     phone         = COALESCE(NULLIF($5, ''), phone),
		     email         = COALESCE(NULLIF($6, ''), email),
		     location      = COALESCE(NULLIF($7, ''), location),
		     encoded_photo = COALESCE(NULLIF($8, ''), encoded_photo),
		     resume_name   = COALESCE(NULLIF($9, ''), resume_name),
		     resume_data   = COALESCE($10, resume_data),
		     updated_at    = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, input.FullName, input.FirstName, input.LastName, input.Phone,
		input.Email, input.Location, input.EncodedPhoto, input.ResumeName,
		input.ResumeData,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

// ListOtherUsers retrieves everyone except the caller, for the messenger
// roster.
func (db *DB) ListOtherUsers(ctx context.Context, callerID uuid.UUID) ([]Contact, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, full_name, COALESCE(first_name, ''), COALESCE(last_name, ''),
		        email, COALESCE(encoded_photo, '')
		 FROM users WHERE id <> $1
		 ORDER BY full_name`,
		callerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.FullName, &c.FirstName, &c.LastName, &c.Email, &c.EncodedPhoto); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
