package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by the decision store. The tracker package maps
// these onto its caller-facing error taxonomy.
var (
	// ErrDuplicateApply is returned when the partial unique index rejects a
	// second apply decision for the same (user, job) pair.
	ErrDuplicateApply = errors.New("apply decision already exists")

	// ErrUnknownJob is returned when the referenced job does not exist.
	ErrUnknownJob = errors.New("job does not exist")

	// ErrUnknownUser is returned when the referenced user does not exist.
	ErrUnknownUser = errors.New("user does not exist")
)

// Postgres error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// InsertDecision appends a decision row. The decisions_one_apply partial
// unique index serializes concurrent apply submissions: exactly one insert
// wins and the rest get ErrDuplicateApply, without any in-process locking.
func (db *DB) InsertDecision(ctx context.Context, userID, jobID uuid.UUID, mode Mode) (*Decision, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("refusing to store invalid mode %q", mode)
	}

	var d Decision
	err := db.pool.QueryRow(ctx,
		`INSERT INTO decisions (user_id, job_id, mode, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, job_id, mode, status, created_at`,
		userID, jobID, mode, mode.Status(),
	).Scan(&d.ID, &d.UserID, &d.JobID, &d.Mode, &d.Status, &d.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, ErrDuplicateApply
			case pgForeignKeyViolation:
				if pgErr.ConstraintName == "decisions_user_id_fkey" {
					return nil, ErrUnknownUser
				}
				return nil, ErrUnknownJob
			}
		}
		return nil, fmt.Errorf("failed to insert decision: %w", err)
	}
	return &d, nil
}

// ExistsApply reports whether an apply decision exists for the pair
func (db *DB) ExistsApply(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM decisions
		     WHERE user_id = $1 AND job_id = $2 AND mode = $3
		 )`,
		userID, jobID, ModeApply,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing application: %w", err)
	}
	return exists, nil
}

// ListDecidedJobIDs returns the set of jobs the user has any decision for,
// used by the feed composer to exclude already-acted-on postings.
func (db *DB) ListDecidedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT job_id FROM decisions WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list decided jobs: %w", err)
	}
	defer rows.Close()

	decided := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var jobID uuid.UUID
		if err := rows.Scan(&jobID); err != nil {
			return nil, fmt.Errorf("failed to scan job id: %w", err)
		}
		decided[jobID] = struct{}{}
	}
	return decided, rows.Err()
}

// ListApplications retrieves the user's decisions joined with job details,
// newest first
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT d.id, d.user_id, d.job_id, d.mode, d.status, d.created_at,
		        j.id, j.employer_id, j.title, j.company_name, j.company_website,
		        j.salary_range, j.benefits, j.locations, j.schedule,
		        j.job_description, j.skills, j.created_at
		 FROM decisions d
		 JOIN jobs j ON j.id = d.job_id
		 WHERE d.user_id = $1
		 ORDER BY d.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.JobID, &a.Mode, &a.Status, &a.CreatedAt,
			&a.Job.ID, &a.Job.EmployerID, &a.Job.Title, &a.Job.CompanyName,
			&a.Job.CompanyWebsite, &a.Job.SalaryRange, &a.Job.Benefits, &a.Job.Locations,
			&a.Job.Schedule, &a.Job.JobDescription, &a.Job.Skills, &a.Job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
