package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, employer_id, title, company_name, company_website, salary_range,
	        benefits, locations, schedule, job_description, skills, created_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.EmployerID, &j.Title, &j.CompanyName, &j.CompanyWebsite,
		&j.SalaryRange, &j.Benefits, &j.Locations, &j.Schedule, &j.JobDescription,
		&j.Skills, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// SearchJobs retrieves all postings whose searchable fields contain the query
// text, case-insensitively. An empty query matches everything. Results are
// newest first.
func (db *DB) SearchJobs(ctx context.Context, queryText string) ([]Job, error) {
	pattern := "%" + queryText + "%"

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE title ILIKE $1
		    OR job_description ILIKE $1
		    OR company_name ILIKE $1
		    OR salary_range ILIKE $1
		    OR schedule ILIKE $1
		    OR EXISTS (SELECT 1 FROM unnest(skills) s WHERE s ILIKE $1)
		    OR EXISTS (SELECT 1 FROM unnest(locations) l WHERE l ILIKE $1)
		    OR EXISTS (SELECT 1 FROM unnest(benefits) b WHERE b ILIKE $1)
		 ORDER BY created_at DESC`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// GetJob retrieves a single posting by ID. Returns (nil, nil) when absent.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// CreateJob inserts a new posting and returns it. A zero EmployerID stores
// NULL, for postings ingested without an owning account.
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	var employerID *uuid.UUID
	if input.EmployerID != uuid.Nil {
		employerID = &input.EmployerID
	}

	// The array columns are NOT NULL; nil slices would encode as NULL.
	benefits := emptyIfNil(input.Benefits)
	locations := emptyIfNil(input.Locations)
	skills := emptyIfNil(input.Skills)

	j, err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO jobs (employer_id, title, company_name, company_website, salary_range,
		                   benefits, locations, schedule, job_description, skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+jobColumns,
		employerID, input.Title, input.CompanyName, nullIfEmpty(input.CompanyWebsite),
		nullIfEmpty(input.SalaryRange), benefits, locations,
		nullIfEmpty(input.Schedule), input.JobDescription, skills,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return j, nil
}
