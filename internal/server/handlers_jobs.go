package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/nextstep/nextstep-api/internal/db"
	"github.com/nextstep/nextstep-api/internal/server/middleware"
	"github.com/nextstep/nextstep-api/internal/types"
)

// handleBrowseJobs searches the catalog. The q parameter matches against
// title, description, company, salary, schedule, skills, locations and
// benefits; without it the whole catalog comes back.
func (s *Server) handleBrowseJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.SearchJobs(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to search jobs")
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleGetJob returns a single posting by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("jobId"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleCreateJob adds a posting to the catalog. Employer accounts only.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsEmployer(r) {
		s.errorResponse(w, http.StatusForbidden, "Only employer accounts can post jobs")
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.store.CreateJob(r.Context(), &db.JobCreateInput{
		EmployerID:     userID,
		Title:          req.Title,
		CompanyName:    req.CompanyName,
		CompanyWebsite: req.CompanyWebsite,
		SalaryRange:    req.SalaryRange,
		Benefits:       req.Benefits,
		Locations:      req.Locations,
		Schedule:       req.Schedule,
		JobDescription: req.JobDescription,
		Skills:         req.Skills,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}
