package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nextstep/nextstep-api/internal/db"
	"github.com/nextstep/nextstep-api/internal/server/middleware"
	"github.com/nextstep/nextstep-api/internal/tracker"
	"github.com/nextstep/nextstep-api/internal/types"
)

// handleTrackDecision records an apply or ignore swipe for the caller.
// A repeat apply for the same job returns 409 with the message the swipe
// client shows verbatim.
func (s *Server) handleTrackDecision(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	mode, err := tracker.ParseMode(req.SwipeMode)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if _, err := s.recorder.Record(r.Context(), userID, jobID, mode); err != nil {
		var conflict *tracker.ConflictError
		if errors.As(err, &conflict) {
			// The client renders this message as-is.
			s.jsonResponse(w, http.StatusConflict, map[string]string{"message": conflict.Error()})
			return
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.DecisionResponse{
		JobID:  jobID.String(),
		UserID: userID.String(),
	})
}

// handleListApplications returns the caller's applications, newest first,
// each joined with the posting details.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	applications, err := s.store.ListApplications(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load applications")
		return
	}
	if applications == nil {
		applications = []db.Application{}
	}

	s.jsonResponse(w, http.StatusOK, applications)
}
