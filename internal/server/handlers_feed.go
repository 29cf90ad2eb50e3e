package server

import (
	"net/http"

	"github.com/nextstep/nextstep-api/internal/db"
	"github.com/nextstep/nextstep-api/internal/server/middleware"
)

// handleHomepageFeed returns the swipe feed. Signed-in callers get the
// catalog minus everything they have already applied to or ignored;
// anonymous callers (including ones holding an expired token) get the
// unfiltered catalog.
func (s *Server) handleHomepageFeed(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.store.SearchJobs(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load jobs")
		return
	}

	feed, err := s.composer.Compose(r.Context(), middleware.OptionalUserID(r), candidates)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to compose feed")
		return
	}
	if feed == nil {
		feed = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, feed)
}
