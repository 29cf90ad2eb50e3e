package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstep/nextstep-api/internal/db"
)

func feedJobs(t *testing.T, s *Server, token string) []db.Job {
	t.Helper()
	req := httptest.NewRequest("GET", "/retrieveJobsForHomepage", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := doRequest(s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var jobs []db.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	return jobs
}

func TestHomepageFeedAnonymous(t *testing.T) {
	store := newFakeStore()
	store.addJob("Backend Engineer")
	store.addJob("Data Analyst")
	s := newTestServer(t, store)

	jobs := feedJobs(t, s, "")
	assert.Len(t, jobs, 2)
}

func TestHomepageFeedExcludesDecidedJobs(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(db.User{FullName: "Dana Doe", Email: "dana@example.com"})
	applied := store.addJob("Backend Engineer")
	ignored := store.addJob("Data Analyst")
	fresh := store.addJob("Product Manager")
	s := newTestServer(t, store)
	token := tokenFor(t, s, user.ID, false)

	require.Equal(t, http.StatusOK, doRequest(s, swipeRequest(t, token, applied.ID.String(), 1)).Code)
	require.Equal(t, http.StatusOK, doRequest(s, swipeRequest(t, token, ignored.ID.String(), 2)).Code)

	jobs := feedJobs(t, s, token)
	require.Len(t, jobs, 1)
	assert.Equal(t, fresh.ID, jobs[0].ID)
}

func TestHomepageFeedPreservesOrder(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(db.User{FullName: "Dana Doe", Email: "dana@example.com"})
	first := store.addJob("First")
	skipped := store.addJob("Skipped")
	second := store.addJob("Second")
	third := store.addJob("Third")
	s := newTestServer(t, store)
	token := tokenFor(t, s, user.ID, false)

	require.Equal(t, http.StatusOK, doRequest(s, swipeRequest(t, token, skipped.ID.String(), 2)).Code)

	jobs := feedJobs(t, s, token)
	require.Len(t, jobs, 3)
	assert.Equal(t, first.ID, jobs[0].ID)
	assert.Equal(t, second.ID, jobs[1].ID)
	assert.Equal(t, third.ID, jobs[2].ID)
}

// An expired or garbage token on the feed degrades to anonymous browsing
// instead of failing the request.
func TestHomepageFeedInvalidTokenDegradesToAnonymous(t *testing.T) {
	store := newFakeStore()
	store.addJob("Backend Engineer")
	store.addJob("Data Analyst")
	s := newTestServer(t, store)

	jobs := feedJobs(t, s, "not-a-real-token")
	assert.Len(t, jobs, 2)
}

func TestHomepageFeedDecisionsAreUserScoped(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser(db.User{FullName: "Alice", Email: "alice@example.com"})
	bob := store.addUser(db.User{FullName: "Bob", Email: "bob@example.com"})
	job := store.addJob("Backend Engineer")
	s := newTestServer(t, store)

	aliceToken := tokenFor(t, s, alice.ID, false)
	require.Equal(t, http.StatusOK, doRequest(s, swipeRequest(t, aliceToken, job.ID.String(), 1)).Code)

	assert.Empty(t, feedJobs(t, s, aliceToken))
	assert.Len(t, feedJobs(t, s, tokenFor(t, s, bob.ID, false)), 1)
}

func TestHomepageFeedEmptyCatalog(t *testing.T) {
	s := newTestServer(t, newFakeStore())
	assert.Empty(t, feedJobs(t, s, ""))
}
