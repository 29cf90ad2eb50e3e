package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstep/nextstep-api/internal/db"
)

func TestBrowseJobs(t *testing.T) {
	store := newFakeStore()
	store.addJob("Backend Engineer")
	store.addJob("Data Analyst")
	s := newTestServer(t, store)

	rec := doRequest(s, httptest.NewRequest("GET", "/jobs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var jobs []db.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 2)
}

func TestGetJob(t *testing.T) {
	store := newFakeStore()
	job := store.addJob("Backend Engineer")
	s := newTestServer(t, store)

	rec := doRequest(s, httptest.NewRequest("GET", "/jobs/"+job.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got db.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, job.ID, got.ID)
}

func TestGetJobNotFound(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	rec := doRequest(s, httptest.NewRequest("GET", "/jobs/"+uuid.NewString(), nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJobMalformedID(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	rec := doRequest(s, httptest.NewRequest("GET", "/jobs/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func createJobRequest(t *testing.T, token string, payload map[string]any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCreateJobAsEmployer(t *testing.T) {
	store := newFakeStore()
	employer := store.addUser(db.User{FullName: "Acme HR", Email: "hr@acme.com", EmployerFlag: true})
	s := newTestServer(t, store)

	rec := doRequest(s, createJobRequest(t, tokenFor(t, s, employer.ID, true), map[string]any{
		"title":          "Backend Engineer",
		"companyName":    "Acme",
		"jobDescription": "Build the swipe feed.",
		"skills":         []string{"go", "postgres"},
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var job db.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, "Backend Engineer", job.Title)
	require.NotNil(t, job.EmployerID)
	assert.Equal(t, employer.ID, *job.EmployerID)
}

func TestCreateJobRejectsSeekers(t *testing.T) {
	store := newFakeStore()
	seeker := store.addUser(db.User{FullName: "Dana Doe", Email: "dana@example.com"})
	s := newTestServer(t, store)

	rec := doRequest(s, createJobRequest(t, tokenFor(t, s, seeker.ID, false), map[string]any{
		"title":          "Backend Engineer",
		"companyName":    "Acme",
		"jobDescription": "Build the swipe feed.",
	}))
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, store.jobs)
}

func TestCreateJobValidation(t *testing.T) {
	store := newFakeStore()
	employer := store.addUser(db.User{FullName: "Acme HR", Email: "hr@acme.com", EmployerFlag: true})
	s := newTestServer(t, store)
	token := tokenFor(t, s, employer.ID, true)

	rec := doRequest(s, createJobRequest(t, token, map[string]any{
		"companyName":    "Acme",
		"jobDescription": "Missing title.",
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(s, createJobRequest(t, token, map[string]any{
		"title":          "Backend Engineer",
		"companyName":    "Acme",
		"jobDescription": "Bad website.",
		"companyWebsite": "not a url",
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
