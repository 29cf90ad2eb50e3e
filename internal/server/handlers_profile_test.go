package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstep/nextstep-api/internal/db"
)

func TestGetProfile(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(db.User{FullName: "Dana Doe", Email: "dana@example.com", Phone: "555-0100"})
	s := newTestServer(t, store)

	req := httptest.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, s, user.ID, false))
	rec := doRequest(s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got db.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Dana Doe", got.FullName)
	assert.Equal(t, "555-0100", got.Phone)

	// The password hash never leaves the server.
	assert.NotContains(t, rec.Body.String(), "PasswordHash")
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func multipartProfileRequest(t *testing.T, token string, fields map[string]string, photo []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/updateprofile", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUpdateProfileFields(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(db.User{FullName: "Dana Doe", Email: "dana@example.com", Phone: "555-0100"})
	s := newTestServer(t, store)

	rec := doRequest(s, multipartProfileRequest(t, tokenFor(t, s, user.ID, false), map[string]string{
		"full_name": "Dana D. Doe",
		"location":  "Berlin",
	}, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got db.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Dana D. Doe", got.FullName)
	assert.Equal(t, "Berlin", got.Location)
	// Untouched fields keep their stored values.
	assert.Equal(t, "555-0100", got.Phone)
}

func TestUpdateProfilePhotoEncodedAsDataURI(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(db.User{FullName: "Dana Doe", Email: "dana@example.com"})
	s := newTestServer(t, store)

	// Minimal PNG header so content type detection has something to chew on.
	photo := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	rec := doRequest(s, multipartProfileRequest(t, tokenFor(t, s, user.ID, false), nil, photo))
	require.Equal(t, http.StatusOK, rec.Code)

	var got db.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, strings.HasPrefix(got.EncodedPhoto, "data:"), "EncodedPhoto = %q", got.EncodedPhoto)
	assert.Contains(t, got.EncodedPhoto, ";base64,")
}

func TestUpdateProfileNotMultipart(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(db.User{FullName: "Dana Doe", Email: "dana@example.com"})
	s := newTestServer(t, store)

	req := httptest.NewRequest("POST", "/updateprofile", strings.NewReader(`{"full_name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, s, user.ID, false))
	rec := doRequest(s, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
