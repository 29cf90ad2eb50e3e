package server

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/nextstep/nextstep-api/internal/db"
	"github.com/nextstep/nextstep-api/internal/server/middleware"
)

// Multipart upload caps. Photos are re-served inline as data URIs, so they
// stay small; resumes are stored as bytes.
const (
	maxProfileFormSize = 12 << 20
	maxPhotoSize       = 4 << 20
	maxResumeSize      = 8 << 20
)

// handleGetProfile returns the caller's account details.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}

// handleUpdateProfile applies a multipart profile update. Text fields left
// empty keep their stored values. An uploaded photo is inlined as a data URI
// so the client can render it without a separate fetch.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxProfileFormSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	input := &db.ProfileUpdateInput{
		FullName:  r.FormValue("full_name"),
		FirstName: r.FormValue("firstName"),
		LastName:  r.FormValue("lastName"),
		Phone:     r.FormValue("phone"),
		Email:     r.FormValue("email"),
		Location:  r.FormValue("location"),
	}

	if file, header, err := r.FormFile("photo"); err == nil {
		encoded, encErr := encodePhoto(file, header)
		file.Close()
		if encErr != nil {
			s.errorResponse(w, http.StatusBadRequest, encErr.Error())
			return
		}
		input.EncodedPhoto = encoded
	}

	if file, header, err := r.FormFile("resume"); err == nil {
		data, readErr := readUpload(file, maxResumeSize)
		file.Close()
		if readErr != nil {
			s.errorResponse(w, http.StatusBadRequest, "Resume upload too large")
			return
		}
		input.ResumeName = header.Filename
		input.ResumeData = data
	}

	user, err := s.store.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}

func encodePhoto(file multipart.File, header *multipart.FileHeader) (string, error) {
	data, err := readUpload(file, maxPhotoSize)
	if err != nil {
		return "", fmt.Errorf("photo upload too large")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}

// readUpload reads at most limit bytes and errors if the upload exceeds it.
func readUpload(file multipart.File, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("upload exceeds %d bytes", limit)
	}
	return data, nil
}
