package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nextstep/nextstep-api/internal/db"
	"github.com/nextstep/nextstep-api/internal/server/middleware"
	"github.com/nextstep/nextstep-api/internal/types"
)

// handleListUsers returns everyone except the caller, for the messenger
// roster.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	contacts, err := s.store.ListOtherUsers(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	if contacts == nil {
		contacts = []db.Contact{}
	}

	s.jsonResponse(w, http.StatusOK, contacts)
}

// handleListMessages returns every message the caller sent or received,
// newest first.
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	messages, err := s.store.ListMessagesForUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load messages")
		return
	}
	if messages == nil {
		messages = []db.Message{}
	}

	s.jsonResponse(w, http.StatusOK, messages)
}

// handleSendMessage stores a direct message from the caller.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid receiver ID format")
		return
	}
	if receiverID == userID {
		s.errorResponse(w, http.StatusBadRequest, "Cannot message yourself")
		return
	}

	sender, err := s.store.GetUser(r.Context(), userID)
	if err != nil || sender == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load sender")
		return
	}
	receiver, err := s.store.GetUser(r.Context(), receiverID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load receiver")
		return
	}
	if receiver == nil {
		s.errorResponse(w, http.StatusNotFound, "Receiver not found")
		return
	}

	// Names and emails are denormalized onto the row so conversation views
	// render without joining users.
	message, err := s.store.InsertMessage(r.Context(), &db.MessageCreateInput{
		SenderID:      userID,
		ReceiverID:    receiverID,
		SenderName:    sender.FullName,
		ReceiverName:  receiver.FullName,
		SenderEmail:   sender.Email,
		ReceiverEmail: receiver.Email,
		Content:       req.Content,
	})
	if err != nil {
		if errors.Is(err, db.ErrUnknownUser) {
			s.errorResponse(w, http.StatusNotFound, "Receiver not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	s.jsonResponse(w, http.StatusCreated, message)
}

// handleRecentContacts returns the users the caller has exchanged messages
// with.
func (s *Server) handleRecentContacts(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	contacts, err := s.store.ListRecentContacts(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load contacts")
		return
	}
	if contacts == nil {
		contacts = []db.Contact{}
	}

	s.jsonResponse(w, http.StatusOK, contacts)
}
