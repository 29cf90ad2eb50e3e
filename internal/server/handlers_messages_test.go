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

func sendMessageRequest(t *testing.T, token, receiverID, content string) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]any{"receiverId": receiverID, "content": content})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestSendMessage(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser(db.User{FullName: "Alice", Email: "alice@example.com"})
	bob := store.addUser(db.User{FullName: "Bob", Email: "bob@example.com"})
	s := newTestServer(t, store)

	rec := doRequest(s, sendMessageRequest(t, tokenFor(t, s, alice.ID, false), bob.ID.String(), "hello"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var msg db.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, bob.ID, msg.ReceiverID)
	assert.Equal(t, "Alice", msg.SenderName)
	assert.Equal(t, "Bob", msg.ReceiverName)
	assert.Equal(t, "hello", msg.Content)
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser(db.User{FullName: "Alice", Email: "alice@example.com"})
	s := newTestServer(t, store)

	rec := doRequest(s, sendMessageRequest(t, tokenFor(t, s, alice.ID, false), uuid.NewString(), "hello"))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendMessageToSelf(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser(db.User{FullName: "Alice", Email: "alice@example.com"})
	s := newTestServer(t, store)

	rec := doRequest(s, sendMessageRequest(t, tokenFor(t, s, alice.ID, false), alice.ID.String(), "hello me"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageEmptyContent(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser(db.User{FullName: "Alice", Email: "alice@example.com"})
	bob := store.addUser(db.User{FullName: "Bob", Email: "bob@example.com"})
	s := newTestServer(t, store)

	rec := doRequest(s, sendMessageRequest(t, tokenFor(t, s, alice.ID, false), bob.ID.String(), ""))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMessages(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser(db.User{FullName: "Alice", Email: "alice@example.com"})
	bob := store.addUser(db.User{FullName: "Bob", Email: "bob@example.com"})
	carol := store.addUser(db.User{FullName: "Carol", Email: "carol@example.com"})
	s := newTestServer(t, store)

	aliceToken := tokenFor(t, s, alice.ID, false)
	require.Equal(t, http.StatusCreated, doRequest(s, sendMessageRequest(t, aliceToken, bob.ID.String(), "hi bob")).Code)
	require.Equal(t, http.StatusCreated, doRequest(s, sendMessageRequest(t, tokenFor(t, s, bob.ID, false), carol.ID.String(), "hi carol")).Code)

	req := httptest.NewRequest("GET", "/messages", nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	rec := doRequest(s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var messages []db.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "hi bob", messages[0].Content)
}

func TestListUsersExcludesCaller(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser(db.User{FullName: "Alice", Email: "alice@example.com"})
	store.addUser(db.User{FullName: "Bob", Email: "bob@example.com"})
	s := newTestServer(t, store)

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, s, alice.ID, false))
	rec := doRequest(s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var contacts []db.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, "Bob", contacts[0].FullName)
}

func TestRecentContacts(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser(db.User{FullName: "Alice", Email: "alice@example.com"})
	bob := store.addUser(db.User{FullName: "Bob", Email: "bob@example.com"})
	store.addUser(db.User{FullName: "Carol", Email: "carol@example.com"})
	s := newTestServer(t, store)

	aliceToken := tokenFor(t, s, alice.ID, false)
	require.Equal(t, http.StatusCreated, doRequest(s, sendMessageRequest(t, aliceToken, bob.ID.String(), "hi")).Code)

	req := httptest.NewRequest("GET", "/myRecentContacts", nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	rec := doRequest(s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var contacts []db.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, bob.ID, contacts[0].ID)
}

func TestRecentContactsEmpty(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser(db.User{FullName: "Alice", Email: "alice@example.com"})
	s := newTestServer(t, store)

	req := httptest.NewRequest("GET", "/myRecentContacts", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, s, alice.ID, false))
	rec := doRequest(s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", string(bytes.TrimSpace(rec.Body.Bytes())))
}
