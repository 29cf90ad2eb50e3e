package db

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users
type Message struct {
	ID            uuid.UUID `json:"id"`
	SenderID      uuid.UUID `json:"senderId"`
	ReceiverID    uuid.UUID `json:"receiverId"`
	SenderName    string    `json:"senderName"`
	ReceiverName  string    `json:"receiverName"`
	SenderEmail   string    `json:"senderEmail"`
	ReceiverEmail string    `json:"receiverEmail"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MessageCreateInput is used when sending a message
type MessageCreateInput struct {
	SenderID      uuid.UUID
	ReceiverID    uuid.UUID
	SenderName    string
	ReceiverName  string
	SenderEmail   string
	ReceiverEmail string
	Content       string
}
