package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const messageColumns = `id, sender_id, receiver_id, sender_name, receiver_name,
	        sender_email, receiver_email, content, created_at`

// InsertMessage stores a new message and returns it
func (db *DB) InsertMessage(ctx context.Context, input *MessageCreateInput) (*Message, error) {
	var m Message
	err := db.pool.QueryRow(ctx,
		`INSERT INTO messages (sender_id, receiver_id, sender_name, receiver_name,
		                       sender_email, receiver_email, content)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+messageColumns,
		input.SenderID, input.ReceiverID, input.SenderName, input.ReceiverName,
		input.SenderEmail, input.ReceiverEmail, input.Content,
	).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.SenderName, &m.ReceiverName,
		&m.SenderEmail, &m.ReceiverEmail, &m.Content, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	return &m, nil
}

// ListMessagesForUser retrieves every message the user sent or received,
// newest first
func (db *DB) ListMessagesForUser(ctx context.Context, userID uuid.UUID) ([]Message, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+messageColumns+`
		 FROM messages
		 WHERE sender_id = $1 OR receiver_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.SenderName,
			&m.ReceiverName, &m.SenderEmail, &m.ReceiverEmail, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ListRecentContacts retrieves the distinct users the caller has exchanged
// messages with
func (db *DB) ListRecentContacts(ctx context.Context, userID uuid.UUID) ([]Contact, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT u.id, u.full_name, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
		        u.email, COALESCE(u.encoded_photo, '')
		 FROM users u
		 WHERE u.id IN (
		     SELECT CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END
		     FROM messages m
		     WHERE m.sender_id = $1 OR m.receiver_id = $1
		 )
		 ORDER BY u.full_name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.FullName, &c.FirstName, &c.LastName, &c.Email, &c.EncodedPhoto); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
