package database

import (
	"fmt"
	"time"
)

// ChatMessage is one question/answer exchange stored in a conversation.
type ChatMessage struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	AIMode         string    `json:"ai_mode"`
	CalendarAction string    `json:"calendar_action,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// AddMessage appends an exchange to a conversation and refreshes the
// conversation's ai_mode and updated_at.
func (d *DB) AddMessage(conversationID int64, question, answer, aiMode, calendarAction string) (*ChatMessage, error) {
	res, err := d.Exec(`
		INSERT INTO messages (conversation_id, question, answer, ai_mode, calendar_action)
		VALUES (?, ?, ?, ?, ?)
	`, conversationID, question, answer, aiMode, calendarAction)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get message id: %w", err)
	}

	if err := d.touchConversation(conversationID, aiMode); err != nil {
		return nil, err
	}

	return d.GetMessage(id)
}

// GetMessage fetches a single message by id.
func (d *DB) GetMessage(id int64) (*ChatMessage, error) {
	var m ChatMessage
	err := d.QueryRow(`
		SELECT id, conversation_id, question, answer, ai_mode, calendar_action, created_at
		FROM messages WHERE id = ?
	`, id).Scan(&m.ID, &m.ConversationID, &m.Question, &m.Answer, &m.AIMode, &m.CalendarAction, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &m, nil
}

// GetMessages returns a conversation's messages in chronological order.
func (d *DB) GetMessages(conversationID int64, limit int) ([]ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := d.Query(`
		SELECT id, conversation_id, question, answer, ai_mode, calendar_action, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, id ASC
		LIMIT ?
	`, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Question, &m.Answer, &m.AIMode, &m.CalendarAction, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CountMessages returns the number of messages in a conversation.
func (d *DB) CountMessages(conversationID int64) (int, error) {
	var count int
	err := d.QueryRow(`SELECT COUNT(*) FROM messages WHERE conversation_id = ?`, conversationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
