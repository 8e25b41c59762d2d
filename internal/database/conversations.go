package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Conversation is a persisted chat session. Exactly one conversation is
// current at any time; new messages are appended to it.
type Conversation struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	AIMode    string    `json:"ai_mode"`
	IsCurrent bool      `json:"is_current"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateConversation inserts a new conversation and makes it current.
func (d *DB) CreateConversation(title string) (*Conversation, error) {
	if title == "" {
		title = "Cuộc hội thoại mới"
	}

	tx, err := d.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE conversations SET is_current = 0 WHERE is_current = 1`); err != nil {
		return nil, fmt.Errorf("failed to clear current conversation: %w", err)
	}

	res, err := tx.Exec(`INSERT INTO conversations (title, is_current) VALUES (?, 1)`, title)
	if err != nil {
		return nil, fmt.Errorf("failed to insert conversation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit conversation: %w", err)
	}

	return d.GetConversation(id)
}

// GetConversation fetches one conversation by id.
func (d *DB) GetConversation(id int64) (*Conversation, error) {
	var c Conversation
	err := d.QueryRow(`
		SELECT id, title, ai_mode, is_current, created_at, updated_at
		FROM conversations WHERE id = ?
	`, id).Scan(&c.ID, &c.Title, &c.AIMode, &c.IsCurrent, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &c, nil
}

// GetCurrentConversation returns the current conversation, or nil when none
// exists yet.
func (d *DB) GetCurrentConversation() (*Conversation, error) {
	var c Conversation
	err := d.QueryRow(`
		SELECT id, title, ai_mode, is_current, created_at, updated_at
		FROM conversations WHERE is_current = 1
		ORDER BY updated_at DESC LIMIT 1
	`).Scan(&c.ID, &c.Title, &c.AIMode, &c.IsCurrent, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current conversation: %w", err)
	}
	return &c, nil
}

// SetCurrentConversation marks the given conversation as current.
func (d *DB) SetCurrentConversation(id int64) error {
	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE conversations SET is_current = 0 WHERE is_current = 1`); err != nil {
		return fmt.Errorf("failed to clear current conversation: %w", err)
	}

	res, err := tx.Exec(`UPDATE conversations SET is_current = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to set current conversation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("conversation %d not found", id)
	}

	return tx.Commit()
}

// ListConversations returns all conversations, most recently updated first.
func (d *DB) ListConversations() ([]Conversation, error) {
	rows, err := d.Query(`
		SELECT id, title, ai_mode, is_current, created_at, updated_at
		FROM conversations ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []Conversation
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.Title, &c.AIMode, &c.IsCurrent, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// RenameConversation updates the title of a conversation.
func (d *DB) RenameConversation(id int64, title string) error {
	_, err := d.Exec(`
		UPDATE conversations SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, title, id)
	if err != nil {
		return fmt.Errorf("failed to rename conversation: %w", err)
	}
	return nil
}

// DeleteConversation removes a conversation and its messages.
func (d *DB) DeleteConversation(id int64) error {
	_, err := d.Exec(`DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// touchConversation bumps updated_at and the stored ai_mode after a message
// is appended, so the sidebar ordering and the mode indicator stay fresh.
func (d *DB) touchConversation(id int64, aiMode string) error {
	_, err := d.Exec(`
		UPDATE conversations SET ai_mode = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, aiMode, id)
	if err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	return nil
}
