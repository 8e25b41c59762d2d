package database

import (
	"database/sql"
	"fmt"
)

// SaveGoogleToken stores (or replaces) the serialized OAuth token for a user.
func (d *DB) SaveGoogleToken(userID, tokenJSON string) error {
	_, err := d.Exec(`
		INSERT INTO google_tokens (user_id, token_json, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET token_json = excluded.token_json, updated_at = CURRENT_TIMESTAMP
	`, userID, tokenJSON)
	if err != nil {
		return fmt.Errorf("failed to save google token: %w", err)
	}
	return nil
}

// GetGoogleToken returns the serialized OAuth token for a user, or "" when
// the user has not authenticated yet.
func (d *DB) GetGoogleToken(userID string) (string, error) {
	var tokenJSON string
	err := d.QueryRow(`SELECT token_json FROM google_tokens WHERE user_id = ?`, userID).Scan(&tokenJSON)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get google token: %w", err)
	}
	return tokenJSON, nil
}

// DeleteGoogleToken removes a stored token, forcing re-authentication.
func (d *DB) DeleteGoogleToken(userID string) error {
	_, err := d.Exec(`DELETE FROM google_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete google token: %w", err)
	}
	return nil
}
