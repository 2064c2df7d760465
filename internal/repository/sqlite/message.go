package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
)

var _ repository.MessageRepository = (*DB)(nil)

// CreateMessage inserts a chat message. There is no upfront existence check on the
// snippet; a dangling snippet id fails the FK constraint and surfaces as a
// validation error.
func (db *DB) CreateMessage(ctx context.Context, msg *model.SnippetMessage) error {
	msg.ID = xid.New().String()
	msg.CreatedAt = time.Now().UTC()
	if msg.MessageType == "" {
		msg.MessageType = "text"
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO snippet_messages (id, snippet_id, user_id, username, content, message_type, file_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID,
		msg.SnippetID,
		msg.UserID,
		msg.Username,
		msg.Content,
		msg.MessageType,
		msg.FileURL,
		msg.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.ValidationFailed("snippetId", "snippet does not exist")
		}
		return fmt.Errorf("sqlite: creating message: %w", err)
	}
	return nil
}

// ListMessagesBySnippet returns up to limit messages for a snippet, newest first.
func (db *DB) ListMessagesBySnippet(ctx context.Context, snippetID string, limit int) ([]model.SnippetMessage, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, snippet_id, user_id, username, content, message_type, file_url, created_at
		 FROM snippet_messages
		 WHERE snippet_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		snippetID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.SnippetMessage, 0, limit)
	for rows.Next() {
		var m model.SnippetMessage
		if err := rows.Scan(
			&m.ID, &m.SnippetID, &m.UserID, &m.Username,
			&m.Content, &m.MessageType, &m.FileURL, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating messages: %w", err)
	}
	return messages, nil
}
