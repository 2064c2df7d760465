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

var _ repository.CollaboratorRepository = (*DB)(nil)

// JoinSnippet records presence of a user in a snippet room. Upserts on
// (snippet_id, user_id): re-joining just refreshes joined_at.
func (db *DB) JoinSnippet(ctx context.Context, collab *model.SnippetCollaborator) error {
	collab.ID = xid.New().String()
	collab.JoinedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO snippet_collaborators (id, snippet_id, user_id, joined_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(snippet_id, user_id) DO UPDATE SET joined_at = excluded.joined_at`,
		collab.ID,
		collab.SnippetID,
		collab.UserID,
		collab.JoinedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.ValidationFailed("snippetId", "snippet does not exist")
		}
		return fmt.Errorf("sqlite: joining snippet: %w", err)
	}

	// On conflict the original row id survives; read it back so the caller
	// sees the stored row.
	return db.conn.QueryRowContext(ctx,
		`SELECT id, joined_at FROM snippet_collaborators WHERE snippet_id = ? AND user_id = ?`,
		collab.SnippetID, collab.UserID,
	).Scan(&collab.ID, &collab.JoinedAt)
}

// ListCollaboratorsBySnippet returns a snippet's presence records, oldest joiner first.
func (db *DB) ListCollaboratorsBySnippet(ctx context.Context, snippetID string) ([]model.SnippetCollaborator, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, snippet_id, user_id, joined_at
		 FROM snippet_collaborators
		 WHERE snippet_id = ?
		 ORDER BY joined_at ASC`,
		snippetID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing collaborators: %w", err)
	}
	defer rows.Close()

	var collabs []model.SnippetCollaborator
	for rows.Next() {
		var c model.SnippetCollaborator
		if err := rows.Scan(&c.ID, &c.SnippetID, &c.UserID, &c.JoinedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning collaborator row: %w", err)
		}
		collabs = append(collabs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating collaborators: %w", err)
	}
	return collabs, nil
}
