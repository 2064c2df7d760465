package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
)

var _ repository.SnippetRepository = (*DB)(nil)

// CreateSnippet inserts a new snippet. The caller must have set ShareToken; the row
// id and timestamps are filled in here.
func (db *DB) CreateSnippet(ctx context.Context, snippet *model.Snippet) error {
	snippet.ID = xid.New().String()
	now := time.Now().UTC()
	snippet.CreatedAt = now
	snippet.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO snippets (id, title, description, language, code, share_token, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snippet.ID,
		snippet.Title,
		snippet.Description,
		snippet.Language,
		snippet.Code,
		snippet.ShareToken,
		snippet.OwnerID,
		snippet.CreatedAt,
		snippet.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("snippet", snippet.ShareToken)
		}
		return fmt.Errorf("sqlite: creating snippet: %w", err)
	}
	return nil
}

// GetSnippetByShareToken retrieves a snippet by its share token.
func (db *DB) GetSnippetByShareToken(ctx context.Context, token string) (*model.Snippet, error) {
	var s model.Snippet
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, language, code, share_token, owner_id, created_at, updated_at
		 FROM snippets
		 WHERE share_token = ?`,
		token,
	).Scan(
		&s.ID, &s.Title, &s.Description, &s.Language, &s.Code,
		&s.ShareToken, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("snippet", token)
		}
		return nil, fmt.Errorf("sqlite: getting snippet %s: %w", token, err)
	}
	return &s, nil
}

// UpdateSnippetByShareToken applies a partial update to the four mutable columns
// plus updated_at, in a single UPDATE so nothing else can drift. Nil fields
// keep their current value via COALESCE.
func (db *DB) UpdateSnippetByShareToken(ctx context.Context, token string, update repository.SnippetUpdate) (*model.Snippet, error) {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE snippets
		 SET title       = COALESCE(?, title),
		     description = COALESCE(?, description),
		     language    = COALESCE(?, language),
		     code        = COALESCE(?, code),
		     updated_at  = ?
		 WHERE share_token = ?`,
		update.Title,
		update.Description,
		update.Language,
		update.Code,
		time.Now().UTC(),
		token,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating snippet %s: %w", token, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, apperror.NotFound("snippet", token)
	}

	return db.GetSnippetByShareToken(ctx, token)
}

// DeleteSnippetByShareToken removes a snippet; messages, collaborators and calls go
// with it via FK cascade.
func (db *DB) DeleteSnippetByShareToken(ctx context.Context, token string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM snippets WHERE share_token = ?`, token)
	if err != nil {
		return fmt.Errorf("sqlite: deleting snippet %s: %w", token, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("snippet", token)
	}
	return nil
}
