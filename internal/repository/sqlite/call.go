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

var _ repository.CallRepository = (*DB)(nil)

// CreateCall stores video-call room metadata for a snippet. Nothing enforces a
// single active call per snippet; is_active is advisory.
func (db *DB) CreateCall(ctx context.Context, call *model.SnippetCall) error {
	call.ID = xid.New().String()
	call.StartedAt = time.Now().UTC()
	call.IsActive = true

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO snippet_calls (id, snippet_id, room_name, room_url, started_by, is_active, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		call.ID,
		call.SnippetID,
		call.RoomName,
		call.RoomURL,
		call.StartedBy,
		call.IsActive,
		call.StartedAt,
		call.EndedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.ValidationFailed("snippetId", "snippet does not exist")
		}
		return fmt.Errorf("sqlite: creating call: %w", err)
	}
	return nil
}
