package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
)

var _ repository.TicketRepository = (*DB)(nil)

// CreateTicket inserts a support ticket. There is no workflow past the
// initial insert; status and priority get their defaults when unset.
func (db *DB) CreateTicket(ctx context.Context, ticket *model.SupportTicket) error {
	ticket.ID = xid.New().String()
	now := time.Now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	if ticket.Status == "" {
		ticket.Status = "open"
	}
	if ticket.Priority == "" {
		ticket.Priority = "medium"
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO support_tickets (id, user_id, email, subject, description, status, priority, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ticket.ID,
		ticket.UserID,
		ticket.Email,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating support ticket: %w", err)
	}
	return nil
}
