package service

import (
	"context"
	"log/slog"

	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
	"github.com/tanvir/codecollab/internal/validation"
)

// SupportService files user support tickets.
type SupportService struct {
	tickets repository.TicketRepository
	logger  *slog.Logger
}

func NewSupportService(tickets repository.TicketRepository, logger *slog.Logger) *SupportService {
	return &SupportService{tickets: tickets, logger: logger}
}

// FileTicket validates and stores a support ticket. The store fills in the
// default status and priority when the payload leaves them blank.
func (s *SupportService) FileTicket(ctx context.Context, payload validation.CreateSupportTicket) (*model.SupportTicket, error) {
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	ticket := &model.SupportTicket{
		UserID:      payload.UserID,
		Email:       payload.Email,
		Subject:     payload.Subject,
		Description: payload.Description,
		Priority:    payload.Priority,
	}
	if err := s.tickets.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("support ticket filed",
		slog.String("id", ticket.ID),
		slog.String("subject", ticket.Subject),
	)
	return ticket, nil
}
