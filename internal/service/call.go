package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/integration"
	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
)

// CallService provisions video-call rooms through an external provider and
// records their metadata.
type CallService struct {
	calls  repository.CallRepository
	rooms  integration.RoomProvider
	logger *slog.Logger
}

func NewCallService(calls repository.CallRepository, rooms integration.RoomProvider, logger *slog.Logger) *CallService {
	return &CallService{calls: calls, rooms: rooms, logger: logger}
}

// StartRoom provisions a room for a snippet and stores the call row. The
// provider names rooms deterministically, so repeated calls for a snippet
// reuse the same room name while each invocation records a fresh row.
func (s *CallService) StartRoom(ctx context.Context, snippetID, startedBy string) (*model.SnippetCall, error) {
	snippetID = strings.TrimSpace(snippetID)
	if snippetID == "" {
		return nil, apperror.ValidationFailed("snippetId", "snippetId is required")
	}

	room, err := s.rooms.ProvisionRoom(ctx, snippetID)
	if err != nil {
		s.logger.Error("room provisioning failed",
			slog.String("snippetId", snippetID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("provisioning room: %w", err)
	}

	call := &model.SnippetCall{
		SnippetID: snippetID,
		RoomName:  room.Name,
		RoomURL:   room.URL,
		StartedBy: startedBy,
	}
	if err := s.calls.CreateCall(ctx, call); err != nil {
		return nil, err
	}

	s.logger.Info("call room provisioned",
		slog.String("snippetId", snippetID),
		slog.String("room", room.Name),
	)
	return call, nil
}
