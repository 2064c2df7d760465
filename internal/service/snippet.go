// Package service contains the business logic layer. Services validate
// payloads, enforce the few business rules that exist, and delegate storage
// to the repository interfaces. They know nothing about HTTP.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
	"github.com/tanvir/codecollab/internal/validation"
)

// MaxMessageList caps how many chat messages one listing returns.
const MaxMessageList = 100

// SnippetService handles snippets, their chat messages and presence records.
type SnippetService struct {
	snippets repository.SnippetRepository
	messages repository.MessageRepository
	collabs  repository.CollaboratorRepository
	logger   *slog.Logger
}

func NewSnippetService(
	snippets repository.SnippetRepository,
	messages repository.MessageRepository,
	collabs repository.CollaboratorRepository,
	logger *slog.Logger,
) *SnippetService {
	return &SnippetService{
		snippets: snippets,
		messages: messages,
		collabs:  collabs,
		logger:   logger,
	}
}

// Create validates the payload, generates the share token and stores the
// snippet. The token is immutable for the life of the row.
func (s *SnippetService) Create(ctx context.Context, payload validation.CreateSnippet) (*model.Snippet, error) {
	payload.Title = strings.TrimSpace(payload.Title)
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	token, err := newShareToken()
	if err != nil {
		return nil, fmt.Errorf("creating snippet: %w", err)
	}

	snippet := &model.Snippet{
		Title:       payload.Title,
		Description: payload.Description,
		Language:    payload.Language,
		Code:        payload.Code,
		ShareToken:  token,
		OwnerID:     payload.OwnerID,
	}
	if err := s.snippets.CreateSnippet(ctx, snippet); err != nil {
		s.logger.Error("failed to create snippet",
			slog.String("title", payload.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating snippet: %w", err)
	}

	s.logger.Info("snippet created",
		slog.String("id", snippet.ID),
		slog.String("shareToken", snippet.ShareToken),
	)
	return snippet, nil
}

// GetByShareToken retrieves a snippet by its share token.
func (s *SnippetService) GetByShareToken(ctx context.Context, token string) (*model.Snippet, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperror.ValidationFailed("shareToken", "share token is required")
	}
	return s.snippets.GetSnippetByShareToken(ctx, token)
}

// Update applies a partial update to the four mutable fields.
func (s *SnippetService) Update(ctx context.Context, token string, payload validation.UpdateSnippet) (*model.Snippet, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperror.ValidationFailed("shareToken", "share token is required")
	}
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	snippet, err := s.snippets.UpdateSnippetByShareToken(ctx, token, repository.SnippetUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		Language:    payload.Language,
		Code:        payload.Code,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("snippet updated", slog.String("id", snippet.ID))
	return snippet, nil
}

// Delete removes a snippet; dependent rows cascade in the store.
func (s *SnippetService) Delete(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperror.ValidationFailed("shareToken", "share token is required")
	}
	if err := s.snippets.DeleteSnippetByShareToken(ctx, token); err != nil {
		return err
	}
	s.logger.Info("snippet deleted", slog.String("shareToken", token))
	return nil
}

// PostMessage stores a chat message in a snippet's room. The snippet id
// comes from the URL path; a dangling id fails the FK constraint in the
// store and surfaces as a validation error.
func (s *SnippetService) PostMessage(ctx context.Context, snippetID string, payload validation.CreateMessage) (*model.SnippetMessage, error) {
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	msg := &model.SnippetMessage{
		SnippetID:   snippetID,
		UserID:      payload.UserID,
		Username:    payload.Username,
		Content:     payload.Content,
		MessageType: payload.MessageType,
		FileURL:     payload.FileURL,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns the most recent messages for a snippet, newest
// first, capped at MaxMessageList.
func (s *SnippetService) ListMessages(ctx context.Context, snippetID string) ([]model.SnippetMessage, error) {
	messages, err := s.messages.ListMessagesBySnippet(ctx, snippetID, MaxMessageList)
	if err != nil {
		s.logger.Error("failed to list messages",
			slog.String("snippetId", snippetID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	if messages == nil {
		messages = []model.SnippetMessage{}
	}
	return messages, nil
}

// Join records a user's presence in a snippet room; idempotent per
// (snippet, user).
func (s *SnippetService) Join(ctx context.Context, snippetID string, payload validation.JoinSnippet) (*model.SnippetCollaborator, error) {
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	collab := &model.SnippetCollaborator{SnippetID: snippetID, UserID: payload.UserID}
	if err := s.collabs.JoinSnippet(ctx, collab); err != nil {
		return nil, err
	}
	return collab, nil
}

// ListCollaborators returns the presence records for a snippet.
func (s *SnippetService) ListCollaborators(ctx context.Context, snippetID string) ([]model.SnippetCollaborator, error) {
	collabs, err := s.collabs.ListCollaboratorsBySnippet(ctx, snippetID)
	if err != nil {
		return nil, fmt.Errorf("listing collaborators: %w", err)
	}
	if collabs == nil {
		collabs = []model.SnippetCollaborator{}
	}
	return collabs, nil
}
