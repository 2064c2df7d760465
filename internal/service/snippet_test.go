package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
	"github.com/tanvir/codecollab/internal/validation"
)

// mockSnippetRepo is an in-memory repository.SnippetRepository keyed by
// share token.
type mockSnippetRepo struct {
	snippets map[string]*model.Snippet
	nextID   int

	createErr error
}

func newMockSnippetRepo() *mockSnippetRepo {
	return &mockSnippetRepo{snippets: make(map[string]*model.Snippet)}
}

func (m *mockSnippetRepo) CreateSnippet(_ context.Context, snippet *model.Snippet) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.snippets[snippet.ShareToken]; ok {
		return apperror.Conflict("snippet", snippet.ShareToken)
	}
	m.nextID++
	snippet.ID = fmt.Sprintf("snip-%d", m.nextID)
	snippet.CreatedAt = time.Now().UTC()
	snippet.UpdatedAt = snippet.CreatedAt
	stored := *snippet
	m.snippets[snippet.ShareToken] = &stored
	return nil
}

func (m *mockSnippetRepo) GetSnippetByShareToken(_ context.Context, token string) (*model.Snippet, error) {
	s, ok := m.snippets[token]
	if !ok {
		return nil, apperror.NotFound("snippet", token)
	}
	copied := *s
	return &copied, nil
}

func (m *mockSnippetRepo) UpdateSnippetByShareToken(_ context.Context, token string, update repository.SnippetUpdate) (*model.Snippet, error) {
	s, ok := m.snippets[token]
	if !ok {
		return nil, apperror.NotFound("snippet", token)
	}
	if update.Title != nil {
		s.Title = *update.Title
	}
	if update.Description != nil {
		s.Description = *update.Description
	}
	if update.Language != nil {
		s.Language = *update.Language
	}
	if update.Code != nil {
		s.Code = *update.Code
	}
	s.UpdatedAt = time.Now().UTC()
	copied := *s
	return &copied, nil
}

func (m *mockSnippetRepo) DeleteSnippetByShareToken(_ context.Context, token string) error {
	if _, ok := m.snippets[token]; !ok {
		return apperror.NotFound("snippet", token)
	}
	delete(m.snippets, token)
	return nil
}

// mockMessageRepo stores messages per snippet, newest first.
type mockMessageRepo struct {
	bySnippet map[string][]model.SnippetMessage
	nextID    int
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{bySnippet: make(map[string][]model.SnippetMessage)}
}

func (m *mockMessageRepo) CreateMessage(_ context.Context, msg *model.SnippetMessage) error {
	m.nextID++
	msg.ID = fmt.Sprintf("msg-%d", m.nextID)
	msg.CreatedAt = time.Now().UTC()
	if msg.MessageType == "" {
		msg.MessageType = "text"
	}
	m.bySnippet[msg.SnippetID] = append([]model.SnippetMessage{*msg}, m.bySnippet[msg.SnippetID]...)
	return nil
}

func (m *mockMessageRepo) ListMessagesBySnippet(_ context.Context, snippetID string, limit int) ([]model.SnippetMessage, error) {
	msgs := m.bySnippet[snippetID]
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[:limit]
	}
	out := make([]model.SnippetMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// mockCollabRepo records presence keyed by snippet+user.
type mockCollabRepo struct {
	joined map[string]*model.SnippetCollaborator
	order  []string
	nextID int
}

func newMockCollabRepo() *mockCollabRepo {
	return &mockCollabRepo{joined: make(map[string]*model.SnippetCollaborator)}
}

func (m *mockCollabRepo) JoinSnippet(_ context.Context, collab *model.SnippetCollaborator) error {
	key := collab.SnippetID + "/" + collab.UserID
	if existing, ok := m.joined[key]; ok {
		existing.JoinedAt = time.Now().UTC()
		*collab = *existing
		return nil
	}
	m.nextID++
	collab.ID = fmt.Sprintf("collab-%d", m.nextID)
	collab.JoinedAt = time.Now().UTC()
	stored := *collab
	m.joined[key] = &stored
	m.order = append(m.order, key)
	return nil
}

func (m *mockCollabRepo) ListCollaboratorsBySnippet(_ context.Context, snippetID string) ([]model.SnippetCollaborator, error) {
	var out []model.SnippetCollaborator
	for _, key := range m.order {
		c := m.joined[key]
		if c.SnippetID == snippetID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestSnippetService(t *testing.T) (*SnippetService, *mockSnippetRepo, *mockMessageRepo) {
	t.Helper()
	snippets := newMockSnippetRepo()
	messages := newMockMessageRepo()
	collabs := newMockCollabRepo()
	return NewSnippetService(snippets, messages, collabs, testLogger()), snippets, messages
}

func TestSnippetCreate_GeneratesShareToken(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	snippet, err := svc.Create(context.Background(), validation.CreateSnippet{Title: "hello", Code: "print('hi')"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if snippet.ID == "" {
		t.Error("expected snippet to have an ID")
	}
	if len(snippet.ShareToken) != shareTokenLen {
		t.Errorf("ShareToken length = %d, want %d", len(snippet.ShareToken), shareTokenLen)
	}
}

func TestSnippetCreate_TokensAreUnique(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		snippet, err := svc.Create(context.Background(), validation.CreateSnippet{Title: "t"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[snippet.ShareToken] {
			t.Fatalf("duplicate share token %q", snippet.ShareToken)
		}
		seen[snippet.ShareToken] = true
	}
}

func TestSnippetCreate_TrimsTitle(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	snippet, err := svc.Create(context.Background(), validation.CreateSnippet{Title: "  spaced  "})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if snippet.Title != "spaced" {
		t.Errorf("Title = %q, want trimmed %q", snippet.Title, "spaced")
	}
}

func TestSnippetCreate_EmptyTitle(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	_, err := svc.Create(context.Background(), validation.CreateSnippet{Title: "   "})
	if err == nil {
		t.Fatal("Create() should error on whitespace-only title")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestSnippetGet_EmptyToken(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	_, err := svc.GetByShareToken(context.Background(), "  ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestSnippetGet_NotFound(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	_, err := svc.GetByShareToken(context.Background(), "missing-token")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSnippetUpdate_PartialFields(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	created, err := svc.Create(context.Background(), validation.CreateSnippet{
		Title: "before", Language: "go", Code: "package main",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	title := "after"
	updated, err := svc.Update(context.Background(), created.ShareToken, validation.UpdateSnippet{Title: &title})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "after" {
		t.Errorf("Title = %q, want %q", updated.Title, "after")
	}
	if updated.Language != "go" || updated.Code != "package main" {
		t.Error("untouched fields changed during partial update")
	}
}

func TestSnippetDelete_ThenGone(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	created, err := svc.Create(context.Background(), validation.CreateSnippet{Title: "doomed"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Delete(context.Background(), created.ShareToken); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByShareToken(context.Background(), created.ShareToken); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error after delete = %v, want ErrNotFound", err)
	}
}

func TestPostMessage_DefaultsToText(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	msg, err := svc.PostMessage(context.Background(), "snip-1", validation.CreateMessage{
		UserID: "u1", Username: "alice", Content: "hi",
	})
	if err != nil {
		t.Fatalf("PostMessage() error = %v", err)
	}
	if msg.MessageType != "text" {
		t.Errorf("MessageType = %q, want %q", msg.MessageType, "text")
	}
}

func TestPostMessage_RejectsUnknownType(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	_, err := svc.PostMessage(context.Background(), "snip-1", validation.CreateMessage{
		UserID: "u1", Username: "alice", Content: "hi", MessageType: "voice",
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestListMessages_CappedAtMax(t *testing.T) {
	svc, _, messages := newTestSnippetService(t)

	for i := 0; i < MaxMessageList+20; i++ {
		messages.bySnippet["snip-1"] = append(messages.bySnippet["snip-1"], model.SnippetMessage{
			ID: fmt.Sprintf("msg-%d", i), SnippetID: "snip-1",
		})
	}

	got, err := svc.ListMessages(context.Background(), "snip-1")
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(got) != MaxMessageList {
		t.Errorf("len = %d, want %d", len(got), MaxMessageList)
	}
}

func TestJoin_Idempotent(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	first, err := svc.Join(context.Background(), "snip-1", validation.JoinSnippet{UserID: "u1"})
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	second, err := svc.Join(context.Background(), "snip-1", validation.JoinSnippet{UserID: "u1"})
	if err != nil {
		t.Fatalf("Join() again error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("repeat join produced new row: %q vs %q", first.ID, second.ID)
	}

	collabs, err := svc.ListCollaborators(context.Background(), "snip-1")
	if err != nil {
		t.Fatalf("ListCollaborators() error = %v", err)
	}
	if len(collabs) != 1 {
		t.Errorf("collaborator count = %d, want 1", len(collabs))
	}
}

func TestListCollaborators_EmptyIsNotNil(t *testing.T) {
	svc, _, _ := newTestSnippetService(t)

	collabs, err := svc.ListCollaborators(context.Background(), "snip-none")
	if err != nil {
		t.Fatalf("ListCollaborators() error = %v", err)
	}
	if collabs == nil {
		t.Error("expected empty slice, got nil")
	}
}
