package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestSnippet(t *testing.T, db *DB, title, token string) *model.Snippet {
	t.Helper()
	snippet := &model.Snippet{Title: title, ShareToken: token, Language: "go", Code: "package main"}
	if err := db.CreateSnippet(context.Background(), snippet); err != nil {
		t.Fatalf("failed to create test snippet: %v", err)
	}
	return snippet
}

func strPtr(s string) *string { return &s }

func TestCreateSnippet(t *testing.T) {
	db := newTestDB(t)

	snippet := &model.Snippet{
		Title:      "hello",
		ShareToken: "abcd1234efgh",
		Code:       "fmt.Println(42)",
	}
	if err := db.CreateSnippet(context.Background(), snippet); err != nil {
		t.Fatalf("CreateSnippet() error = %v", err)
	}

	if snippet.ID == "" {
		t.Error("CreateSnippet() did not set snippet.ID")
	}
	if snippet.CreatedAt.IsZero() || snippet.UpdatedAt.IsZero() {
		t.Error("CreateSnippet() did not set timestamps")
	}
}

func TestCreateSnippet_DuplicateToken(t *testing.T) {
	db := newTestDB(t)
	createTestSnippet(t, db, "first", "dup-token-001")

	err := db.CreateSnippet(context.Background(), &model.Snippet{
		Title:      "second",
		ShareToken: "dup-token-001",
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestGetSnippetByShareToken(t *testing.T) {
	db := newTestDB(t)
	created := createTestSnippet(t, db, "fetch me", "tok-fetch-001")

	found, err := db.GetSnippetByShareToken(context.Background(), "tok-fetch-001")
	if err != nil {
		t.Fatalf("GetSnippetByShareToken() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
	if found.Code != created.Code {
		t.Errorf("Code = %q, want %q", found.Code, created.Code)
	}
}

func TestGetSnippetByShareToken_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetSnippetByShareToken(context.Background(), "no-such-token")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateSnippetByShareToken_PartialFields(t *testing.T) {
	db := newTestDB(t)
	created := createTestSnippet(t, db, "original", "tok-upd-00001")

	updated, err := db.UpdateSnippetByShareToken(context.Background(), "tok-upd-00001",
		repository.SnippetUpdate{Code: strPtr("updated code")})
	if err != nil {
		t.Fatalf("UpdateSnippetByShareToken() error = %v", err)
	}

	if updated.Code != "updated code" {
		t.Errorf("Code = %q, want %q", updated.Code, "updated code")
	}
	// Fields not named in the update keep their values.
	if updated.Title != "original" {
		t.Errorf("Title = %q, want %q", updated.Title, "original")
	}
	if updated.Language != "go" {
		t.Errorf("Language = %q, want %q", updated.Language, "go")
	}
	if updated.ShareToken != created.ShareToken {
		t.Errorf("ShareToken changed: %q -> %q", created.ShareToken, updated.ShareToken)
	}
	if updated.CreatedAt.IsZero() {
		t.Error("CreatedAt was lost")
	}
}

func TestUpdateSnippetByShareToken_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.UpdateSnippetByShareToken(context.Background(), "no-such-token",
		repository.SnippetUpdate{Title: strPtr("new")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteSnippet_CascadesMessages(t *testing.T) {
	db := newTestDB(t)
	snippet := createTestSnippet(t, db, "doomed", "tok-del-00001")

	msg := &model.SnippetMessage{SnippetID: snippet.ID, UserID: "u1", Username: "nadia", Content: "hi"}
	if err := db.CreateMessage(context.Background(), msg); err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}

	if err := db.DeleteSnippetByShareToken(context.Background(), "tok-del-00001"); err != nil {
		t.Fatalf("DeleteSnippetByShareToken() error = %v", err)
	}

	messages, err := db.ListMessagesBySnippet(context.Background(), snippet.ID, 100)
	if err != nil {
		t.Fatalf("ListMessagesBySnippet() error = %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("messages survived cascade delete: %d rows", len(messages))
	}
}

func TestCreateMessage_MissingSnippet(t *testing.T) {
	db := newTestDB(t)

	err := db.CreateMessage(context.Background(), &model.SnippetMessage{
		SnippetID: "no-such-snippet",
		Content:   "hello?",
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation (FK violation)", err)
	}
}

func TestListMessages_NewestFirstCapped(t *testing.T) {
	db := newTestDB(t)
	snippet := createTestSnippet(t, db, "chatty", "tok-chat-0001")

	for i := 0; i < 5; i++ {
		msg := &model.SnippetMessage{SnippetID: snippet.ID, UserID: "u1", Username: "nadia", Content: "msg"}
		if err := db.CreateMessage(context.Background(), msg); err != nil {
			t.Fatalf("CreateMessage() error = %v", err)
		}
	}

	messages, err := db.ListMessagesBySnippet(context.Background(), snippet.ID, 3)
	if err != nil {
		t.Fatalf("ListMessagesBySnippet() error = %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3 (limit)", len(messages))
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].CreatedAt.After(messages[i-1].CreatedAt) {
			t.Errorf("messages not in descending creation order at index %d", i)
		}
	}
}

func TestJoinSnippet_Idempotent(t *testing.T) {
	db := newTestDB(t)
	snippet := createTestSnippet(t, db, "shared", "tok-join-0001")

	first := &model.SnippetCollaborator{SnippetID: snippet.ID, UserID: "u1"}
	if err := db.JoinSnippet(context.Background(), first); err != nil {
		t.Fatalf("JoinSnippet() error = %v", err)
	}
	second := &model.SnippetCollaborator{SnippetID: snippet.ID, UserID: "u1"}
	if err := db.JoinSnippet(context.Background(), second); err != nil {
		t.Fatalf("JoinSnippet() second join error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("re-join created a new row: %q vs %q", second.ID, first.ID)
	}

	collabs, err := db.ListCollaboratorsBySnippet(context.Background(), snippet.ID)
	if err != nil {
		t.Fatalf("ListCollaboratorsBySnippet() error = %v", err)
	}
	if len(collabs) != 1 {
		t.Errorf("got %d collaborator rows, want 1", len(collabs))
	}
}

func TestCreateCall(t *testing.T) {
	db := newTestDB(t)
	snippet := createTestSnippet(t, db, "on a call", "tok-call-0001")

	call := &model.SnippetCall{
		SnippetID: snippet.ID,
		RoomName:  "snippet-tok-call-0001",
		RoomURL:   "https://codecollab.daily.co/snippet-tok-call-0001",
		StartedBy: "u1",
	}
	if err := db.CreateCall(context.Background(), call); err != nil {
		t.Fatalf("CreateCall() error = %v", err)
	}
	if call.ID == "" || !call.IsActive {
		t.Errorf("CreateCall() id=%q active=%v, want id set and active", call.ID, call.IsActive)
	}
}
