// Package model defines the data structures persisted by the application.
package model

import "time"

// Snippet is a shareable code document. Access goes through the share token,
// a server-generated 12-character URL-safe string that never changes after
// creation.
type Snippet struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	Language    string    `json:"language"    db:"language"`
	Code        string    `json:"code"        db:"code"`
	ShareToken  string    `json:"shareToken"  db:"share_token"`
	OwnerID     string    `json:"ownerId"     db:"owner_id"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// SnippetCollaborator records a user's presence in a snippet's room.
// One row per (snippet, user); re-joining refreshes JoinedAt.
type SnippetCollaborator struct {
	ID        string    `json:"id"        db:"id"`
	SnippetID string    `json:"snippetId" db:"snippet_id"`
	UserID    string    `json:"userId"    db:"user_id"`
	JoinedAt  time.Time `json:"joinedAt"  db:"joined_at"`
}

// SnippetMessage is a chat or file message posted in a snippet's room.
type SnippetMessage struct {
	ID          string    `json:"id"          db:"id"`
	SnippetID   string    `json:"snippetId"   db:"snippet_id"`
	UserID      string    `json:"userId"      db:"user_id"`
	Username    string    `json:"username"    db:"username"`
	Content     string    `json:"content"     db:"content"`
	MessageType string    `json:"messageType" db:"message_type"` // "text" or "file"
	FileURL     string    `json:"fileUrl"     db:"file_url"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
}

// SnippetCall is metadata for an externally provisioned video-call room.
// IsActive is advisory only; the store does not enforce a single active call.
type SnippetCall struct {
	ID        string     `json:"id"        db:"id"`
	SnippetID string     `json:"snippetId" db:"snippet_id"`
	RoomName  string     `json:"roomName"  db:"room_name"`
	RoomURL   string     `json:"roomUrl"   db:"room_url"`
	StartedBy string     `json:"startedBy" db:"started_by"`
	IsActive  bool       `json:"isActive"  db:"is_active"`
	StartedAt time.Time  `json:"startedAt" db:"started_at"`
	EndedAt   *time.Time `json:"endedAt"   db:"ended_at"`
}
