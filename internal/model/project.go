package model

import "time"

// Project is a multi-file workspace, optionally linked to a GitHub repo.
type Project struct {
	ID           string    `json:"id"           db:"id"`
	Name         string    `json:"name"         db:"name"`
	Description  string    `json:"description"  db:"description"`
	OwnerID      string    `json:"ownerId"      db:"owner_id"`
	GitHubRepo   string    `json:"githubRepo"   db:"github_repo"`
	GitHubBranch string    `json:"githubBranch" db:"github_branch"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"    db:"updated_at"`
}

// ProjectFile is a file or folder node in a project tree. Folders carry no
// content. Path is unique per project; listing orders by path string, not by
// tree structure.
type ProjectFile struct {
	ID             string    `json:"id"             db:"id"`
	ProjectID      string    `json:"projectId"      db:"project_id"`
	Path           string    `json:"path"           db:"path"`
	Content        string    `json:"content"        db:"content"`
	IsFolder       bool      `json:"isFolder"       db:"is_folder"`
	ParentFolderID *string   `json:"parentFolderId" db:"parent_folder_id"`
	CreatedAt      time.Time `json:"createdAt"      db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt"      db:"updated_at"`
}

// ProjectCollaborator is a user's role on a project, one row per
// (project, user).
type ProjectCollaborator struct {
	ID        string    `json:"id"        db:"id"`
	ProjectID string    `json:"projectId" db:"project_id"`
	UserID    string    `json:"userId"    db:"user_id"`
	Role      string    `json:"role"      db:"role"` // "owner", "editor", "viewer"
	AddedAt   time.Time `json:"addedAt"   db:"added_at"`
}

// ProjectSecret is a project-scoped key/value secret. SecretKey is unique
// per project.
type ProjectSecret struct {
	ID          string    `json:"id"          db:"id"`
	ProjectID   string    `json:"projectId"   db:"project_id"`
	SecretKey   string    `json:"secretKey"   db:"secret_key"`
	SecretValue string    `json:"secretValue" db:"secret_value"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}
