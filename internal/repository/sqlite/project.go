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

var (
	_ repository.ProjectRepository       = (*DB)(nil)
	_ repository.ProjectFileRepository   = (*DB)(nil)
	_ repository.ProjectSecretRepository = (*DB)(nil)
)

// CreateProject inserts a new project and seeds its owner as a collaborator
// with the "owner" role, in one transaction.
func (db *DB) CreateProject(ctx context.Context, project *model.Project) error {
	project.ID = xid.New().String()
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO projects (id, name, description, owner_id, github_repo, github_branch, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.Name,
		project.Description,
		project.OwnerID,
		project.GitHubRepo,
		project.GitHubBranch,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating project: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO project_collaborators (id, project_id, user_id, role, added_at)
		 VALUES (?, ?, ?, 'owner', ?)`,
		xid.New().String(), project.ID, project.OwnerID, now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: seeding owner collaborator: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing project: %w", err)
	}
	return nil
}

// GetProjectByID retrieves a single project.
func (db *DB) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, owner_id, github_repo, github_branch, created_at, updated_at
		 FROM projects
		 WHERE id = ?`,
		id,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.OwnerID,
		&p.GitHubRepo, &p.GitHubBranch, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("project", id)
		}
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}
	return &p, nil
}

// ListProjectsByOwner returns all of an owner's projects, most recently
// updated first.
func (db *DB) ListProjectsByOwner(ctx context.Context, ownerID string) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, owner_id, github_repo, github_branch, created_at, updated_at
		 FROM projects
		 WHERE owner_id = ?
		 ORDER BY updated_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.OwnerID,
			&p.GitHubRepo, &p.GitHubBranch, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}
	return projects, nil
}

// CreateFile inserts a file or folder node. A duplicate (project, path) is a
// conflict; a dangling project id is a validation failure.
func (db *DB) CreateFile(ctx context.Context, file *model.ProjectFile) error {
	file.ID = xid.New().String()
	now := time.Now().UTC()
	file.CreatedAt = now
	file.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO project_files (id, project_id, path, content, is_folder, parent_folder_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		file.ID,
		file.ProjectID,
		file.Path,
		file.Content,
		file.IsFolder,
		file.ParentFolderID,
		file.CreatedAt,
		file.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("project file", file.Path)
		}
		if isForeignKeyViolation(err) {
			return apperror.ValidationFailed("projectId", "project does not exist")
		}
		return fmt.Errorf("sqlite: creating project file: %w", err)
	}
	return nil
}

// ListFilesByProject returns all of a project's files ordered by path
// string. Lexicographic, not tree order.
func (db *DB) ListFilesByProject(ctx context.Context, projectID string) ([]model.ProjectFile, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, project_id, path, content, is_folder, parent_folder_id, created_at, updated_at
		 FROM project_files
		 WHERE project_id = ?
		 ORDER BY path ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing project files: %w", err)
	}
	defer rows.Close()

	files := []model.ProjectFile{}
	for rows.Next() {
		var f model.ProjectFile
		if err := rows.Scan(
			&f.ID, &f.ProjectID, &f.Path, &f.Content,
			&f.IsFolder, &f.ParentFolderID, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning project file row: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating project files: %w", err)
	}
	return files, nil
}

// CreateSecret inserts a project-scoped secret; duplicate keys conflict.
func (db *DB) CreateSecret(ctx context.Context, secret *model.ProjectSecret) error {
	secret.ID = xid.New().String()
	now := time.Now().UTC()
	secret.CreatedAt = now
	secret.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO project_secrets (id, project_id, secret_key, secret_value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		secret.ID,
		secret.ProjectID,
		secret.SecretKey,
		secret.SecretValue,
		secret.CreatedAt,
		secret.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("secret", secret.SecretKey)
		}
		if isForeignKeyViolation(err) {
			return apperror.ValidationFailed("projectId", "project does not exist")
		}
		return fmt.Errorf("sqlite: creating secret: %w", err)
	}
	return nil
}

// ListSecretsByProject returns a project's secrets ordered by key.
func (db *DB) ListSecretsByProject(ctx context.Context, projectID string) ([]model.ProjectSecret, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, project_id, secret_key, secret_value, created_at, updated_at
		 FROM project_secrets
		 WHERE project_id = ?
		 ORDER BY secret_key ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing secrets: %w", err)
	}
	defer rows.Close()

	secrets := []model.ProjectSecret{}
	for rows.Next() {
		var s model.ProjectSecret
		if err := rows.Scan(
			&s.ID, &s.ProjectID, &s.SecretKey, &s.SecretValue,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning secret row: %w", err)
		}
		secrets = append(secrets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating secrets: %w", err)
	}
	return secrets, nil
}
