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

// ProjectService manages projects and their files and secrets.
type ProjectService struct {
	projects repository.ProjectRepository
	files    repository.ProjectFileRepository
	secrets  repository.ProjectSecretRepository
	logger   *slog.Logger
}

func NewProjectService(
	projects repository.ProjectRepository,
	files repository.ProjectFileRepository,
	secrets repository.ProjectSecretRepository,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		files:    files,
		secrets:  secrets,
		logger:   logger,
	}
}

// Create validates the payload and stores a project. The owner is seeded as
// a collaborator by the store inside the same transaction.
func (s *ProjectService) Create(ctx context.Context, payload validation.CreateProject) (*model.Project, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:         payload.Name,
		Description:  payload.Description,
		OwnerID:      payload.OwnerID,
		GitHubRepo:   payload.GitHubRepo,
		GitHubBranch: payload.GitHubBranch,
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		s.logger.Error("failed to create project",
			slog.String("name", payload.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created",
		slog.String("id", project.ID),
		slog.String("ownerId", project.OwnerID),
	)
	return project, nil
}

// GetByID retrieves a single project.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "project id is required")
	}
	return s.projects.GetProjectByID(ctx, id)
}

// ListByOwner returns a user's projects, most recently updated first. The
// owner id is required; listing all projects is not supported.
func (s *ProjectService) ListByOwner(ctx context.Context, ownerID string) ([]model.Project, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, apperror.ValidationFailed("ownerId", "ownerId query parameter is required")
	}

	projects, err := s.projects.ListProjectsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}

// CreateFile adds a file or folder entry to a project's tree. Paths are
// unique within a project.
func (s *ProjectService) CreateFile(ctx context.Context, projectID string, payload validation.CreateProjectFile) (*model.ProjectFile, error) {
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	file := &model.ProjectFile{
		ProjectID:      projectID,
		Path:           payload.Path,
		Content:        payload.Content,
		IsFolder:       payload.IsFolder,
		ParentFolderID: payload.ParentFolderID,
	}
	if err := s.files.CreateFile(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// ListFiles returns a project's file entries ordered by path.
func (s *ProjectService) ListFiles(ctx context.Context, projectID string) ([]model.ProjectFile, error) {
	files, err := s.files.ListFilesByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project files: %w", err)
	}
	if files == nil {
		files = []model.ProjectFile{}
	}
	return files, nil
}

// CreateSecret stores an environment secret for a project. Keys are unique
// within a project.
func (s *ProjectService) CreateSecret(ctx context.Context, projectID string, payload validation.CreateProjectSecret) (*model.ProjectSecret, error) {
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	secret := &model.ProjectSecret{
		ProjectID:   projectID,
		SecretKey:   payload.SecretKey,
		SecretValue: payload.SecretValue,
	}
	if err := s.secrets.CreateSecret(ctx, secret); err != nil {
		return nil, err
	}
	s.logger.Info("project secret stored",
		slog.String("projectId", projectID),
		slog.String("key", payload.SecretKey),
	)
	return secret, nil
}

// ListSecrets returns a project's secrets ordered by key.
func (s *ProjectService) ListSecrets(ctx context.Context, projectID string) ([]model.ProjectSecret, error) {
	secrets, err := s.secrets.ListSecretsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project secrets: %w", err)
	}
	if secrets == nil {
		secrets = []model.ProjectSecret{}
	}
	return secrets, nil
}
