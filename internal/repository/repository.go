// Package repository declares the storage interfaces the service layer
// depends on. The sqlite subpackage implements all of them on one DB type,
// so method names carry the entity to keep signatures distinct.
package repository

import (
	"context"

	"github.com/tanvir/codecollab/internal/model"
)

// SnippetUpdate carries the partial-update fields for a snippet. Nil means
// "leave unchanged"; everything else on the row is immutable after creation.
type SnippetUpdate struct {
	Title       *string
	Description *string
	Language    *string
	Code        *string
}

// ChallengeFilter holds the optional equality filters for listing
// challenges. Empty strings mean "no filter"; both set means AND.
type ChallengeFilter struct {
	Difficulty string
	Language   string
}

type SnippetRepository interface {
	CreateSnippet(ctx context.Context, snippet *model.Snippet) error
	GetSnippetByShareToken(ctx context.Context, token string) (*model.Snippet, error)
	UpdateSnippetByShareToken(ctx context.Context, token string, update SnippetUpdate) (*model.Snippet, error)
	DeleteSnippetByShareToken(ctx context.Context, token string) error
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *model.SnippetMessage) error
	// ListMessagesBySnippet returns up to limit messages, newest first.
	ListMessagesBySnippet(ctx context.Context, snippetID string, limit int) ([]model.SnippetMessage, error)
}

type CollaboratorRepository interface {
	// JoinSnippet upserts on (snippetID, userID); re-joining refreshes JoinedAt.
	JoinSnippet(ctx context.Context, collab *model.SnippetCollaborator) error
	ListCollaboratorsBySnippet(ctx context.Context, snippetID string) ([]model.SnippetCollaborator, error)
}

type CallRepository interface {
	CreateCall(ctx context.Context, call *model.SnippetCall) error
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, project *model.Project) error
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	// ListProjectsByOwner returns the owner's projects, most recently updated first.
	ListProjectsByOwner(ctx context.Context, ownerID string) ([]model.Project, error)
}

type ProjectFileRepository interface {
	CreateFile(ctx context.Context, file *model.ProjectFile) error
	// ListFilesByProject returns all files ordered by path string.
	ListFilesByProject(ctx context.Context, projectID string) ([]model.ProjectFile, error)
}

type ProjectSecretRepository interface {
	CreateSecret(ctx context.Context, secret *model.ProjectSecret) error
	ListSecretsByProject(ctx context.Context, projectID string) ([]model.ProjectSecret, error)
}

type ChallengeRepository interface {
	CreateChallenge(ctx context.Context, challenge *model.CodingChallenge) error
	GetChallengeByID(ctx context.Context, id string) (*model.CodingChallenge, error)
	// ListChallenges returns up to limit challenges matching the filter,
	// newest first.
	ListChallenges(ctx context.Context, filter ChallengeFilter, limit int) ([]model.CodingChallenge, error)
}

type SubmissionRepository interface {
	// RecordSubmission inserts the submission and, for a known user, upserts
	// the aggregate stats row and the per-challenge history row, all in one
	// transaction. The stats conflict path only increments total_submissions
	// and total_points; average_score, total_challenges and the streak fields
	// keep their first-insert values.
	RecordSubmission(ctx context.Context, sub *model.ChallengeSubmission) error
}

type StatsRepository interface {
	GetStatsByUser(ctx context.Context, userID string) (*model.UserPracticeStats, error)
	// Leaderboard returns up to limit stats rows by total points, descending.
	Leaderboard(ctx context.Context, limit int) ([]model.UserPracticeStats, error)
	GetChallengeHistory(ctx context.Context, userID, challengeID string) (*model.UserChallengeHistory, error)
}

type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *model.Profile) error
	GetProfileByID(ctx context.Context, id string) (*model.Profile, error)
}

type TokenRepository interface {
	CreateVerificationToken(ctx context.Context, token *model.VerificationToken) error
	// GetVerificationToken treats expired tokens as absent.
	GetVerificationToken(ctx context.Context, token string) (*model.VerificationToken, error)
}

type TicketRepository interface {
	CreateTicket(ctx context.Context, ticket *model.SupportTicket) error
}
