package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/integration"
	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
	"github.com/tanvir/codecollab/internal/validation"
)

const (
	// MaxChallengeList caps the challenge listing.
	MaxChallengeList = 50
	// LeaderboardSize is how many stats rows the leaderboard returns.
	LeaderboardSize = 100
)

// ChallengeService handles practice challenges, submissions, per-user stats
// and the leaderboard. Grading goes through the Grader interface; the wired
// implementation is a placeholder that must be replaced by a real evaluator
// before scores mean anything.
type ChallengeService struct {
	challenges  repository.ChallengeRepository
	submissions repository.SubmissionRepository
	stats       repository.StatsRepository
	grader      integration.Grader
	logger      *slog.Logger
}

func NewChallengeService(
	challenges repository.ChallengeRepository,
	submissions repository.SubmissionRepository,
	stats repository.StatsRepository,
	grader integration.Grader,
	logger *slog.Logger,
) *ChallengeService {
	return &ChallengeService{
		challenges:  challenges,
		submissions: submissions,
		stats:       stats,
		grader:      grader,
		logger:      logger,
	}
}

// Generate synthesizes a challenge from difficulty/language using fixed
// template text and one placeholder test case, standing in for an external
// challenge-generation service.
func (s *ChallengeService) Generate(ctx context.Context, payload validation.GenerateChallenge) (*model.CodingChallenge, error) {
	payload.Difficulty = strings.ToLower(strings.TrimSpace(payload.Difficulty))
	payload.Language = strings.ToLower(strings.TrimSpace(payload.Language))
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	challenge := &model.CodingChallenge{
		Title: fmt.Sprintf("Array manipulation (%s, %s)", payload.Difficulty, payload.Language),
		Description: fmt.Sprintf(
			"Given an array of integers, return a new array where every element "+
				"is doubled. Solve it in %s. Difficulty: %s.",
			payload.Language, payload.Difficulty),
		Difficulty:  payload.Difficulty,
		Language:    payload.Language,
		TestCases:   []model.TestCase{{Input: "[1, 2, 3]", Expected: "[2, 4, 6]"}},
		StarterCode: fmt.Sprintf("// Write your %s solution here\n", payload.Language),
		TimeLimit:   timeLimitFor(payload.Difficulty),
	}
	if err := s.challenges.CreateChallenge(ctx, challenge); err != nil {
		s.logger.Error("failed to store generated challenge", slog.String("error", err.Error()))
		return nil, fmt.Errorf("generating challenge: %w", err)
	}

	s.logger.Info("challenge generated",
		slog.String("id", challenge.ID),
		slog.String("difficulty", challenge.Difficulty),
		slog.String("language", challenge.Language),
	)
	return challenge, nil
}

func timeLimitFor(difficulty string) int {
	switch difficulty {
	case "easy":
		return 900
	case "hard":
		return 2700
	default:
		return 1800
	}
}

// List returns up to MaxChallengeList challenges, newest first, with
// optional AND-combined equality filters.
func (s *ChallengeService) List(ctx context.Context, difficulty, language string) ([]model.CodingChallenge, error) {
	challenges, err := s.challenges.ListChallenges(ctx, repository.ChallengeFilter{
		Difficulty: strings.TrimSpace(difficulty),
		Language:   strings.TrimSpace(language),
	}, MaxChallengeList)
	if err != nil {
		s.logger.Error("failed to list challenges", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing challenges: %w", err)
	}
	if challenges == nil {
		challenges = []model.CodingChallenge{}
	}
	return challenges, nil
}

// GetByID retrieves a single challenge.
func (s *ChallengeService) GetByID(ctx context.Context, id string) (*model.CodingChallenge, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "challenge id is required")
	}
	return s.challenges.GetChallengeByID(ctx, id)
}

// Submit grades an attempt and records it. The submission row and the stats
// and history upserts commit together, so a visible submission always has
// its aggregates reflected.
func (s *ChallengeService) Submit(ctx context.Context, challengeID string, payload validation.SubmitChallenge) (*model.ChallengeSubmission, error) {
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	challenge, err := s.challenges.GetChallengeByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	result, err := s.grader.Grade(ctx, challenge.ID, challenge.Language, payload.Code, len(challenge.TestCases))
	if err != nil {
		s.logger.Error("grading failed",
			slog.String("challengeId", challengeID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("grading submission: %w", err)
	}

	sub := &model.ChallengeSubmission{
		ChallengeID: challenge.ID,
		UserID:      payload.UserID,
		Code:        payload.Code,
		Status:      result.Status,
		Score:       result.Score,
		PassedTests: result.PassedTests,
		TotalTests:  result.TotalTests,
		Feedback:    result.Feedback,
	}
	if err := s.submissions.RecordSubmission(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("submission recorded",
		slog.String("id", sub.ID),
		slog.String("challengeId", challenge.ID),
		slog.String("userId", payload.UserID),
		slog.Int("score", sub.Score),
	)
	return sub, nil
}

// Leaderboard returns the top users by total points, descending.
func (s *ChallengeService) Leaderboard(ctx context.Context) ([]model.UserPracticeStats, error) {
	board, err := s.stats.Leaderboard(ctx, LeaderboardSize)
	if err != nil {
		s.logger.Error("failed to query leaderboard", slog.String("error", err.Error()))
		return nil, fmt.Errorf("querying leaderboard: %w", err)
	}
	if board == nil {
		board = []model.UserPracticeStats{}
	}
	return board, nil
}

// UserStats returns a user's aggregate stats row. Users without one get a
// zero-valued object echoing their id; it is never persisted, and this
// endpoint never reports not-found.
func (s *ChallengeService) UserStats(ctx context.Context, userID string) (*model.UserPracticeStats, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "user id is required")
	}

	stats, err := s.stats.GetStatsByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return &model.UserPracticeStats{UserID: userID}, nil
		}
		return nil, err
	}
	return stats, nil
}
