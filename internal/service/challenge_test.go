package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/integration"
	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
	"github.com/tanvir/codecollab/internal/validation"
)

// mockChallengeRepo stores challenges in insertion order.
type mockChallengeRepo struct {
	challenges []*model.CodingChallenge
	nextID     int
}

func (m *mockChallengeRepo) CreateChallenge(_ context.Context, c *model.CodingChallenge) error {
	m.nextID++
	c.ID = fmt.Sprintf("chal-%d", m.nextID)
	c.CreatedAt = time.Now().UTC()
	stored := *c
	m.challenges = append(m.challenges, &stored)
	return nil
}

func (m *mockChallengeRepo) GetChallengeByID(_ context.Context, id string) (*model.CodingChallenge, error) {
	for _, c := range m.challenges {
		if c.ID == id {
			copied := *c
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("challenge", id)
}

func (m *mockChallengeRepo) ListChallenges(_ context.Context, filter repository.ChallengeFilter, limit int) ([]model.CodingChallenge, error) {
	var out []model.CodingChallenge
	// newest first
	for i := len(m.challenges) - 1; i >= 0; i-- {
		c := m.challenges[i]
		if filter.Difficulty != "" && c.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Language != "" && c.Language != filter.Language {
			continue
		}
		out = append(out, *c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// mockSubmissionRepo mirrors the store's aggregate behavior closely enough
// for service-level assertions.
type mockSubmissionRepo struct {
	submissions []model.ChallengeSubmission
	stats       map[string]*model.UserPracticeStats
	nextID      int
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{stats: make(map[string]*model.UserPracticeStats)}
}

func (m *mockSubmissionRepo) RecordSubmission(_ context.Context, sub *model.ChallengeSubmission) error {
	m.nextID++
	sub.ID = fmt.Sprintf("sub-%d", m.nextID)
	sub.SubmittedAt = time.Now().UTC()
	m.submissions = append(m.submissions, *sub)
	if sub.UserID == "" {
		return nil
	}
	st, ok := m.stats[sub.UserID]
	if !ok {
		st = &model.UserPracticeStats{UserID: sub.UserID}
		m.stats[sub.UserID] = st
	}
	st.TotalSubmissions++
	st.TotalPoints += sub.Score
	return nil
}

func (m *mockSubmissionRepo) GetStatsByUser(_ context.Context, userID string) (*model.UserPracticeStats, error) {
	st, ok := m.stats[userID]
	if !ok {
		return nil, apperror.NotFound("user stats", userID)
	}
	copied := *st
	return &copied, nil
}

func (m *mockSubmissionRepo) Leaderboard(_ context.Context, limit int) ([]model.UserPracticeStats, error) {
	var out []model.UserPracticeStats
	for _, st := range m.stats {
		out = append(out, *st)
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockSubmissionRepo) GetChallengeHistory(_ context.Context, userID, challengeID string) (*model.UserChallengeHistory, error) {
	return nil, apperror.NotFound("challenge history", userID+"/"+challengeID)
}

func newTestChallengeService(t *testing.T) (*ChallengeService, *mockChallengeRepo, *mockSubmissionRepo) {
	t.Helper()
	challenges := &mockChallengeRepo{}
	subs := newMockSubmissionRepo()
	grader := &integration.Stub{CallDomain: "https://example.daily.co"}
	svc := NewChallengeService(challenges, subs, subs, grader, testLogger())
	return svc, challenges, subs
}

func TestGenerate_NormalizesInputs(t *testing.T) {
	svc, _, _ := newTestChallengeService(t)

	c, err := svc.Generate(context.Background(), validation.GenerateChallenge{
		Difficulty: "  EASY ", Language: "Python",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if c.Difficulty != "easy" || c.Language != "python" {
		t.Errorf("got difficulty=%q language=%q, want lowercased trimmed", c.Difficulty, c.Language)
	}
	if c.TimeLimit != 900 {
		t.Errorf("TimeLimit = %d, want 900 for easy", c.TimeLimit)
	}
	if len(c.TestCases) == 0 {
		t.Error("generated challenge has no test cases")
	}
}

func TestGenerate_TimeLimits(t *testing.T) {
	svc, _, _ := newTestChallengeService(t)

	cases := map[string]int{"easy": 900, "medium": 1800, "hard": 2700, "weird": 1800}
	for difficulty, want := range cases {
		c, err := svc.Generate(context.Background(), validation.GenerateChallenge{
			Difficulty: difficulty, Language: "go",
		})
		if err != nil {
			t.Fatalf("Generate(%q) error = %v", difficulty, err)
		}
		if c.TimeLimit != want {
			t.Errorf("TimeLimit for %q = %d, want %d", difficulty, c.TimeLimit, want)
		}
	}
}

func TestGenerate_MissingDifficulty(t *testing.T) {
	svc, _, _ := newTestChallengeService(t)

	_, err := svc.Generate(context.Background(), validation.GenerateChallenge{Language: "go"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestSubmit_RecordsGradedResult(t *testing.T) {
	svc, _, subs := newTestChallengeService(t)

	c, err := svc.Generate(context.Background(), validation.GenerateChallenge{Difficulty: "easy", Language: "go"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	sub, err := svc.Submit(context.Background(), c.ID, validation.SubmitChallenge{
		UserID: "u1", Code: "func double(xs []int) []int { return xs }",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sub.Status != "passed" || sub.Score != 100 {
		t.Errorf("got status=%q score=%d, want passed/100", sub.Status, sub.Score)
	}
	if sub.PassedTests != sub.TotalTests {
		t.Errorf("PassedTests = %d, TotalTests = %d, want equal", sub.PassedTests, sub.TotalTests)
	}

	stats, err := svc.UserStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UserStats() error = %v", err)
	}
	if stats.TotalSubmissions != 1 || stats.TotalPoints != 100 {
		t.Errorf("stats = %+v, want one submission worth 100 points", stats)
	}
	if len(subs.submissions) != 1 {
		t.Errorf("stored submissions = %d, want 1", len(subs.submissions))
	}
}

func TestSubmit_UnknownChallenge(t *testing.T) {
	svc, _, _ := newTestChallengeService(t)

	_, err := svc.Submit(context.Background(), "chal-missing", validation.SubmitChallenge{Code: "x"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSubmit_EmptyCode(t *testing.T) {
	svc, _, _ := newTestChallengeService(t)

	_, err := svc.Submit(context.Background(), "chal-1", validation.SubmitChallenge{UserID: "u1"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestList_FiltersCombineWithAnd(t *testing.T) {
	svc, _, _ := newTestChallengeService(t)

	mustGenerate := func(difficulty, language string) {
		t.Helper()
		if _, err := svc.Generate(context.Background(), validation.GenerateChallenge{
			Difficulty: difficulty, Language: language,
		}); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
	}
	mustGenerate("easy", "go")
	mustGenerate("easy", "python")
	mustGenerate("hard", "go")

	got, err := svc.List(context.Background(), "easy", "go")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Difficulty != "easy" || got[0].Language != "go" {
		t.Errorf("filtered result = %+v", got[0])
	}
}

func TestUserStats_UnknownUserGetsZeroes(t *testing.T) {
	svc, _, _ := newTestChallengeService(t)

	stats, err := svc.UserStats(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("UserStats() error = %v", err)
	}
	if stats.UserID != "ghost" {
		t.Errorf("UserID = %q, want %q", stats.UserID, "ghost")
	}
	if stats.TotalSubmissions != 0 || stats.TotalPoints != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestUserStats_EmptyUserID(t *testing.T) {
	svc, _, _ := newTestChallengeService(t)

	_, err := svc.UserStats(context.Background(), "  ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
