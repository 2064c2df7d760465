package model

import "time"

// TestCase is one input/output pair attached to a challenge. Stored as a
// JSON array in the test_cases column.
type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// CodingChallenge is a practice problem. Difficulty and language are stored
// as free text; no enum is enforced at this layer.
type CodingChallenge struct {
	ID          string     `json:"id"          db:"id"`
	Title       string     `json:"title"       db:"title"`
	Description string     `json:"description" db:"description"`
	Difficulty  string     `json:"difficulty"  db:"difficulty"` // "easy", "medium", "hard"
	Language    string     `json:"language"    db:"language"`
	TestCases   []TestCase `json:"testCases"   db:"test_cases"`
	StarterCode string     `json:"starterCode" db:"starter_code"`
	Solution    string     `json:"solution"    db:"solution"`
	TimeLimit   int        `json:"timeLimit"   db:"time_limit"` // seconds
	CreatedAt   time.Time  `json:"createdAt"   db:"created_at"`
}

// ChallengeSubmission is one user's attempt at a challenge, including the
// grading outcome.
type ChallengeSubmission struct {
	ID          string    `json:"id"          db:"id"`
	ChallengeID string    `json:"challengeId" db:"challenge_id"`
	UserID      string    `json:"userId"      db:"user_id"`
	Code        string    `json:"code"        db:"code"`
	Status      string    `json:"status"      db:"status"` // "passed", "failed", "pending"
	Score       int       `json:"score"       db:"score"`
	PassedTests int       `json:"passedTests" db:"passed_tests"`
	TotalTests  int       `json:"totalTests"  db:"total_tests"`
	Feedback    string    `json:"feedback"    db:"feedback"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}

// UserPracticeStats is the per-user aggregate row behind the leaderboard.
// It is updated incrementally on each submission, never recomputed from the
// submissions table. On conflict only TotalSubmissions and TotalPoints are
// incremented; AverageScore, TotalChallenges and the streak fields keep their
// first-insert values. That asymmetry is inherited behavior, kept on purpose.
type UserPracticeStats struct {
	UserID           string     `json:"userId"           db:"user_id"`
	TotalChallenges  int        `json:"totalChallenges"  db:"total_challenges"`
	TotalSubmissions int        `json:"totalSubmissions" db:"total_submissions"`
	AverageScore     float64    `json:"averageScore"     db:"average_score"`
	TotalPoints      int        `json:"totalPoints"      db:"total_points"`
	CurrentStreak    int        `json:"currentStreak"    db:"current_streak"`
	BestStreak       int        `json:"bestStreak"       db:"best_streak"`
	LastPracticeAt   *time.Time `json:"lastPracticeAt"   db:"last_practice_at"`
	UpdatedAt        time.Time  `json:"updatedAt"        db:"updated_at"`
}

// UserChallengeHistory is the best-attempt summary per (user, challenge).
type UserChallengeHistory struct {
	ID            string    `json:"id"            db:"id"`
	UserID        string    `json:"userId"        db:"user_id"`
	ChallengeID   string    `json:"challengeId"   db:"challenge_id"`
	BestScore     int       `json:"bestScore"     db:"best_score"`
	Attempts      int       `json:"attempts"      db:"attempts"`
	Solved        bool      `json:"solved"        db:"solved"`
	LastAttemptAt time.Time `json:"lastAttemptAt" db:"last_attempt_at"`
}
