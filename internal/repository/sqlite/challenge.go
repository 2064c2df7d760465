package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
)

var (
	_ repository.ChallengeRepository  = (*DB)(nil)
	_ repository.SubmissionRepository = (*DB)(nil)
	_ repository.StatsRepository      = (*DB)(nil)
)

// CreateChallenge inserts a practice problem. Test cases are stored as a
// JSON array in a text column.
func (db *DB) CreateChallenge(ctx context.Context, challenge *model.CodingChallenge) error {
	challenge.ID = xid.New().String()
	challenge.CreatedAt = time.Now().UTC()

	testCases, err := json.Marshal(challenge.TestCases)
	if err != nil {
		return fmt.Errorf("sqlite: encoding test cases: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO coding_challenges (id, title, description, difficulty, language, test_cases, starter_code, solution, time_limit, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		challenge.ID,
		challenge.Title,
		challenge.Description,
		challenge.Difficulty,
		challenge.Language,
		string(testCases),
		challenge.StarterCode,
		challenge.Solution,
		challenge.TimeLimit,
		challenge.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating challenge: %w", err)
	}
	return nil
}

// GetChallengeByID retrieves a single challenge.
func (db *DB) GetChallengeByID(ctx context.Context, id string) (*model.CodingChallenge, error) {
	var c model.CodingChallenge
	var testCases string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, difficulty, language, test_cases, starter_code, solution, time_limit, created_at
		 FROM coding_challenges
		 WHERE id = ?`,
		id,
	).Scan(
		&c.ID, &c.Title, &c.Description, &c.Difficulty, &c.Language,
		&testCases, &c.StarterCode, &c.Solution, &c.TimeLimit, &c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("challenge", id)
		}
		return nil, fmt.Errorf("sqlite: getting challenge %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(testCases), &c.TestCases); err != nil {
		return nil, fmt.Errorf("sqlite: decoding test cases for %s: %w", id, err)
	}
	return &c, nil
}

// ListChallenges returns up to limit challenges, newest first. Difficulty
// and language filters are equality checks, AND-combined when both set.
func (db *DB) ListChallenges(ctx context.Context, filter repository.ChallengeFilter, limit int) ([]model.CodingChallenge, error) {
	query := `SELECT id, title, description, difficulty, language, test_cases, starter_code, solution, time_limit, created_at
		 FROM coding_challenges WHERE 1=1`
	args := []any{}
	if filter.Difficulty != "" {
		query += ` AND difficulty = ?`
		args = append(args, filter.Difficulty)
	}
	if filter.Language != "" {
		query += ` AND language = ?`
		args = append(args, filter.Language)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing challenges: %w", err)
	}
	defer rows.Close()

	challenges := make([]model.CodingChallenge, 0, limit)
	for rows.Next() {
		var c model.CodingChallenge
		var testCases string
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Difficulty, &c.Language,
			&testCases, &c.StarterCode, &c.Solution, &c.TimeLimit, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning challenge row: %w", err)
		}
		if err := json.Unmarshal([]byte(testCases), &c.TestCases); err != nil {
			return nil, fmt.Errorf("sqlite: decoding test cases for %s: %w", c.ID, err)
		}
		challenges = append(challenges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating challenges: %w", err)
	}
	return challenges, nil
}

// RecordSubmission inserts a graded submission and, when the user is known,
// updates the aggregate stats and per-challenge history rows. All three
// statements run in one transaction so a visible submission always has its
// stats reflected.
//
// The stats upsert is deliberately asymmetric: the insert branch seeds
// total_challenges, average_score and the streak fields, but the conflict
// branch only increments total_submissions and total_points. Inherited
// behavior; consumers of the data may rely on it.
func (db *DB) RecordSubmission(ctx context.Context, sub *model.ChallengeSubmission) error {
	sub.ID = xid.New().String()
	sub.SubmittedAt = time.Now().UTC()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO challenge_submissions (id, challenge_id, user_id, code, status, score, passed_tests, total_tests, feedback, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID,
		sub.ChallengeID,
		sub.UserID,
		sub.Code,
		sub.Status,
		sub.Score,
		sub.PassedTests,
		sub.TotalTests,
		sub.Feedback,
		sub.SubmittedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.ValidationFailed("challengeId", "challenge does not exist")
		}
		return fmt.Errorf("sqlite: creating submission: %w", err)
	}

	if sub.UserID != "" {
		solved := sub.Status == "passed"

		// The conflict-path increments are atomic at the statement level, so
		// concurrent submissions for the same user never lose points.
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_practice_stats
			   (user_id, total_challenges, total_submissions, average_score, total_points, current_streak, best_streak, last_practice_at, updated_at)
			 VALUES (?, 1, 1, ?, ?, 1, 1, ?, ?)
			 ON CONFLICT(user_id) DO UPDATE SET
			   total_submissions = total_submissions + 1,
			   total_points      = total_points + excluded.total_points,
			   updated_at        = excluded.updated_at`,
			sub.UserID,
			float64(sub.Score),
			sub.Score,
			sub.SubmittedAt,
			sub.SubmittedAt,
		)
		if err != nil {
			return fmt.Errorf("sqlite: upserting stats: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_challenge_history
			   (id, user_id, challenge_id, best_score, attempts, solved, last_attempt_at)
			 VALUES (?, ?, ?, ?, 1, ?, ?)
			 ON CONFLICT(user_id, challenge_id) DO UPDATE SET
			   best_score      = MAX(best_score, excluded.best_score),
			   attempts        = attempts + 1,
			   solved          = MAX(solved, excluded.solved),
			   last_attempt_at = excluded.last_attempt_at`,
			xid.New().String(),
			sub.UserID,
			sub.ChallengeID,
			sub.Score,
			solved,
			sub.SubmittedAt,
		)
		if err != nil {
			return fmt.Errorf("sqlite: upserting challenge history: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing submission: %w", err)
	}
	return nil
}

// GetStatsByUser retrieves a user's aggregate stats row.
func (db *DB) GetStatsByUser(ctx context.Context, userID string) (*model.UserPracticeStats, error) {
	var s model.UserPracticeStats
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, total_challenges, total_submissions, average_score, total_points, current_streak, best_streak, last_practice_at, updated_at
		 FROM user_practice_stats
		 WHERE user_id = ?`,
		userID,
	).Scan(
		&s.UserID, &s.TotalChallenges, &s.TotalSubmissions, &s.AverageScore,
		&s.TotalPoints, &s.CurrentStreak, &s.BestStreak, &s.LastPracticeAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("stats", userID)
		}
		return nil, fmt.Errorf("sqlite: getting stats for %s: %w", userID, err)
	}
	return &s, nil
}

// Leaderboard returns up to limit stats rows by total points, descending.
func (db *DB) Leaderboard(ctx context.Context, limit int) ([]model.UserPracticeStats, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, total_challenges, total_submissions, average_score, total_points, current_streak, best_streak, last_practice_at, updated_at
		 FROM user_practice_stats
		 ORDER BY total_points DESC, user_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying leaderboard: %w", err)
	}
	defer rows.Close()

	stats := make([]model.UserPracticeStats, 0, limit)
	for rows.Next() {
		var s model.UserPracticeStats
		if err := rows.Scan(
			&s.UserID, &s.TotalChallenges, &s.TotalSubmissions, &s.AverageScore,
			&s.TotalPoints, &s.CurrentStreak, &s.BestStreak, &s.LastPracticeAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning leaderboard row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating leaderboard: %w", err)
	}
	return stats, nil
}

// GetChallengeHistory retrieves the best-attempt summary for one
// (user, challenge) pair.
func (db *DB) GetChallengeHistory(ctx context.Context, userID, challengeID string) (*model.UserChallengeHistory, error) {
	var h model.UserChallengeHistory
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, challenge_id, best_score, attempts, solved, last_attempt_at
		 FROM user_challenge_history
		 WHERE user_id = ? AND challenge_id = ?`,
		userID, challengeID,
	).Scan(
		&h.ID, &h.UserID, &h.ChallengeID, &h.BestScore,
		&h.Attempts, &h.Solved, &h.LastAttemptAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("challenge history", userID)
		}
		return nil, fmt.Errorf("sqlite: getting challenge history: %w", err)
	}
	return &h, nil
}
