// Package sqlite implements the repository interfaces on SQLite via the
// pure-Go modernc.org/sqlite driver. Uniqueness and cascade rules live here
// as schema constraints so they hold even under direct store access.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB pool and provides all repository methods.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests) and runs
// migrations. WAL allows concurrent reads during writes; foreign keys are off
// by default in SQLite and must be switched on per connection.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every pooled connection to ":memory:" opens its own empty database, so
	// in-memory use must stay on a single connection.
	if strings.Contains(dbPath, ":memory:") {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting busy timeout: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id         TEXT PRIMARY KEY,
			username   TEXT NOT NULL DEFAULT '',
			full_name  TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		// Usernames are unique only when present; empty means "not chosen yet".
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_username
			ON profiles(username) WHERE username != ''`,

		`CREATE TABLE IF NOT EXISTS snippets (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			language    TEXT NOT NULL DEFAULT '',
			code        TEXT NOT NULL DEFAULT '',
			share_token TEXT NOT NULL UNIQUE,
			owner_id    TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snippets_created_at ON snippets(created_at)`,

		`CREATE TABLE IF NOT EXISTS snippet_collaborators (
			id         TEXT PRIMARY KEY,
			snippet_id TEXT NOT NULL REFERENCES snippets(id) ON DELETE CASCADE,
			user_id    TEXT NOT NULL,
			joined_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(snippet_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS snippet_messages (
			id           TEXT PRIMARY KEY,
			snippet_id   TEXT NOT NULL REFERENCES snippets(id) ON DELETE CASCADE,
			user_id      TEXT NOT NULL DEFAULT '',
			username     TEXT NOT NULL DEFAULT '',
			content      TEXT NOT NULL,
			message_type TEXT NOT NULL DEFAULT 'text',
			file_url     TEXT NOT NULL DEFAULT '',
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_snippet
			ON snippet_messages(snippet_id, created_at)`,

		`CREATE TABLE IF NOT EXISTS snippet_calls (
			id         TEXT PRIMARY KEY,
			snippet_id TEXT NOT NULL REFERENCES snippets(id) ON DELETE CASCADE,
			room_name  TEXT NOT NULL,
			room_url   TEXT NOT NULL,
			started_by TEXT NOT NULL DEFAULT '',
			is_active  INTEGER NOT NULL DEFAULT 1,
			started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			ended_at   DATETIME
		)`,

		`CREATE TABLE IF NOT EXISTS projects (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			owner_id      TEXT NOT NULL,
			github_repo   TEXT NOT NULL DEFAULT '',
			github_branch TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id, updated_at)`,

		`CREATE TABLE IF NOT EXISTS project_files (
			id               TEXT PRIMARY KEY,
			project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			path             TEXT NOT NULL,
			content          TEXT NOT NULL DEFAULT '',
			is_folder        INTEGER NOT NULL DEFAULT 0,
			parent_folder_id TEXT REFERENCES project_files(id),
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(project_id, path)
		)`,

		`CREATE TABLE IF NOT EXISTS project_collaborators (
			id         TEXT PRIMARY KEY,
			project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			user_id    TEXT NOT NULL,
			role       TEXT NOT NULL DEFAULT 'viewer',
			added_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(project_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS project_secrets (
			id           TEXT PRIMARY KEY,
			project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			secret_key   TEXT NOT NULL,
			secret_value TEXT NOT NULL,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(project_id, secret_key)
		)`,

		`CREATE TABLE IF NOT EXISTS coding_challenges (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			difficulty   TEXT NOT NULL DEFAULT '',
			language     TEXT NOT NULL DEFAULT '',
			test_cases   TEXT NOT NULL DEFAULT '[]',
			starter_code TEXT NOT NULL DEFAULT '',
			solution     TEXT NOT NULL DEFAULT '',
			time_limit   INTEGER NOT NULL DEFAULT 0,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_challenges_filter
			ON coding_challenges(difficulty, language, created_at)`,

		`CREATE TABLE IF NOT EXISTS challenge_submissions (
			id           TEXT PRIMARY KEY,
			challenge_id TEXT NOT NULL REFERENCES coding_challenges(id) ON DELETE CASCADE,
			user_id      TEXT NOT NULL DEFAULT '',
			code         TEXT NOT NULL,
			status       TEXT NOT NULL DEFAULT 'pending',
			score        INTEGER NOT NULL DEFAULT 0,
			passed_tests INTEGER NOT NULL DEFAULT 0,
			total_tests  INTEGER NOT NULL DEFAULT 0,
			feedback     TEXT NOT NULL DEFAULT '',
			submitted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS user_practice_stats (
			user_id           TEXT PRIMARY KEY,
			total_challenges  INTEGER NOT NULL DEFAULT 0,
			total_submissions INTEGER NOT NULL DEFAULT 0,
			average_score     REAL NOT NULL DEFAULT 0,
			total_points      INTEGER NOT NULL DEFAULT 0,
			current_streak    INTEGER NOT NULL DEFAULT 0,
			best_streak       INTEGER NOT NULL DEFAULT 0,
			last_practice_at  DATETIME,
			updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stats_points
			ON user_practice_stats(total_points)`,

		`CREATE TABLE IF NOT EXISTS user_challenge_history (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL,
			challenge_id    TEXT NOT NULL REFERENCES coding_challenges(id) ON DELETE CASCADE,
			best_score      INTEGER NOT NULL DEFAULT 0,
			attempts        INTEGER NOT NULL DEFAULT 0,
			solved          INTEGER NOT NULL DEFAULT 0,
			last_attempt_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, challenge_id)
		)`,

		`CREATE TABLE IF NOT EXISTS verification_tokens (
			token      TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			email      TEXT NOT NULL,
			expires_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS support_tickets (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL DEFAULT '',
			email       TEXT NOT NULL,
			subject     TEXT NOT NULL,
			description TEXT NOT NULL,
			status      TEXT NOT NULL DEFAULT 'open',
			priority    TEXT NOT NULL DEFAULT 'medium',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migrating %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if i := strings.IndexByte(stmt, '\n'); i > 0 {
		return stmt[:i]
	}
	return stmt
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The driver has no exported error codes for this, so we match the
// message, which is stable across SQLite versions.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a SQLite FK failure.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
