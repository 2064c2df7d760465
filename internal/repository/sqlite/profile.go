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
	_ repository.ProfileRepository = (*DB)(nil)
	_ repository.TokenRepository   = (*DB)(nil)
)

// CreateProfile inserts a new profile. A taken username is a conflict.
func (db *DB) CreateProfile(ctx context.Context, profile *model.Profile) error {
	profile.ID = xid.New().String()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO profiles (id, username, full_name, avatar_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		profile.ID,
		profile.Username,
		profile.FullName,
		profile.AvatarURL,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("profile", profile.Username)
		}
		return fmt.Errorf("sqlite: creating profile: %w", err)
	}
	return nil
}

// GetProfileByID retrieves a single profile.
func (db *DB) GetProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, full_name, avatar_url, created_at, updated_at
		 FROM profiles
		 WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("profile", id)
		}
		return nil, fmt.Errorf("sqlite: getting profile %s: %w", id, err)
	}
	return &p, nil
}

// CreateVerificationToken stores an email-verification token. The caller
// sets Token and ExpiresAt.
func (db *DB) CreateVerificationToken(ctx context.Context, token *model.VerificationToken) error {
	token.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO verification_tokens (token, user_id, email, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		token.Token,
		token.UserID,
		token.Email,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("verification token", token.Token)
		}
		return fmt.Errorf("sqlite: creating verification token: %w", err)
	}
	return nil
}

// GetVerificationToken retrieves a token by value. Expired tokens are
// reported as absent; rows are never purged here.
func (db *DB) GetVerificationToken(ctx context.Context, value string) (*model.VerificationToken, error) {
	var t model.VerificationToken
	err := db.conn.QueryRowContext(ctx,
		`SELECT token, user_id, email, expires_at, created_at
		 FROM verification_tokens
		 WHERE token = ?`,
		value,
	).Scan(&t.Token, &t.UserID, &t.Email, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("verification token", value)
		}
		return nil, fmt.Errorf("sqlite: getting verification token: %w", err)
	}
	if time.Now().After(t.ExpiresAt) {
		return nil, apperror.NotFound("verification token", value)
	}
	return &t, nil
}
