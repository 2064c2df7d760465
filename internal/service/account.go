package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/model"
	"github.com/tanvir/codecollab/internal/repository"
	"github.com/tanvir/codecollab/internal/validation"
)

// verificationTokenTTL is how long a minted verification token stays valid.
const verificationTokenTTL = 24 * time.Hour

// AccountService manages user profiles and email-verification tokens.
type AccountService struct {
	profiles repository.ProfileRepository
	tokens   repository.TokenRepository
	logger   *slog.Logger
}

func NewAccountService(profiles repository.ProfileRepository, tokens repository.TokenRepository, logger *slog.Logger) *AccountService {
	return &AccountService{profiles: profiles, tokens: tokens, logger: logger}
}

// CreateProfile stores a new profile. A non-empty username must be unique.
func (s *AccountService) CreateProfile(ctx context.Context, payload validation.CreateProfile) (*model.Profile, error) {
	payload.Username = strings.TrimSpace(payload.Username)
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	profile := &model.Profile{
		Username:  payload.Username,
		FullName:  payload.FullName,
		AvatarURL: payload.AvatarURL,
	}
	if err := s.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile created",
		slog.String("id", profile.ID),
		slog.String("username", profile.Username),
	)
	return profile, nil
}

// GetProfile retrieves a profile by id.
func (s *AccountService) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "profile id is required")
	}
	return s.profiles.GetProfileByID(ctx, id)
}

// MintVerificationToken creates an email-verification token valid for
// 24 hours. The token value is an opaque random identifier.
func (s *AccountService) MintVerificationToken(ctx context.Context, payload validation.CreateVerificationToken) (*model.VerificationToken, error) {
	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	token := &model.VerificationToken{
		Token:     uuid.NewString(),
		UserID:    payload.UserID,
		Email:     payload.Email,
		ExpiresAt: time.Now().UTC().Add(verificationTokenTTL),
	}
	if err := s.tokens.CreateVerificationToken(ctx, token); err != nil {
		return nil, fmt.Errorf("minting verification token: %w", err)
	}

	s.logger.Info("verification token minted", slog.String("userId", payload.UserID))
	return token, nil
}

// GetVerificationToken looks up a token by value. Expired tokens read as
// absent.
func (s *AccountService) GetVerificationToken(ctx context.Context, value string) (*model.VerificationToken, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, apperror.ValidationFailed("token", "token is required")
	}
	return s.tokens.GetVerificationToken(ctx, value)
}
