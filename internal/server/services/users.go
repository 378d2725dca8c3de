// Package services contains server-side business logic. This file implements
// UserService: registration, login, token issuance, and user administration.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkarpovs/studynotes/internal/common"
	"github.com/mkarpovs/studynotes/internal/server/auth"
	"github.com/mkarpovs/studynotes/internal/server/config"
	"github.com/mkarpovs/studynotes/internal/server/models"
	"github.com/mkarpovs/studynotes/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
//   - Register: create users with hashed passwords
//   - Login: verify credentials and mint a token
//   - List / Delete: user administration
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	hasher                auth.Hasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration

	// dummyHash is compared against on login for unknown usernames so both
	// failure paths cost one hash comparison.
	dummyHash []byte
}

// NewUserService constructs a UserService using repositories, the hashing
// capability, and server config. The dummy hash is derived from a random
// pad so it cannot be precomputed.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.Hasher, cfg *config.Config) *UserService {
	pad, _ := common.MakeRandHexString(16)
	dummy, _ := hasher.Hash(pad)
	return &UserService{
		db:                    db,
		repomanager:           m,
		hasher:                hasher,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		dummyHash:             dummy,
	}
}

// Register creates a new user. Empty username or password yields
// ErrorValidation; a taken username yields ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: hash}

	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and returns a signed token. Unknown
// username and wrong password both yield ErrorUnauthorized; the unknown-user
// path still performs a hash comparison so the two are not distinguishable
// by response time.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = s.hasher.Compare(s.dummyHash, password)
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error getting user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	return token, nil
}

// List returns all users, usernames only.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	result, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return result, nil
}

// Delete removes a user by id. Deleting a missing id is not an error.
func (s *UserService) Delete(ctx context.Context, id string) error {
	repo := s.repomanager.Users(s.db)
	if _, err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}
