package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapp/internal/auth"
	"todoapp/internal/cache"
	apperrors "todoapp/internal/errors"
	"todoapp/internal/model"
	"todoapp/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// AuthService handles registration, login and profile lookup.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
	Profile(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   *auth.TokenService
	cache    *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenService, cache *cache.Client) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		cache:    cache,
	}
}

func profileCacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}

// Register creates a new user with a hashed password and returns a bearer
// token for it. Exactly one record is written on success, none on failure.
func (s *authService) Register(ctx context.Context, name, email, password string) (string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", apperrors.ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check user existence: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Login verifies credentials and returns a bearer token. Unknown email and
// wrong password collapse to the same error so responses do not reveal which
// emails are registered.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Profile returns the user record for an authenticated id. Users are never
// updated, so cached profiles need no invalidation.
func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, profileCacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, profileCacheKey(userID), payload, profileCacheTTL)
	}
	return user, nil
}
