package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/friendgraph/friendgraph-api/internal/pkg/logger"
	"github.com/friendgraph/friendgraph-api/internal/pkg/password"
)

// Service handles user registration and lookup
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Register creates a new account. The username is the normalized email.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	email := NormalizeEmail(req.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.now()
	u := &User{
		ID:           uuid.New(),
		Username:     email,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Str("user_id", u.ID.String()).Msg("User registered")
	return u, nil
}

// GetByID returns a user by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername returns a user by username
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// List returns one page of users and the total count
func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Search returns users whose email equals keyword or whose first name contains it
func (s *Service) Search(ctx context.Context, keyword string, limit, offset int) ([]*User, int, error) {
	if keyword == "" {
		return nil, 0, ErrKeywordRequired
	}
	return s.repo.Search(ctx, keyword, limit, offset)
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername returns username in its stored form. Usernames are
// normalized emails, so the same rules apply.
func NormalizeUsername(username string) string {
	return NormalizeEmail(username)
}
