package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/friendgraph/friendgraph-api/internal/domain/user"
	"github.com/friendgraph/friendgraph-api/internal/pkg/jwt"
	"github.com/friendgraph/friendgraph-api/internal/pkg/logger"
	"github.com/friendgraph/friendgraph-api/internal/pkg/password"
)

// UserLookup is the part of the user store auth depends on
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Service handles authentication business logic
type Service struct {
	users      UserLookup
	jwtService *jwt.Service
	refresh    RefreshStore
}

// NewService creates auth service
func NewService(users UserLookup, jwtService *jwt.Service, refresh RefreshStore) *Service {
	return &Service{users: users, jwtService: jwtService, refresh: refresh}
}

// Authenticate checks credentials. The active flag is checked before the password.
func (s *Service) Authenticate(ctx context.Context, email, pass string) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}

	if !u.CanLogin() {
		return nil, ErrAccountDisabled
	}

	if !password.Verify(pass, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// Login authenticates the user and issues a token pair
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenPair, error) {
	u, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Str("user_id", u.ID.String()).Msg("User logged in")
	return pair, nil
}

// Refresh exchanges a live refresh token for a new access token
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AccessTokenResponse, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	_, ok, err := s.refresh.Lookup(ctx, jwt.HashRefreshToken(refreshToken))
	if err != nil {
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}
	if !ok {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !u.CanLogin() {
		return nil, ErrInvalidRefreshToken
	}

	access, err := s.jwtService.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}
	return &AccessTokenResponse{AccessToken: access}, nil
}

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.refresh.Delete(ctx, jwt.HashRefreshToken(refreshToken))
}

// Me returns the caller's account
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) issueTokens(ctx context.Context, u *user.User) (*TokenPair, error) {
	access, err := s.jwtService.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	refresh, _, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	if err := s.refresh.Save(ctx, jwt.HashRefreshToken(refresh), u.ID, s.jwtService.GetRefreshTTL()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{RefreshToken: refresh, AccessToken: access}, nil
}
