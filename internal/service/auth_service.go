package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"rbacauth/internal/auth"
	apperrors "rbacauth/internal/errors"
	"rbacauth/internal/model"
	"rbacauth/internal/repository"
)

// Session is the outcome of a successful credential operation.
type Session struct {
	Username string
	Token    string
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, username, password string) (*Session, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	// Logout revokes token when revocation is enabled. It never fails.
	Logout(ctx context.Context, token string)
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

type authService struct {
	users    repository.UserRepository
	resolver Resolver
	hasher   auth.PasswordHasher
	tokens   *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, resolver Resolver, hasher auth.PasswordHasher, tokens *auth.JWTService) AuthService {
	return &authService{
		users:    users,
		resolver: resolver,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Signup registers a user with a hashed password and opens a session.
func (s *authService) Signup(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, apperrors.ErrCredentialsRequired
	}

	// Check if username is taken
	_, err := s.resolver.ResolveUser(ctx, model.ByName(username))
	if err == nil {
		return nil, apperrors.ErrUsernameInUse
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Username: username, PasswordHash: digest}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameInUse
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{Username: user.Username, Token: token}, nil
}

// Login verifies credentials and opens a session. Unknown users and wrong
// passwords yield the same error.
func (s *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, apperrors.ErrCredentialsRequired
	}

	user, err := s.resolver.ResolveUser(ctx, model.ByName(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{Username: user.Username, Token: token}, nil
}

func (s *authService) Logout(ctx context.Context, token string) {
	_ = s.tokens.Revoke(ctx, token)
}

// Authenticate verifies a session token. The user is not looked up, so a
// token outlives its user until it expires.
func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	return s.tokens.Verify(ctx, token)
}
