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

// UserUpdate carries the optional fields of an account update. Empty means
// unchanged.
type UserUpdate struct {
	NewPassword string
	NewUsername string
}

// UserService exposes account maintenance operations.
type UserService interface {
	UpdateUser(ctx context.Context, username string, update UserUpdate) (*Session, error)
	DeleteUser(ctx context.Context, username, token string) error
}

type userService struct {
	users    repository.UserRepository
	resolver Resolver
	hasher   auth.PasswordHasher
	tokens   *auth.JWTService
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository, resolver Resolver, hasher auth.PasswordHasher, tokens *auth.JWTService) UserService {
	return &userService{
		users:    users,
		resolver: resolver,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// UpdateUser changes the password and/or username of username and returns a
// session bound to the resulting username.
func (s *userService) UpdateUser(ctx context.Context, username string, update UserUpdate) (*Session, error) {
	if update.NewPassword == "" && update.NewUsername == "" {
		return nil, apperrors.ErrUserUpdateRequired
	}

	user, err := s.resolver.ResolveUser(ctx, model.ByName(username))
	if err != nil {
		return nil, err
	}

	if update.NewUsername != "" && update.NewUsername != user.Username {
		other, err := s.resolver.ResolveUser(ctx, model.ByName(update.NewUsername))
		switch {
		case err == nil && other.ID != user.ID:
			return nil, apperrors.ErrUsernameExists
		case err != nil && !errors.Is(err, apperrors.ErrUserNotFound):
			return nil, fmt.Errorf("check username: %w", err)
		}
		user.Username = update.NewUsername
	}

	if update.NewPassword != "" {
		digest, err := s.hasher.Hash(update.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = digest
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{Username: user.Username, Token: token}, nil
}

// DeleteUser removes username and its role assignments, then revokes the
// caller's token when revocation is enabled.
func (s *userService) DeleteUser(ctx context.Context, username, token string) error {
	user, err := s.resolver.ResolveUser(ctx, model.ByName(username))
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.tokens.Revoke(ctx, token)
	return nil
}
