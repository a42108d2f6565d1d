package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "rbacauth/internal/errors"
	"rbacauth/internal/model"
	"rbacauth/internal/repository"
)

// Resolver looks users and roles up by id or by unique name.
type Resolver interface {
	// ResolveUser returns apperrors.ErrUserNotFound when nothing matches.
	ResolveUser(ctx context.Context, ident model.Identifier) (*model.User, error)
	// ResolveRole returns apperrors.ErrRoleNotFound when nothing matches.
	ResolveRole(ctx context.Context, ident model.Identifier) (*model.Role, error)
}

type resolver struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

// NewResolver creates a resolver over the user and role repositories.
func NewResolver(users repository.UserRepository, roles repository.RoleRepository) Resolver {
	return &resolver{users: users, roles: roles}
}

func (r *resolver) ResolveUser(ctx context.Context, ident model.Identifier) (*model.User, error) {
	if ident.IsZero() {
		return nil, apperrors.ErrUserNotFound
	}

	var (
		user *model.User
		err  error
	)
	if id, ok := ident.ID(); ok {
		user, err = r.users.FindByID(ctx, id)
	} else {
		name, _ := ident.Name()
		user, err = r.users.FindByUsername(ctx, name)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user %q: %w", ident.String(), err)
	}
	return user, nil
}

func (r *resolver) ResolveRole(ctx context.Context, ident model.Identifier) (*model.Role, error) {
	if ident.IsZero() {
		return nil, apperrors.ErrRoleNotFound
	}

	var (
		role *model.Role
		err  error
	)
	if id, ok := ident.ID(); ok {
		role, err = r.roles.FindByID(ctx, id)
	} else {
		name, _ := ident.Name()
		role, err = r.roles.FindByName(ctx, name)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("resolve role %q: %w", ident.String(), err)
	}
	return role, nil
}
