package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"rbacauth/internal/cache"
	apperrors "rbacauth/internal/errors"
	"rbacauth/internal/model"
	"rbacauth/internal/repository"
)

const (
	rolesCacheKey = "roles:all"
	roleCacheTTL  = 5 * time.Minute
)

// RoleService handles role lifecycle operations.
type RoleService interface {
	CreateRole(ctx context.Context, name string) (*model.Role, error)
	RenameRole(ctx context.Context, ident model.Identifier, newName string) (*model.Role, error)
	DeleteRole(ctx context.Context, roleID string) (uint, error)
	GetRole(ctx context.Context, ident model.Identifier) (*model.Role, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
}

type roleService struct {
	roles    repository.RoleRepository
	resolver Resolver
	cache    *cache.Client
}

// NewRoleService creates a new role service. cache may be nil.
func NewRoleService(roles repository.RoleRepository, resolver Resolver, cache *cache.Client) RoleService {
	return &roleService{
		roles:    roles,
		resolver: resolver,
		cache:    cache,
	}
}

// CreateRole inserts a role with a name no other role has.
func (s *roleService) CreateRole(ctx context.Context, name string) (*model.Role, error) {
	if name == "" {
		return nil, apperrors.ErrRoleNameRequired
	}

	taken, err := s.roles.NameTaken(ctx, name, 0)
	if err != nil {
		return nil, fmt.Errorf("check role name: %w", err)
	}
	if taken {
		return nil, apperrors.ErrRoleExists
	}

	role := &model.Role{Name: name}
	if err := s.roles.Create(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrRoleExists
		}
		return nil, fmt.Errorf("create role: %w", err)
	}

	s.invalidate(ctx)
	return role, nil
}

// RenameRole renames the referenced role and every assignment copy of its name.
func (s *roleService) RenameRole(ctx context.Context, ident model.Identifier, newName string) (*model.Role, error) {
	if ident.IsZero() || newName == "" {
		return nil, apperrors.ErrRoleRenameRequired
	}

	role, err := s.resolver.ResolveRole(ctx, ident)
	if err != nil {
		return nil, err
	}

	taken, err := s.roles.NameTaken(ctx, newName, role.ID)
	if err != nil {
		return nil, fmt.Errorf("check role name: %w", err)
	}
	if taken {
		return nil, apperrors.ErrRoleExists
	}

	if err := s.roles.Rename(ctx, role, newName); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrRoleExists
		}
		return nil, fmt.Errorf("rename role: %w", err)
	}

	s.invalidate(ctx)
	return role, nil
}

// DeleteRole removes the role with the given numeric id and returns the id.
func (s *roleService) DeleteRole(ctx context.Context, roleID string) (uint, error) {
	id, err := strconv.ParseUint(roleID, 10, 0)
	if err != nil {
		return 0, apperrors.ErrInvalidRoleID
	}

	affected, err := s.roles.Delete(ctx, uint(id))
	if err != nil {
		return 0, fmt.Errorf("delete role: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.ErrRoleNotFound
	}

	s.invalidate(ctx)
	return uint(id), nil
}

// GetRole resolves a single role.
func (s *roleService) GetRole(ctx context.Context, ident model.Identifier) (*model.Role, error) {
	return s.resolver.ResolveRole(ctx, ident)
}

// ListRoles returns every role, served from cache when possible.
func (s *roleService) ListRoles(ctx context.Context) ([]model.Role, error) {
	var cached []model.Role
	if s.cache.GetJSON(ctx, rolesCacheKey, &cached) {
		return cached, nil
	}

	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	s.cache.SetJSON(ctx, rolesCacheKey, roles, roleCacheTTL)
	return roles, nil
}

func (s *roleService) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, rolesCacheKey)
}
