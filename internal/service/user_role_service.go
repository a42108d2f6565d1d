package service

import (
	"context"
	"fmt"

	apperrors "rbacauth/internal/errors"
	"rbacauth/internal/model"
	"rbacauth/internal/repository"
)

// UserRoleService manages which users hold which roles.
type UserRoleService interface {
	AssignRole(ctx context.Context, user, role model.Identifier) error
	ListUsersByRole(ctx context.Context, role model.Identifier) ([]model.User, error)
	// UnassignRole succeeds once both references resolve, whether or not an
	// assignment existed.
	UnassignRole(ctx context.Context, user, role model.Identifier) error
}

type userRoleService struct {
	assignments repository.UserRoleRepository
	resolver    Resolver
}

// NewUserRoleService creates a new assignment service.
func NewUserRoleService(assignments repository.UserRoleRepository, resolver Resolver) UserRoleService {
	return &userRoleService{assignments: assignments, resolver: resolver}
}

func (s *userRoleService) AssignRole(ctx context.Context, userRef, roleRef model.Identifier) error {
	user, role, err := s.resolvePair(ctx, userRef, roleRef)
	if err != nil {
		return err
	}

	assignment := &model.UserRole{
		UserID:   user.ID,
		RoleID:   role.ID,
		Username: user.Username,
		RoleName: role.Name,
	}
	if err := s.assignments.Assign(ctx, assignment); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

func (s *userRoleService) ListUsersByRole(ctx context.Context, roleRef model.Identifier) ([]model.User, error) {
	if roleRef.IsZero() {
		return nil, apperrors.ErrRoleIdentifierRequired
	}

	role, err := s.resolver.ResolveRole(ctx, roleRef)
	if err != nil {
		return nil, err
	}

	users, err := s.assignments.ListUsersByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

func (s *userRoleService) UnassignRole(ctx context.Context, userRef, roleRef model.Identifier) error {
	user, role, err := s.resolvePair(ctx, userRef, roleRef)
	if err != nil {
		return err
	}

	if _, err := s.assignments.Unassign(ctx, user.ID, role.ID); err != nil {
		return fmt.Errorf("unassign role: %w", err)
	}
	return nil
}

// resolvePair validates and resolves both references, reporting a missing
// user before a missing role.
func (s *userRoleService) resolvePair(ctx context.Context, userRef, roleRef model.Identifier) (*model.User, *model.Role, error) {
	if userRef.IsZero() || roleRef.IsZero() {
		return nil, nil, apperrors.ErrAssignmentRequired
	}

	user, err := s.resolver.ResolveUser(ctx, userRef)
	if err != nil {
		return nil, nil, err
	}
	role, err := s.resolver.ResolveRole(ctx, roleRef)
	if err != nil {
		return nil, nil, err
	}
	return user, role, nil
}
