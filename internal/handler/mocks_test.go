package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rbacauth/internal/auth"
	"rbacauth/internal/model"
	"rbacauth/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, password string) (*service.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) {
	m.Called(ctx, token)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) UpdateUser(ctx context.Context, username string, update service.UserUpdate) (*service.Session, error) {
	args := m.Called(ctx, username, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, username, token string) error {
	args := m.Called(ctx, username, token)
	return args.Error(0)
}

// MockRoleService is a mock implementation of service.RoleService.
type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) CreateRole(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleService) RenameRole(ctx context.Context, ident model.Identifier, newName string) (*model.Role, error) {
	args := m.Called(ctx, ident, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleService) DeleteRole(ctx context.Context, roleID string) (uint, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockRoleService) GetRole(ctx context.Context, ident model.Identifier) (*model.Role, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleService) ListRoles(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

// MockUserRoleService is a mock implementation of service.UserRoleService.
type MockUserRoleService struct {
	mock.Mock
}

func (m *MockUserRoleService) AssignRole(ctx context.Context, userRef, roleRef model.Identifier) error {
	args := m.Called(ctx, userRef, roleRef)
	return args.Error(0)
}

func (m *MockUserRoleService) ListUsersByRole(ctx context.Context, roleRef model.Identifier) ([]model.User, error) {
	args := m.Called(ctx, roleRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRoleService) UnassignRole(ctx context.Context, userRef, roleRef model.Identifier) error {
	args := m.Called(ctx, userRef, roleRef)
	return args.Error(0)
}
