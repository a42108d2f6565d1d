package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "rbacauth/internal/errors"
	"rbacauth/internal/model"
)

type userRoleMocks struct {
	users       *MockUserRepository
	roles       *MockRoleRepository
	assignments *MockUserRoleRepository
}

func newTestUserRoleService() (UserRoleService, userRoleMocks) {
	m := userRoleMocks{
		users:       new(MockUserRepository),
		roles:       new(MockRoleRepository),
		assignments: new(MockUserRoleRepository),
	}
	return NewUserRoleService(m.assignments, NewResolver(m.users, m.roles)), m
}

func TestUserRoleService_AssignRole(t *testing.T) {
	t.Run("snapshots current names", func(t *testing.T) {
		svc, m := newTestUserRoleService()
		m.users.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, Username: "alice"}, nil)
		m.roles.On("FindByName", mock.Anything, "Editor").Return(&model.Role{ID: 3, Name: "Editor"}, nil)
		m.assignments.On("Assign", mock.Anything, &model.UserRole{
			UserID: 7, RoleID: 3, Username: "alice", RoleName: "Editor",
		}).Return(nil)

		require.NoError(t, svc.AssignRole(context.Background(), model.ByID(7), model.ByName("Editor")))
		m.assignments.AssertExpectations(t)
	})

	t.Run("user not found", func(t *testing.T) {
		svc, m := newTestUserRoleService()
		m.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		err := svc.AssignRole(context.Background(), model.ByName("ghost"), model.ByName("Editor"))
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Equal(t, "User not found", err.Error())
		m.assignments.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything)
	})

	t.Run("role not found", func(t *testing.T) {
		svc, m := newTestUserRoleService()
		m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 7, Username: "alice"}, nil)
		m.roles.On("FindByID", mock.Anything, uint(999)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.AssignRole(context.Background(), model.ByName("alice"), model.ByID(999))
		assert.ErrorIs(t, err, apperrors.ErrRoleNotFound)
	})

	t.Run("missing references", func(t *testing.T) {
		svc, _ := newTestUserRoleService()

		assert.ErrorIs(t, svc.AssignRole(context.Background(), model.Identifier{}, model.ByName("Editor")), apperrors.ErrAssignmentRequired)
		assert.ErrorIs(t, svc.AssignRole(context.Background(), model.ByName("alice"), model.Identifier{}), apperrors.ErrAssignmentRequired)
	})
}

func TestUserRoleService_UnassignRole_Idempotent(t *testing.T) {
	svc, m := newTestUserRoleService()
	m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 7, Username: "alice"}, nil)
	m.roles.On("FindByName", mock.Anything, "Editor").Return(&model.Role{ID: 3, Name: "Editor"}, nil)
	m.assignments.On("Unassign", mock.Anything, uint(7), uint(3)).Return(int64(1), nil).Once()
	m.assignments.On("Unassign", mock.Anything, uint(7), uint(3)).Return(int64(0), nil).Once()

	assert.NoError(t, svc.UnassignRole(context.Background(), model.ByName("alice"), model.ByName("Editor")))
	assert.NoError(t, svc.UnassignRole(context.Background(), model.ByName("alice"), model.ByName("Editor")))
	m.assignments.AssertExpectations(t)
}

func TestUserRoleService_ListUsersByRole(t *testing.T) {
	t.Run("lists assigned users", func(t *testing.T) {
		svc, m := newTestUserRoleService()
		editor := &model.Role{ID: 3, Name: "Editor"}
		m.roles.On("FindByID", mock.Anything, uint(3)).Return(editor, nil)
		m.assignments.On("ListUsersByRole", mock.Anything, editor).Return([]model.User{{ID: 7, Username: "alice"}}, nil)

		users, err := svc.ListUsersByRole(context.Background(), model.ByID(3))
		require.NoError(t, err)
		assert.Equal(t, []model.User{{ID: 7, Username: "alice"}}, users)
	})

	t.Run("missing reference", func(t *testing.T) {
		svc, _ := newTestUserRoleService()

		_, err := svc.ListUsersByRole(context.Background(), model.Identifier{})
		assert.ErrorIs(t, err, apperrors.ErrRoleIdentifierRequired)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, m := newTestUserRoleService()
		m.roles.On("FindByName", mock.Anything, "Ghosts").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.ListUsersByRole(context.Background(), model.ByName("Ghosts"))
		assert.ErrorIs(t, err, apperrors.ErrRoleNotFound)
	})
}
