package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rbacauth/internal/auth"
	apperrors "rbacauth/internal/errors"
	"rbacauth/internal/model"
)

func newTestAuthService(users *MockUserRepository) (AuthService, *auth.JWTService, auth.PasswordHasher) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewJWTService("test-secret")
	resolver := NewResolver(users, new(MockRoleRepository))
	return NewAuthService(users, resolver, hasher, tokens), tokens, hasher
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful signup",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Username == "alice" && u.PasswordHash != "" && u.PasswordHash != "pw1"
				})).Return(nil)
			},
		},
		{
			name:     "username already in use",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)
			},
			expectedError: apperrors.ErrUsernameInUse,
		},
		{
			name:     "lost race on unique index",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrUsernameInUse,
		},
		{
			name:          "missing password",
			username:      "alice",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrCredentialsRequired,
		},
		{
			name:          "missing username",
			password:      "pw1",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrCredentialsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)
			svc, tokens, _ := newTestAuthService(users)

			session, err := svc.Signup(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "alice", session.Username)
				claims, err := tokens.Verify(context.Background(), session.Token)
				require.NoError(t, err)
				assert.Equal(t, "alice", claims.Username)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signup_StoreFailure(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("too many connections"))
	svc, _, _ := newTestAuthService(users)

	_, err := svc.Signup(context.Background(), "alice", "pw1")
	require.Error(t, err)
	var domainErr *apperrors.Error
	assert.False(t, errors.As(err, &domainErr), "store failures are not domain errors")
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	digest, err := hasher.Hash("pw1")
	require.NoError(t, err)
	alice := &model.User{ID: 1, Username: "alice", PasswordHash: digest}

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
			},
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "numeric username is looked up by name",
			username: "42",
			password: "pw1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "42").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:          "missing fields",
			username:      "alice",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrCredentialsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)
			svc, tokens, _ := newTestAuthService(users)

			session, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
			} else {
				require.NoError(t, err)
				claims, err := svc.Authenticate(context.Background(), session.Token)
				require.NoError(t, err)
				assert.Equal(t, "alice", claims.Username)
				_, err = tokens.Verify(context.Background(), session.Token)
				assert.NoError(t, err)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_AuthenticateRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestAuthService(new(MockUserRepository))

	_, err := svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_LogoutIsStateless(t *testing.T) {
	svc, tokens, _ := newTestAuthService(new(MockUserRepository))
	token, err := tokens.Issue("alice")
	require.NoError(t, err)

	svc.Logout(context.Background(), token)
	svc.Logout(context.Background(), "")

	_, err = svc.Authenticate(context.Background(), token)
	assert.NoError(t, err, "without a revocation store the token stays valid until expiry")
}
