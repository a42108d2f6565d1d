package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "rbacauth/internal/errors"
)

// TokenExpiry is the duration for which session tokens are valid.
const TokenExpiry = time.Hour

// Claims represents JWT claims.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 session tokens.
type JWTService struct {
	secret  []byte
	now     func() time.Time
	revoked RevocationStore
}

// Option configures a JWTService.
type Option func(*JWTService)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) { s.now = now }
}

// WithRevocation makes Verify reject token ids recorded in store.
func WithRevocation(store RevocationStore) Option {
	return func(s *JWTService) { s.revoked = store }
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string, opts ...Option) *JWTService {
	s := &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for username that expires TokenExpiry from now.
func (s *JWTService) Issue(username string) (string, error) {
	now := s.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature, structure and expiry of tokenString and returns
// its claims. Every failure wraps apperrors.ErrInvalidToken.
func (s *JWTService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err == nil && revoked {
			return nil, fmt.Errorf("%w: token revoked", apperrors.ErrInvalidToken)
		}
	}
	return claims, nil
}

// Revoke records tokenString's id until it would have expired. It is a no-op
// without a revocation store or when the token is already invalid.
func (s *JWTService) Revoke(ctx context.Context, tokenString string) error {
	if s.revoked == nil || tokenString == "" {
		return nil
	}
	claims, err := s.parse(tokenString)
	if err != nil || claims.ID == "" {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.ID, ttl)
}

func (s *JWTService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
