package service

import (
	"alcyxob/swimcoach/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	svc, err := NewAuthService(memory.NewUserRepository(), testSecret, time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(memory.NewUserRepository(), "", time.Hour)
	assert.Error(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	user, err := svc.Register(ctx, "swimmer@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Register(ctx, "Swimmer@Example.com", "another-pass")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	token, loggedIn, err := svc.Login(ctx, "swimmer@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, TokenIssuer, claims.Issuer)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "swimmer@example.com", got.Email)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)
	_, err := svc.Register(ctx, "swimmer@example.com", "correct-horse")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "swimmer@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = svc.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
