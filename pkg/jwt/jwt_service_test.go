package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/domain"
)

func TestGenerateAndAuthenticate(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, nil)

	token, err := svc.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)

	claims, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, domain.RoleUser, role)
}

func TestAuthenticateRejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, nil)
	other := NewJWTService("other-secret", time.Hour, nil)

	token, err := other.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	expired := NewJWTService("secret", -time.Minute, nil)
	token, err = expired.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestRevokedTokenIsRejected(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService("secret", time.Hour, NewMemoryDenylist())

	token, err := svc.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)
	claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, claims))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestMemoryDenylistForgetsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	list := NewMemoryDenylist()

	require.NoError(t, list.Revoke(ctx, "old", time.Now().Add(-time.Second)))
	revoked, err := list.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, list.Revoke(ctx, "fresh", time.Now().Add(time.Minute)))
	revoked, err = list.IsRevoked(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, revoked)
}
