package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildingai/cozepkg/internal/domain/user"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, h.Verify("s3cret-pass", hash))
	assert.ErrorIs(t, h.Verify("wrong", hash), user.ErrInvalidCredentials)
	assert.ErrorIs(t, h.Verify("s3cret-pass", "not-a-hash"), user.ErrInvalidCredentials)
}

func TestBcryptPasswordHasher_OutOfRangeCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(100).cost)
}

func TestJWTService_RoundTrip(t *testing.T) {
	clock := biztime.NewFixedClock(time.Now().UTC())
	svc := NewJWTService("secret", time.Hour, "cozepkg").WithClock(clock)

	tok, expiresIn, err := svc.Generate("user-1", "admin", true)
	require.NoError(t, err)
	assert.EqualValues(t, 3600, expiresIn)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsRoot)
	assert.Equal(t, "cozepkg", claims.Issuer)
}

func TestJWTService_Rejects(t *testing.T) {
	clock := biztime.NewFixedClock(time.Now().UTC())
	svc := NewJWTService("secret", time.Minute, "").WithClock(clock)

	tok, _, err := svc.Generate("user-1", "admin", false)
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewJWTService("other", time.Minute, "").WithClock(clock).Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		clock.Advance(2 * time.Minute)
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
