package user

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }

func (plainHasher) Verify(p, h string) error {
	if h != "h:"+p {
		return errors.New("mismatch")
	}
	return nil
}

var testTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewRootUser(t *testing.T) {
	u, err := NewRootUser(" admin ", "BuildingAI&123456", plainHasher{})
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username())
	assert.True(t, u.IsRoot())
	assert.Equal(t, StatusActive, u.Status())

	assert.NoError(t, u.VerifyPassword("BuildingAI&123456", plainHasher{}))
	assert.ErrorIs(t, u.VerifyPassword("wrong", plainHasher{}), ErrInvalidCredentials)

	_, err = NewRootUser("admin", "short", plainHasher{})
	assert.ErrorIs(t, err, ErrWeakPassword)
	_, err = NewUser("  ", "", "")
	assert.Error(t, err)
}

func TestVerifyPassword_Disabled(t *testing.T) {
	u := ReconstructUser("id", "bob", "bob", "", "h:password1", false, StatusDisabled, testTime, testTime)
	assert.ErrorIs(t, u.VerifyPassword("password1", plainHasher{}), ErrUserDisabled)
}
