package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildingai/cozepkg/internal/domain/user"
	apperrors "github.com/buildingai/cozepkg/internal/shared/errors"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Verify(p, h string) error {
	if h != "h:"+p {
		return errors.New("mismatch")
	}
	return nil
}

type memUserRepo struct {
	users map[string]*user.User
	err   error
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	r.users[u.Username()] = u
	return nil
}
func (r *memUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range r.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}
func (r *memUserRepo) GetByUsername(_ context.Context, name string) (*user.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users[name], nil
}
func (r *memUserRepo) First(context.Context) (*user.User, error) { return nil, nil }

type stubTokens struct{ calls int }

func (s *stubTokens) Generate(userID, _ string, _ bool) (string, int64, error) {
	s.calls++
	return "token-" + userID, 7200, nil
}

func newLoginFixture(t *testing.T) (*LoginWithPasswordUseCase, *memUserRepo, *stubTokens) {
	t.Helper()
	now := time.Now().UTC()
	repo := &memUserRepo{users: map[string]*user.User{
		"admin":    user.ReconstructUser("u-1", "admin", "Admin", "", "h:correct-horse", true, user.StatusActive, now, now),
		"disabled": user.ReconstructUser("u-2", "disabled", "Off", "", "h:correct-horse", false, user.StatusDisabled, now, now),
	}}
	tokens := &stubTokens{}
	return NewLoginWithPasswordUseCase(repo, plainHasher{}, tokens, logger.NewNop()), repo, tokens
}

func TestLoginWithPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		uc, _, tokens := newLoginFixture(t)
		res, err := uc.Execute(ctx, LoginWithPasswordCommand{Username: " admin ", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, "u-1", res.UserID)
		assert.Equal(t, "token-u-1", res.AccessToken)
		assert.EqualValues(t, 7200, res.ExpiresIn)
		assert.Equal(t, 1, tokens.calls)
	})

	t.Run("missing fields", func(t *testing.T) {
		uc, _, _ := newLoginFixture(t)
		_, err := uc.Execute(ctx, LoginWithPasswordCommand{Username: "admin"})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("unknown user and wrong password read the same", func(t *testing.T) {
		uc, _, tokens := newLoginFixture(t)
		_, errUnknown := uc.Execute(ctx, LoginWithPasswordCommand{Username: "ghost", Password: "x"})
		_, errWrong := uc.Execute(ctx, LoginWithPasswordCommand{Username: "admin", Password: "x"})
		require.Error(t, errUnknown)
		require.Error(t, errWrong)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
		assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.GetAppError(errWrong).Type)
		assert.Zero(t, tokens.calls)
	})

	t.Run("disabled user", func(t *testing.T) {
		uc, _, _ := newLoginFixture(t)
		_, err := uc.Execute(ctx, LoginWithPasswordCommand{Username: "disabled", Password: "correct-horse"})
		assert.True(t, apperrors.IsForbiddenError(err))
	})

	t.Run("store failure", func(t *testing.T) {
		uc, repo, _ := newLoginFixture(t)
		repo.err = errors.New("db down")
		_, err := uc.Execute(ctx, LoginWithPasswordCommand{Username: "admin", Password: "correct-horse"})
		require.Error(t, err)
		assert.False(t, apperrors.IsAppError(err))
	})
}
