package setting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildingai/cozepkg/internal/domain/setting"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type mapRepo struct {
	entries map[string]*setting.Entry
	err     error
}

func (r *mapRepo) GetByKey(_ context.Context, group, key string) (*setting.Entry, error) {
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.entries[group+"/"+key]
	if !ok {
		return nil, setting.ErrNotFound
	}
	return e, nil
}

func (r *mapRepo) GetByGroup(context.Context, string) ([]*setting.Entry, error) { return nil, nil }

func (r *mapRepo) Upsert(_ context.Context, e *setting.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries[e.Group()+"/"+e.Key()] = e
	return nil
}

func (r *mapRepo) Delete(context.Context, string, string) error { return nil }

func TestStore_Defaults(t *testing.T) {
	s := NewStore(&mapRepo{entries: map[string]*setting.Entry{}}, logger.NewNop())
	ctx := context.Background()

	v, err := s.GetBool(ctx, setting.GroupCozePackage, setting.KeyCozePackageStatus, false)
	require.NoError(t, err)
	assert.False(t, v)

	text, err := s.GetString(ctx, setting.GroupCozePackage, setting.KeyCozePackageExplain, "")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestStore_RoundTrip(t *testing.T) {
	s := NewStore(&mapRepo{entries: map[string]*setting.Entry{}}, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, s.SetBool(ctx, setting.GroupSystem, setting.KeyIsInstalled, true, "installed"))
	v, err := s.GetBool(ctx, setting.GroupSystem, setting.KeyIsInstalled, false)
	require.NoError(t, err)
	assert.True(t, v)

	require.NoError(t, s.SetString(ctx, setting.GroupCozePackage, setting.KeyCozePackageExplain, "**hi**", ""))
	text, err := s.GetString(ctx, setting.GroupCozePackage, setting.KeyCozePackageExplain, "")
	require.NoError(t, err)
	assert.Equal(t, "**hi**", text)
}

func TestStore_Unreachable(t *testing.T) {
	s := NewStore(&mapRepo{err: errors.New("connection refused")}, logger.NewNop())

	v, err := s.GetBool(context.Background(), setting.GroupSystem, setting.KeyIsInstalled, false)
	assert.Error(t, err)
	assert.False(t, v)
	assert.Error(t, s.SetBool(context.Background(), setting.GroupSystem, setting.KeyIsInstalled, true, ""))
}
