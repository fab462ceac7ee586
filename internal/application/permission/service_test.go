package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildingai/cozepkg/internal/domain/permission"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type memRepo struct {
	seq   uint
	perms []*permission.Permission
}

func (r *memRepo) Create(_ context.Context, p *permission.Permission) error {
	r.seq++
	if err := p.SetID(r.seq); err != nil {
		return err
	}
	r.perms = append(r.perms, p)
	return nil
}

func (r *memRepo) Update(context.Context, *permission.Permission) error { return nil }

func (r *memRepo) GetByCode(_ context.Context, code string) (*permission.Permission, error) {
	for _, p := range r.perms {
		if p.Code() == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memRepo) ListAll(context.Context) ([]*permission.Permission, error) {
	return append([]*permission.Permission(nil), r.perms...), nil
}

func (r *memRepo) ExistingCodes(_ context.Context, codes []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, c := range codes {
		if p, _ := r.GetByCode(context.Background(), c); p != nil {
			out[c] = true
		}
	}
	return out, nil
}

func (r *memRepo) DeleteByCodes(_ context.Context, codes []string) error {
	drop := map[string]bool{}
	for _, c := range codes {
		drop[c] = true
	}
	kept := r.perms[:0]
	for _, p := range r.perms {
		if !drop[p.Code()] {
			kept = append(kept, p)
		}
	}
	r.perms = kept
	return nil
}

type fakeEnforcer struct {
	policies map[string][]string
	roles    map[string]string
}

func (e *fakeEnforcer) Enforce(sub, res, act string) (bool, error) {
	for _, code := range e.policies[e.roles[sub]] {
		if code == res+":"+act {
			return true, nil
		}
	}
	return false, nil
}

func (e *fakeEnforcer) AddRoleForUser(user, role string) error {
	e.roles[user] = role
	return nil
}

func (e *fakeEnforcer) ReplaceRolePolicies(role string, codes []string) error {
	e.policies[role] = codes
	return nil
}

func (e *fakeEnforcer) LoadPolicy() error { return nil }

func newTestService() (*Service, *memRepo, *fakeEnforcer) {
	repo := &memRepo{}
	enf := &fakeEnforcer{policies: map[string][]string{}, roles: map[string]string{}}
	return NewService(repo, enf, logger.NewNop()), repo, enf
}

func TestSync_DeprecatesAndRestores(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Sync(ctx, []permission.Definition{
		{Code: "menu:tree", Type: permission.TypeSystem},
		{Code: "user:list", Type: permission.TypeSystem},
		{Code: "user:list", Type: permission.TypeSystem},
	})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Added: 2}, first)

	_, err = svc.Ensure(ctx, permission.Definition{Code: CodePackageGetConfig, Type: permission.TypePlugin})
	require.NoError(t, err)

	second, err := svc.Sync(ctx, []permission.Definition{{Code: "menu:tree", Type: permission.TypeSystem}})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Deprecated: 1}, second)

	userList, _ := repo.GetByCode(ctx, "user:list")
	assert.True(t, userList.IsDeprecated())
	plugin, _ := repo.GetByCode(ctx, CodePackageGetConfig)
	assert.False(t, plugin.IsDeprecated())

	third, err := svc.Sync(ctx, []permission.Definition{
		{Code: "menu:tree", Type: permission.TypeSystem},
		{Code: "user:list", Type: permission.TypeSystem},
	})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Restored: 1}, third)
	assert.False(t, userList.IsDeprecated())
	assert.Len(t, repo.perms, 3)
}

func TestEnsure_IsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	def := Definitions(CodeOrderList)[0]

	created, err := svc.Ensure(ctx, def)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Ensure(ctx, def)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.perms, 1)
	assert.Equal(t, permission.TypePlugin, repo.perms[0].Type())

	require.NoError(t, svc.Remove(ctx, []string{CodeOrderList}))
	assert.Empty(t, repo.perms)
}

func TestRebuildPolicies_SkipsDeprecated(t *testing.T) {
	svc, repo, enf := newTestService()
	ctx := context.Background()
	_, err := svc.Sync(ctx, Catalog())
	require.NoError(t, err)
	deprecated, _ := repo.GetByCode(ctx, CodeMenuTree)
	deprecated.Deprecate()

	require.NoError(t, svc.RebuildPolicies(ctx))
	require.NoError(t, svc.GrantAdmin("user-1"))

	assert.Len(t, enf.policies["admin"], len(Catalog())-1)
	assert.NotContains(t, enf.policies["admin"], CodeMenuTree)

	ok, err := svc.CheckPermission("user-1", CodeOrderRefund)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.CheckPermission("user-2", CodeOrderRefund)
	require.NoError(t, err)
	assert.False(t, ok)

	set, err := svc.Resolver(ctx)
	require.NoError(t, err)
	assert.True(t, set.Exists(CodePackageSetConfig))
	assert.False(t, set.Exists("missing:code"))
}
