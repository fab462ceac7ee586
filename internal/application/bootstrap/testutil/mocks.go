// Package testutil provides in-memory stores for testing install and
// upgrade runs.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	apppermission "github.com/buildingai/cozepkg/internal/application/permission"
	"github.com/buildingai/cozepkg/internal/domain/aicatalog"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	"github.com/buildingai/cozepkg/internal/domain/menu"
	"github.com/buildingai/cozepkg/internal/domain/page"
	"github.com/buildingai/cozepkg/internal/domain/payconfig"
	"github.com/buildingai/cozepkg/internal/domain/permission"
	"github.com/buildingai/cozepkg/internal/domain/user"
)

// MenuRepository is an in-memory menu.Repository.
type MenuRepository struct {
	mu     sync.Mutex
	nextID uint
	menus  map[uint]*menu.Menu
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{menus: make(map[uint]*menu.Menu)}
}

func (r *MenuRepository) Create(_ context.Context, m *menu.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.SetID(r.nextID)
	r.menus[m.ID()] = m
	return nil
}

func (r *MenuRepository) Update(_ context.Context, m *menu.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.menus[m.ID()]; !ok {
		return menu.ErrMenuNotFound
	}
	r.menus[m.ID()] = m
	return nil
}

func (r *MenuRepository) GetByID(_ context.Context, id uint) (*menu.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.menus[id]
	if !ok {
		return nil, menu.ErrMenuNotFound
	}
	return m, nil
}

func (r *MenuRepository) GetByCode(_ context.Context, code string) (*menu.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.menus {
		if m.Code() != nil && *m.Code() == code {
			return m, nil
		}
	}
	return nil, nil
}

func (r *MenuRepository) ListAll(context.Context) ([]*menu.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*menu.Menu, 0, len(r.menus))
	for _, m := range r.menus {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *MenuRepository) DeleteAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.menus)
	r.menus = make(map[uint]*menu.Menu)
	return int64(n), nil
}

func (r *MenuRepository) DeleteByCodes(_ context.Context, codes []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, m := range r.menus {
		for _, c := range codes {
			if m.Code() != nil && *m.Code() == c {
				delete(r.menus, id)
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *MenuRepository) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.menus)), nil
}

// Parents maps every coded menu to the code of its parent, "" for roots.
func (r *MenuRepository) Parents() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string)
	for _, m := range r.menus {
		if m.Code() == nil {
			continue
		}
		parent := ""
		if m.ParentID() != nil {
			if p, ok := r.menus[*m.ParentID()]; ok && p.Code() != nil {
				parent = *p.Code()
			}
		}
		out[*m.Code()] = parent
	}
	return out
}

// Seed inserts a root menu with code.
func (r *MenuRepository) Seed(code string) *menu.Menu {
	m, _ := menu.NewMenu(menu.Fields{Code: code, Name: code}, nil)
	_ = r.Create(context.Background(), m)
	return m
}

// UserRepository is an in-memory user.Repository.
type UserRepository struct {
	mu     sync.Mutex
	users  []*user.User
	GetErr error
}

func NewUserRepository() *UserRepository { return &UserRepository{} }

func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.SetID(fmt.Sprintf("user-%d", len(r.users)+1))
	r.users = append(r.users, u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	for _, u := range r.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) First(context.Context) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.users) == 0 {
		return nil, nil
	}
	return r.users[0], nil
}

func (r *UserRepository) All() []*user.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*user.User(nil), r.users...)
}

// PlainHasher prefixes passwords instead of hashing them.
type PlainHasher struct{}

func (PlainHasher) Hash(p string) (string, error) { return "plain:" + p, nil }

func (PlainHasher) Verify(p, h string) error {
	if h != "plain:"+p {
		return user.ErrInvalidCredentials
	}
	return nil
}

// Permissions records permission calls and resolves the codes it has seen.
type Permissions struct {
	mu       sync.Mutex
	codes    map[string]permission.Type
	Syncs    int
	Rebuilds int
	Admins   []string
	SyncErr  error
}

func NewPermissions(codes ...string) *Permissions {
	p := &Permissions{codes: make(map[string]permission.Type)}
	for _, c := range codes {
		p.codes[c] = permission.TypeSystem
	}
	return p
}

func (p *Permissions) Sync(_ context.Context, defs []permission.Definition) (apppermission.SyncResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Syncs++
	if p.SyncErr != nil {
		return apppermission.SyncResult{}, p.SyncErr
	}
	var res apppermission.SyncResult
	for _, d := range defs {
		if _, ok := p.codes[d.Code]; !ok {
			p.codes[d.Code] = d.Type
			res.Added++
		}
	}
	return res, nil
}

func (p *Permissions) Ensure(_ context.Context, def permission.Definition) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.codes[def.Code]; ok {
		return false, nil
	}
	p.codes[def.Code] = def.Type
	return true, nil
}

func (p *Permissions) Remove(_ context.Context, codes []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range codes {
		delete(p.codes, c)
	}
	return nil
}

func (p *Permissions) RebuildPolicies(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Rebuilds++
	return nil
}

func (p *Permissions) GrantAdmin(userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Admins = append(p.Admins, userID)
	return nil
}

func (p *Permissions) Resolver(context.Context) (permission.CodeSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	set := make(permission.CodeSet, len(p.codes))
	for c := range p.codes {
		set[c] = true
	}
	return set, nil
}

func (p *Permissions) Has(code string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.codes[code]
	return ok
}

// Schema records which schema operations ran. Tables tracks tables created
// and dropped by name.
type Schema struct {
	mu          sync.Mutex
	Calls       []string
	SyncErr     error
	Tables      map[string]bool
	FullTextErr error
}

func NewSchema() *Schema { return &Schema{Tables: make(map[string]bool)} }

func (s *Schema) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, call)
}

func (s *Schema) Prerequisites(context.Context) error {
	s.record("prerequisites")
	return nil
}

func (s *Schema) SyncAll(context.Context) error {
	s.record("sync")
	return s.SyncErr
}

func (s *Schema) FullText(context.Context) error {
	s.record("fulltext")
	return s.FullTextErr
}

func (s *Schema) SyncTable(_ context.Context, name string) error {
	s.record("sync:" + name)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tables[name] = true
	return nil
}

func (s *Schema) DropTable(_ context.Context, name string) error {
	s.record("drop:" + name)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Tables, name)
	return nil
}

// FlagStore keeps boolean dictionary flags in memory.
type FlagStore struct {
	mu      sync.Mutex
	flags   map[string]bool
	ReadErr error
}

func NewFlagStore() *FlagStore { return &FlagStore{flags: make(map[string]bool)} }

func (f *FlagStore) GetBool(_ context.Context, group, key string, def bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return def, f.ReadErr
	}
	v, ok := f.flags[group+"/"+key]
	if !ok {
		return def, nil
	}
	return v, nil
}

func (f *FlagStore) SetBool(_ context.Context, group, key string, v bool, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flags[group+"/"+key] = v
	return nil
}

// PayConfigRepository is an in-memory payconfig.Repository.
type PayConfigRepository struct {
	mu      sync.Mutex
	configs []*payconfig.PayConfig
}

func (r *PayConfigRepository) Create(_ context.Context, p *payconfig.PayConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.SetID(fmt.Sprintf("pay-%d", len(r.configs)+1))
	r.configs = append(r.configs, p)
	return nil
}

func (r *PayConfigRepository) ListEnabled(context.Context) ([]*payconfig.PayConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*payconfig.PayConfig
	for _, p := range r.configs {
		if p.IsEnable() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PayConfigRepository) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.configs)), nil
}

// PageRepository is an in-memory page.Repository.
type PageRepository struct {
	mu    sync.Mutex
	Pages map[string]*page.Page
}

func NewPageRepository() *PageRepository {
	return &PageRepository{Pages: make(map[string]*page.Page)}
}

func (r *PageRepository) Create(_ context.Context, p *page.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Pages[p.Name()]; ok {
		return page.ErrDuplicatePage
	}
	p.SetID(fmt.Sprintf("page-%d", len(r.Pages)+1))
	r.Pages[p.Name()] = p
	return nil
}

func (r *PageRepository) GetByName(_ context.Context, name string) (*page.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Pages[name]
	if !ok {
		return nil, page.ErrPageNotFound
	}
	return p, nil
}

// CatalogRepository is an in-memory aicatalog.Repository keyed like the
// database unique indexes.
type CatalogRepository struct {
	mu        sync.Mutex
	Providers map[string]*aicatalog.Provider
	Models    map[string]*aicatalog.Model
	Templates map[string]*aicatalog.KeyTemplate
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		Providers: make(map[string]*aicatalog.Provider),
		Models:    make(map[string]*aicatalog.Model),
		Templates: make(map[string]*aicatalog.KeyTemplate),
	}
}

func (r *CatalogRepository) UpsertProvider(_ context.Context, p *aicatalog.Provider) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.Providers[p.Provider]; ok {
		p.ID = existing.ID
		r.Providers[p.Provider] = p
		return false, nil
	}
	p.ID = "provider-" + p.Provider
	r.Providers[p.Provider] = p
	return true, nil
}

func (r *CatalogRepository) UpsertModel(_ context.Context, m *aicatalog.Model) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.Join([]string{m.ProviderID, m.Model}, "/")
	_, existed := r.Models[key]
	r.Models[key] = m
	return !existed, nil
}

func (r *CatalogRepository) UpsertKeyTemplate(_ context.Context, t *aicatalog.KeyTemplate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, existed := r.Templates[t.Name]
	r.Templates[t.Name] = t
	return !existed, nil
}

// PackageRepository is an in-memory cozepackage.PackageConfigRepository.
type PackageRepository struct {
	mu       sync.Mutex
	packages []*cozepackage.PackageConfig
}

func (r *PackageRepository) Create(_ context.Context, p *cozepackage.PackageConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.SetID(fmt.Sprintf("pkg-%d", len(r.packages)+1))
	r.packages = append(r.packages, p)
	return nil
}

func (r *PackageRepository) Update(_ context.Context, p *cozepackage.PackageConfig) error {
	return nil
}

func (r *PackageRepository) GetByID(_ context.Context, id string) (*cozepackage.PackageConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.packages {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, cozepackage.ErrPackageNotFound
}

func (r *PackageRepository) ListAll(context.Context) ([]*cozepackage.PackageConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*cozepackage.PackageConfig(nil), r.packages...), nil
}

func (r *PackageRepository) DeleteExcept(_ context.Context, keep []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.packages[:0]
	var n int64
	for _, p := range r.packages {
		found := false
		for _, id := range keep {
			if id == p.ID() {
				found = true
			}
		}
		if found {
			kept = append(kept, p)
		} else {
			n++
		}
	}
	r.packages = kept
	return n, nil
}

func (r *PackageRepository) ParkName(context.Context, string) error {
	return nil
}

func (r *PackageRepository) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.packages)), nil
}

// OrderRepository stores orders for seeding tests. Query methods beyond
// Create and Count are not supported.
type OrderRepository struct {
	mu     sync.Mutex
	Orders []*cozepackage.Order
}

func (r *OrderRepository) Create(_ context.Context, o *cozepackage.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.SetID(fmt.Sprintf("order-%d", len(r.Orders)+1))
	r.Orders = append(r.Orders, o)
	return nil
}

func (r *OrderRepository) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.Orders)), nil
}
