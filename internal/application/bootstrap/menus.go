package bootstrap

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/buildingai/cozepkg/internal/domain/menu"
	"github.com/buildingai/cozepkg/internal/domain/permission"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// PermissionResolverSource yields the set of active permission codes that
// menu entries may reference.
type PermissionResolverSource interface {
	Resolver(ctx context.Context) (permission.CodeSet, error)
}

// MenuMerger writes menu definition trees into the menu store.
type MenuMerger struct {
	repo     menu.Repository
	perms    PermissionResolverSource
	validate *validator.Validate
	logger   logger.Interface
}

func NewMenuMerger(repo menu.Repository, perms PermissionResolverSource, log logger.Interface) *MenuMerger {
	return &MenuMerger{
		repo:     repo,
		perms:    perms,
		validate: validator.New(),
		logger:   log,
	}
}

// Parse decodes and validates a menu definition.
func (m *MenuMerger) Parse(data []byte) ([]menu.Node, error) {
	nodes, err := menu.ParseDefinition(data)
	if err != nil {
		return nil, err
	}
	for i := range nodes {
		if err := m.validate.Struct(&nodes[i]); err != nil {
			return nil, fmt.Errorf("invalid menu definition at entry %d: %w", i, err)
		}
	}
	return nodes, nil
}

// ReplaceAll wipes the menu table and rebuilds it from nodes.
func (m *MenuMerger) ReplaceAll(ctx context.Context, nodes []menu.Node) (menu.Plan, error) {
	resolver, err := m.resolver(ctx)
	if err != nil {
		return menu.Plan{}, err
	}

	deleted, err := m.repo.DeleteAll(ctx)
	if err != nil {
		return menu.Plan{}, fmt.Errorf("failed to clear menus: %w", err)
	}

	plan := menu.PlanMerge(nodes, nil, menu.RootRef(), resolver)
	if _, err := plan.Apply(ctx, m.repo); err != nil {
		return plan, fmt.Errorf("failed to rebuild menus: %w", err)
	}

	m.logUnresolved(plan)
	m.logger.Infow("menus replaced", "deleted", deleted, "inserted", len(plan.Steps))
	return plan, nil
}

// MergeUnder merges nodes beneath the menu coded anchor. Existing menus are
// matched by code and updated in place. An empty anchor merges at the root.
func (m *MenuMerger) MergeUnder(ctx context.Context, anchor string, nodes []menu.Node) (menu.Plan, error) {
	root := menu.RootRef()
	if anchor != "" {
		parent, err := m.repo.GetByCode(ctx, anchor)
		if err != nil {
			return menu.Plan{}, fmt.Errorf("failed to load anchor menu %q: %w", anchor, err)
		}
		if parent == nil {
			return menu.Plan{}, fmt.Errorf("%w: %s", menu.ErrAnchorNotFound, anchor)
		}
		root = menu.ExistingRef(parent.ID())
	}

	existing, err := m.repo.ListAll(ctx)
	if err != nil {
		return menu.Plan{}, fmt.Errorf("failed to list menus: %w", err)
	}
	resolver, err := m.resolver(ctx)
	if err != nil {
		return menu.Plan{}, err
	}

	plan := menu.PlanMerge(nodes, menu.IndexByCode(existing), root, resolver, ancestorsOf(existing, root.ExistingID())...)
	if _, err := plan.Apply(ctx, m.repo); err != nil {
		return plan, fmt.Errorf("failed to merge menus under %q: %w", anchor, err)
	}

	inserts, updates := plan.Counts()
	m.logUnresolved(plan)
	if len(plan.Pinned) > 0 {
		m.logger.Warnw("menus left in place to avoid a parent cycle", "anchor", anchor, "codes", plan.Pinned)
	}
	m.logger.Infow("menus merged", "anchor", anchor, "inserted", inserts, "updated", updates)
	return plan, nil
}

// ancestorsOf walks parent links up from id. The walk stops after len(menus)
// hops so a corrupt tree cannot loop.
func ancestorsOf(menus []*menu.Menu, id uint) []uint {
	if id == 0 {
		return nil
	}
	parents := make(map[uint]*uint, len(menus))
	for _, mn := range menus {
		parents[mn.ID()] = mn.ParentID()
	}
	var out []uint
	for hops := 0; hops < len(menus); hops++ {
		p := parents[id]
		if p == nil {
			break
		}
		id = *p
		out = append(out, id)
	}
	return out
}

// Remove deletes the menus with the given codes.
func (m *MenuMerger) Remove(ctx context.Context, codes ...string) error {
	n, err := m.repo.DeleteByCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("failed to delete menus: %w", err)
	}
	m.logger.Infow("menus removed", "codes", codes, "deleted", n)
	return nil
}

func (m *MenuMerger) resolver(ctx context.Context) (menu.PermissionResolver, error) {
	if m.perms == nil {
		return nil, nil
	}
	set, err := m.perms.Resolver(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load permission codes: %w", err)
	}
	return set, nil
}

func (m *MenuMerger) logUnresolved(plan menu.Plan) {
	if len(plan.Unresolved) > 0 {
		m.logger.Warnw("menu permission codes not registered, cleared", "codes", plan.Unresolved)
	}
}
