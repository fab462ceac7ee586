package menu

import (
	"context"
	"fmt"
)

type Op int

const (
	OpInsert Op = iota
	OpUpdate
)

func (o Op) String() string {
	if o == OpUpdate {
		return "update"
	}
	return "insert"
}

// Ref points at a menu that either exists in the store or is produced by an
// earlier step of the same plan. The zero-parent ref is the tree root.
type Ref struct {
	id   uint
	step int
}

func RootRef() Ref             { return Ref{step: -1} }
func ExistingRef(id uint) Ref  { return Ref{id: id, step: -1} }
func StepRef(index int) Ref    { return Ref{step: index} }
func (r Ref) IsRoot() bool     { return r.id == 0 && r.step < 0 }
func (r Ref) StepIndex() int   { return r.step }
func (r Ref) ExistingID() uint { return r.id }

func (r Ref) resolve(ids []uint) *uint {
	if r.step >= 0 {
		id := ids[r.step]
		return &id
	}
	if r.id == 0 {
		return nil
	}
	id := r.id
	return &id
}

// Step is a single write of a merge plan. KeepParent leaves an updated
// menu where it is.
type Step struct {
	Op         Op
	Target     Ref
	Parent     Ref
	KeepParent bool
	Fields     Fields
}

type Plan struct {
	Steps []Step
	// Unresolved lists the permission codes that were nulled.
	Unresolved []string
	// Pinned lists the codes whose move was refused because it would have
	// put a menu beneath itself.
	Pinned []string
}

func (p Plan) Counts() (inserts, updates int) {
	for _, s := range p.Steps {
		if s.Op == OpInsert {
			inserts++
		} else {
			updates++
		}
	}
	return inserts, updates
}

// PermissionResolver reports whether a permission code is registered.
type PermissionResolver interface {
	Exists(code string) bool
}

// PermissionSet is a PermissionResolver over a fixed set of codes.
type PermissionSet map[string]bool

func (s PermissionSet) Exists(code string) bool { return s[code] }

// IndexByCode maps the code of every coded menu to its id.
func IndexByCode(menus []*Menu) map[string]uint {
	idx := make(map[string]uint, len(menus))
	for _, m := range menus {
		if m.Code() != nil {
			idx[*m.Code()] = m.ID()
		}
	}
	return idx
}

// PlanMerge walks nodes depth-first and decides, per node, whether it
// updates an existing menu with the same code or inserts a new one. Nodes
// without a code are always inserted. Every node is re-parented to its
// position in the traversal, under root at the top level. Permission codes
// that perms does not know are nulled; a nil perms skips resolution.
//
// rootAncestors lists the ids above root. A node matching root, one of its
// ancestors or a node on its own traversal path keeps its current parent,
// so the merge never creates a cycle.
func PlanMerge(nodes []Node, existing map[string]uint, root Ref, perms PermissionResolver, rootAncestors ...uint) Plan {
	known := make(map[string]Ref, len(existing))
	for code, id := range existing {
		known[code] = ExistingRef(id)
	}

	path := make([]Ref, 0, len(rootAncestors)+1)
	for _, id := range rootAncestors {
		path = append(path, ExistingRef(id))
	}
	if !root.IsRoot() {
		path = append(path, root)
	}
	onPath := func(r Ref) bool {
		for _, p := range path {
			if p == r {
				return true
			}
		}
		return false
	}

	var plan Plan
	var walk func(nodes []Node, parent Ref)
	walk = func(nodes []Node, parent Ref) {
		for _, n := range nodes {
			f := n.fields()
			if f.PermissionCode != nil && perms != nil && !perms.Exists(*f.PermissionCode) {
				plan.Unresolved = append(plan.Unresolved, *f.PermissionCode)
				f.PermissionCode = nil
			}

			step := Step{Op: OpInsert, Parent: parent, Fields: f}
			if n.Code != "" {
				if target, ok := known[n.Code]; ok {
					step.Op = OpUpdate
					step.Target = target
					if onPath(target) {
						step.KeepParent = true
						plan.Pinned = append(plan.Pinned, n.Code)
					}
				}
			}

			index := len(plan.Steps)
			plan.Steps = append(plan.Steps, step)
			self := StepRef(index)
			if step.Op == OpUpdate {
				self = step.Target
			} else if n.Code != "" {
				known[n.Code] = self
			}

			path = append(path, self)
			walk(n.Children, self)
			path = path[:len(path)-1]
		}
	}
	walk(nodes, root)
	return plan
}

// Apply executes the plan in order and returns the menu id of every step.
func (p Plan) Apply(ctx context.Context, repo Repository) ([]uint, error) {
	ids := make([]uint, len(p.Steps))
	for i, s := range p.Steps {
		parentID := s.Parent.resolve(ids)

		switch s.Op {
		case OpInsert:
			m, err := NewMenu(s.Fields, parentID)
			if err != nil {
				return ids, fmt.Errorf("step %d: %w", i, err)
			}
			if err := repo.Create(ctx, m); err != nil {
				return ids, fmt.Errorf("step %d: create menu %q: %w", i, s.Fields.Name, err)
			}
			ids[i] = m.ID()

		case OpUpdate:
			targetID := *s.Target.resolve(ids)
			m, err := repo.GetByID(ctx, targetID)
			if err != nil {
				return ids, fmt.Errorf("step %d: load menu %d: %w", i, targetID, err)
			}
			if s.KeepParent {
				parentID = m.ParentID()
			}
			m.Overwrite(s.Fields, parentID)
			if err := repo.Update(ctx, m); err != nil {
				return ids, fmt.Errorf("step %d: update menu %q: %w", i, s.Fields.Code, err)
			}
			ids[i] = targetID
		}
	}
	return ids, nil
}
