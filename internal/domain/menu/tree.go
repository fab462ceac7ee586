package menu

import "sort"

type TreeNode struct {
	Menu     *Menu
	Children []*TreeNode
}

// BuildTree assembles menus into a forest ordered by sort, then id. Menus
// whose parent is missing become roots.
func BuildTree(menus []*Menu) []*TreeNode {
	nodes := make(map[uint]*TreeNode, len(menus))
	for _, m := range menus {
		nodes[m.ID()] = &TreeNode{Menu: m}
	}

	var roots []*TreeNode
	for _, m := range menus {
		n := nodes[m.ID()]
		if pid := m.ParentID(); pid != nil && *pid != m.ID() {
			if parent, ok := nodes[*pid]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	sortNodes(roots)
	return roots
}

func sortNodes(nodes []*TreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Menu, nodes[j].Menu
		if a.Sort() != b.Sort() {
			return a.Sort() < b.Sort()
		}
		return a.ID() < b.ID()
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}
