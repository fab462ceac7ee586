package menu

import (
	"encoding/json"
	"fmt"
)

// Node is one entry of a bundled menu definition file.
type Node struct {
	Code           string `json:"code"`
	Name           string `json:"name" validate:"required"`
	Path           string `json:"path"`
	Component      string `json:"component"`
	Icon           string `json:"icon"`
	Sort           int    `json:"sort"`
	Type           Type   `json:"type" validate:"gte=0,lte=2"`
	PermissionCode string `json:"permissionCode"`
	PluginPackName string `json:"pluginPackName"`
	IsHidden       int    `json:"isHidden"`
	SourceType     int    `json:"sourceType"`
	Children       []Node `json:"children,omitempty" validate:"dive"`
}

func ParseDefinition(data []byte) ([]Node, error) {
	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("menu definition must be a JSON array: %w", err)
	}
	return nodes, nil
}

func (n Node) fields() Fields {
	perm := n.PermissionCode
	plugin := n.PluginPackName
	return Fields{
		Code:           n.Code,
		Name:           n.Name,
		Path:           n.Path,
		Component:      n.Component,
		Icon:           n.Icon,
		Sort:           n.Sort,
		Type:           n.Type,
		PermissionCode: nilIfEmpty(&perm),
		PluginPackName: nilIfEmpty(&plugin),
		IsHidden:       n.IsHidden != 0,
		SourceType:     n.SourceType,
	}
}

// CountNodes counts a definition including every descendant.
func CountNodes(nodes []Node) int {
	n := len(nodes)
	for _, node := range nodes {
		n += CountNodes(node.Children)
	}
	return n
}
