package permission

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeSystem Type = "system"
	TypePlugin Type = "plugin"
)

// Permission is addressed by its code, "<resource>:<action>".
type Permission struct {
	id             uint
	code           string
	name           string
	description    string
	permType       Type
	pluginPackName *string
	isDeprecated   bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewPermission(code, name, description string, permType Type) (*Permission, error) {
	code = strings.TrimSpace(code)
	if _, _, err := SplitCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		name = code
	}
	if permType == "" {
		permType = TypeSystem
	}

	now := time.Now().UTC()
	return &Permission{
		code:        code,
		name:        name,
		description: description,
		permType:    permType,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructPermission(id uint, code, name, description string, permType Type, pluginPackName *string, isDeprecated bool, createdAt, updatedAt time.Time) *Permission {
	return &Permission{
		id:             id,
		code:           code,
		name:           name,
		description:    description,
		permType:       permType,
		pluginPackName: pluginPackName,
		isDeprecated:   isDeprecated,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// SplitCode splits a permission code into resource and action.
func SplitCode(code string) (resource, action string, err error) {
	resource, action, ok := strings.Cut(code, ":")
	if !ok || resource == "" || action == "" {
		return "", "", fmt.Errorf("invalid permission code %q", code)
	}
	return resource, action, nil
}

func (p *Permission) ID() uint { return p.id }

func (p *Permission) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Permission) Code() string            { return p.code }
func (p *Permission) Name() string            { return p.name }
func (p *Permission) Description() string     { return p.description }
func (p *Permission) Type() Type              { return p.permType }
func (p *Permission) PluginPackName() *string { return p.pluginPackName }
func (p *Permission) IsDeprecated() bool      { return p.isDeprecated }
func (p *Permission) CreatedAt() time.Time    { return p.createdAt }
func (p *Permission) UpdatedAt() time.Time    { return p.updatedAt }

func (p *Permission) Resource() string {
	r, _, _ := SplitCode(p.code)
	return r
}

func (p *Permission) Action() string {
	_, a, _ := SplitCode(p.code)
	return a
}

func (p *Permission) SetPluginPackName(name string) {
	if name == "" {
		p.pluginPackName = nil
		return
	}
	p.pluginPackName = &name
}

// Deprecate flags a permission whose route is no longer registered.
func (p *Permission) Deprecate() bool {
	if p.isDeprecated {
		return false
	}
	p.isDeprecated = true
	p.updatedAt = time.Now().UTC()
	return true
}

// Restore clears the deprecated flag when the route comes back.
func (p *Permission) Restore() bool {
	if !p.isDeprecated {
		return false
	}
	p.isDeprecated = false
	p.updatedAt = time.Now().UTC()
	return true
}
