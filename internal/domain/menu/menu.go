package menu

import (
	"fmt"
	"time"
)

type Type int

const (
	TypeDirectory Type = 0
	TypeMenu      Type = 1
	TypeButton    Type = 2
)

const SourceTypeSystem = 1

// Menu is one node of the console navigation tree.
type Menu struct {
	id             uint
	code           *string
	name           string
	path           string
	component      string
	icon           string
	sort           int
	menuType       Type
	parentID       *uint
	permissionCode *string
	pluginPackName *string
	isHidden       bool
	sourceType     int
	createdAt      time.Time
	updatedAt      time.Time
}

// Fields is the editable content of a menu, as read from a menu definition.
type Fields struct {
	Code           string
	Name           string
	Path           string
	Component      string
	Icon           string
	Sort           int
	Type           Type
	PermissionCode *string
	PluginPackName *string
	IsHidden       bool
	SourceType     int
}

func NewMenu(f Fields, parentID *uint) (*Menu, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("menu name is required")
	}
	now := time.Now().UTC()
	m := &Menu{createdAt: now}
	m.apply(f, parentID, now)
	return m, nil
}

type ReconstructParams struct {
	ID             uint
	Code           *string
	Name           string
	Path           string
	Component      string
	Icon           string
	Sort           int
	Type           Type
	ParentID       *uint
	PermissionCode *string
	PluginPackName *string
	IsHidden       bool
	SourceType     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func ReconstructMenu(p ReconstructParams) *Menu {
	return &Menu{
		id:             p.ID,
		code:           p.Code,
		name:           p.Name,
		path:           p.Path,
		component:      p.Component,
		icon:           p.Icon,
		sort:           p.Sort,
		menuType:       p.Type,
		parentID:       p.ParentID,
		permissionCode: p.PermissionCode,
		pluginPackName: p.PluginPackName,
		isHidden:       p.IsHidden,
		sourceType:     p.SourceType,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}

// Overwrite replaces every field, including the parent.
func (m *Menu) Overwrite(f Fields, parentID *uint) {
	m.apply(f, parentID, time.Now().UTC())
}

func (m *Menu) apply(f Fields, parentID *uint, now time.Time) {
	m.code = nilIfEmpty(&f.Code)
	m.name = f.Name
	m.path = f.Path
	m.component = f.Component
	m.icon = f.Icon
	m.sort = f.Sort
	m.menuType = f.Type
	m.parentID = parentID
	m.permissionCode = nilIfEmpty(f.PermissionCode)
	m.pluginPackName = nilIfEmpty(f.PluginPackName)
	m.isHidden = f.IsHidden
	m.sourceType = f.SourceType
	m.updatedAt = now
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func (m *Menu) ID() uint                { return m.id }
func (m *Menu) SetID(id uint)           { m.id = id }
func (m *Menu) Code() *string           { return m.code }
func (m *Menu) Name() string            { return m.name }
func (m *Menu) Path() string            { return m.path }
func (m *Menu) Component() string       { return m.component }
func (m *Menu) Icon() string            { return m.icon }
func (m *Menu) Sort() int               { return m.sort }
func (m *Menu) Type() Type              { return m.menuType }
func (m *Menu) ParentID() *uint         { return m.parentID }
func (m *Menu) PermissionCode() *string { return m.permissionCode }
func (m *Menu) PluginPackName() *string { return m.pluginPackName }
func (m *Menu) IsHidden() bool          { return m.isHidden }
func (m *Menu) SourceType() int         { return m.sourceType }
func (m *Menu) CreatedAt() time.Time    { return m.createdAt }
func (m *Menu) UpdatedAt() time.Time    { return m.updatedAt }
