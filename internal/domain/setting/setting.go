// Package setting models the grouped key/value dictionary that holds feature
// flags and operator-authored text.
package setting

import (
	"fmt"
	"strconv"
	"time"

	"github.com/buildingai/cozepkg/internal/shared/biztime"
)

type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeInt    ValueType = "int"
	ValueTypeBool   ValueType = "bool"
	ValueTypeJSON   ValueType = "json"
)

func (t ValueType) IsValid() bool {
	switch t {
	case ValueTypeString, ValueTypeInt, ValueTypeBool, ValueTypeJSON:
		return true
	}
	return false
}

// Well-known groups and keys.
const (
	GroupSystem           = "system"
	KeyIsInstalled        = "is_installed"
	GroupCozePackage      = "coze_package_config"
	KeyCozePackageStatus  = "coze_package_status"
	KeyCozePackageExplain = "coze_package_explain"
)

// Entry is one dictionary row, unique on (group, key).
type Entry struct {
	id          uint
	group       string
	key         string
	value       string
	valueType   ValueType
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewEntry(group, key string, valueType ValueType, value string) (*Entry, error) {
	if group == "" {
		return nil, fmt.Errorf("group is required")
	}
	if key == "" {
		return nil, ErrInvalidKey
	}
	if !valueType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValueType, valueType)
	}

	now := biztime.NowUTC()
	return &Entry{
		group:     group,
		key:       key,
		value:     value,
		valueType: valueType,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func NewBoolEntry(group, key string, v bool) (*Entry, error) {
	return NewEntry(group, key, ValueTypeBool, strconv.FormatBool(v))
}

func NewStringEntry(group, key, v string) (*Entry, error) {
	return NewEntry(group, key, ValueTypeString, v)
}

func ReconstructEntry(id uint, group, key, value string, valueType ValueType, description string, createdAt, updatedAt time.Time) *Entry {
	return &Entry{
		id:          id,
		group:       group,
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (e *Entry) ID() uint             { return e.id }
func (e *Entry) Group() string        { return e.group }
func (e *Entry) Key() string          { return e.key }
func (e *Entry) Value() string        { return e.value }
func (e *Entry) ValueType() ValueType { return e.valueType }
func (e *Entry) Description() string  { return e.description }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
func (e *Entry) UpdatedAt() time.Time { return e.updatedAt }

func (e *Entry) SetID(id uint) { e.id = id }

func (e *Entry) SetDescription(d string) { e.description = d }

// Bool parses the value. Empty reads as false; "1" and "true" read as true.
func (e *Entry) Bool() (bool, error) {
	if e.value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(e.value)
	if err != nil {
		return false, fmt.Errorf("%w: %s/%s is not a bool", ErrInvalidValueType, e.group, e.key)
	}
	return b, nil
}

func (e *Entry) Int() (int, error) {
	if e.value == "" {
		return 0, nil
	}
	return strconv.Atoi(e.value)
}
