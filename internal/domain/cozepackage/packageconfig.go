package cozepackage

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
)

// PackageConfig is a purchasable tier.
type PackageConfig struct {
	id            string
	name          string
	durationDays  int
	originalPrice vo.Money
	currentPrice  vo.Money
	description   string
	createdAt     time.Time
	updatedAt     time.Time
}

// Rule is the caller-supplied shape of a tier in a full-replace request.
// An empty ID means "create".
type Rule struct {
	ID            string
	Name          string
	DurationDays  int
	OriginalPrice vo.Money
	CurrentPrice  vo.Money
	Description   string
}

// RuleError identifies the offending rule of a rejected set. Index is 1-based.
type RuleError struct {
	Index  int
	Name   string
	Reason string
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule #%d (%q): %s", e.Index, e.Name, e.Reason)
}

func (e *RuleError) Unwrap() error { return e.Err }

// ValidateRules checks every rule and cross-rule name uniqueness. The first
// violation is returned; nil means the whole set is acceptable.
func ValidateRules(rules []Rule) error {
	seen := make(map[string]int, len(rules))
	for i, r := range rules {
		name := strings.TrimSpace(r.Name)
		if reason := checkRule(name, r.DurationDays, r.OriginalPrice, r.CurrentPrice); reason != "" {
			return &RuleError{Index: i + 1, Name: r.Name, Reason: reason, Err: ErrInvalidPackage}
		}
		if first, dup := seen[name]; dup {
			return &RuleError{
				Index:  i + 1,
				Name:   r.Name,
				Reason: fmt.Sprintf("name duplicates rule #%d", first),
				Err:    ErrDuplicatePackageName,
			}
		}
		seen[name] = i + 1
	}
	return nil
}

func checkRule(name string, duration int, original, current vo.Money) string {
	switch {
	case name == "":
		return "name is required"
	case duration <= 0:
		return "duration must be greater than 0"
	case original.IsNegative():
		return "original price must not be negative"
	case current.IsNegative():
		return "current price must not be negative"
	case current.GreaterThan(original):
		return "current price must not exceed original price"
	}
	return ""
}

func NewPackageConfig(name string, durationDays int, original, current vo.Money, description string) (*PackageConfig, error) {
	name = strings.TrimSpace(name)
	if reason := checkRule(name, durationDays, original, current); reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPackage, reason)
	}

	now := biztime.NowUTC()
	return &PackageConfig{
		name:          name,
		durationDays:  durationDays,
		originalPrice: original,
		currentPrice:  current,
		description:   description,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructPackageConfig(id, name string, durationDays int, original, current vo.Money, description string, createdAt, updatedAt time.Time) *PackageConfig {
	return &PackageConfig{
		id:            id,
		name:          name,
		durationDays:  durationDays,
		originalPrice: original,
		currentPrice:  current,
		description:   description,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Apply overwrites the editable fields with r.
func (p *PackageConfig) Apply(r Rule) error {
	name := strings.TrimSpace(r.Name)
	if reason := checkRule(name, r.DurationDays, r.OriginalPrice, r.CurrentPrice); reason != "" {
		return fmt.Errorf("%w: %s", ErrInvalidPackage, reason)
	}
	p.name = name
	p.durationDays = r.DurationDays
	p.originalPrice = r.OriginalPrice
	p.currentPrice = r.CurrentPrice
	p.description = r.Description
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *PackageConfig) ID() string              { return p.id }
func (p *PackageConfig) Name() string            { return p.name }
func (p *PackageConfig) DurationDays() int       { return p.durationDays }
func (p *PackageConfig) OriginalPrice() vo.Money { return p.originalPrice }
func (p *PackageConfig) CurrentPrice() vo.Money  { return p.currentPrice }
func (p *PackageConfig) Description() string     { return p.description }
func (p *PackageConfig) CreatedAt() time.Time    { return p.createdAt }
func (p *PackageConfig) UpdatedAt() time.Time    { return p.updatedAt }

// SetID is used by the persistence layer after insert.
func (p *PackageConfig) SetID(id string) { p.id = id }
