package permission

import "context"

type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	Update(ctx context.Context, permission *Permission) error
	// GetByCode returns nil, nil when the code is not stored.
	GetByCode(ctx context.Context, code string) (*Permission, error)
	ListAll(ctx context.Context) ([]*Permission, error)
	// ExistingCodes returns the subset of codes that are stored.
	ExistingCodes(ctx context.Context, codes []string) (map[string]bool, error)
	DeleteByCodes(ctx context.Context, codes []string) error
}
