package menu

import "context"

type Repository interface {
	Create(ctx context.Context, m *Menu) error
	Update(ctx context.Context, m *Menu) error
	GetByID(ctx context.Context, id uint) (*Menu, error)
	// GetByCode returns nil, nil when no menu has the code.
	GetByCode(ctx context.Context, code string) (*Menu, error)
	ListAll(ctx context.Context) ([]*Menu, error)
	DeleteAll(ctx context.Context) (int64, error)
	DeleteByCodes(ctx context.Context, codes []string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
