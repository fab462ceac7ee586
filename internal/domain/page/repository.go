package page

import "context"

type Repository interface {
	Create(ctx context.Context, p *Page) error
	// GetByName returns ErrPageNotFound when no page has the name.
	GetByName(ctx context.Context, name string) (*Page, error)
}
