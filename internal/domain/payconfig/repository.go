package payconfig

import "context"

type Repository interface {
	Create(ctx context.Context, p *PayConfig) error
	// ListEnabled returns enabled channels ordered by sort ascending.
	ListEnabled(ctx context.Context) ([]*PayConfig, error)
	Count(ctx context.Context) (int64, error)
}
