package aicatalog

import "context"

// Repository upserts catalogue entries by their natural keys. The returned
// bool is true when a row was inserted.
type Repository interface {
	UpsertProvider(ctx context.Context, p *Provider) (bool, error)
	UpsertModel(ctx context.Context, m *Model) (bool, error)
	UpsertKeyTemplate(ctx context.Context, t *KeyTemplate) (bool, error)
}
