package setting

import "context"

type Repository interface {
	// GetByKey returns ErrNotFound when the entry does not exist.
	GetByKey(ctx context.Context, group, key string) (*Entry, error)
	GetByGroup(ctx context.Context, group string) ([]*Entry, error)
	// Upsert inserts or overwrites the value of (group, key).
	Upsert(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, group, key string) error
}
