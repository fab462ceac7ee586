package user

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByUsername returns nil, nil when the username is free.
	GetByUsername(ctx context.Context, username string) (*User, error)
	// First returns the earliest created user, or nil when there is none.
	First(ctx context.Context) (*User, error)
}
