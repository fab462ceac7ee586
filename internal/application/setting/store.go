// Package setting exposes the dictionary with typed reads that fall back to
// defaults.
package setting

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildingai/cozepkg/internal/domain/setting"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type Store struct {
	repo   setting.Repository
	logger logger.Interface
}

func NewStore(repo setting.Repository, logger logger.Interface) *Store {
	return &Store{repo: repo, logger: logger}
}

// GetBool returns def when the key is absent or unparsable. Store errors are
// returned so callers can tell "absent" from "unreachable".
func (s *Store) GetBool(ctx context.Context, group, key string, def bool) (bool, error) {
	entry, err := s.repo.GetByKey(ctx, group, key)
	if errors.Is(err, setting.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("failed to read %s/%s: %w", group, key, err)
	}
	v, err := entry.Bool()
	if err != nil {
		s.logger.Warnw("dictionary value is not a bool, using default", "group", group, "key", key, "error", err)
		return def, nil
	}
	return v, nil
}

func (s *Store) GetString(ctx context.Context, group, key, def string) (string, error) {
	entry, err := s.repo.GetByKey(ctx, group, key)
	if errors.Is(err, setting.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("failed to read %s/%s: %w", group, key, err)
	}
	return entry.Value(), nil
}

func (s *Store) SetBool(ctx context.Context, group, key string, v bool, description string) error {
	entry, err := setting.NewBoolEntry(group, key, v)
	if err != nil {
		return err
	}
	entry.SetDescription(description)
	return s.upsert(ctx, entry)
}

func (s *Store) SetString(ctx context.Context, group, key, v, description string) error {
	entry, err := setting.NewStringEntry(group, key, v)
	if err != nil {
		return err
	}
	entry.SetDescription(description)
	return s.upsert(ctx, entry)
}

func (s *Store) upsert(ctx context.Context, entry *setting.Entry) error {
	if err := s.repo.Upsert(ctx, entry); err != nil {
		s.logger.Errorw("failed to write dictionary entry", "group", entry.Group(), "key", entry.Key(), "error", err)
		return fmt.Errorf("failed to write %s/%s: %w", entry.Group(), entry.Key(), err)
	}
	return nil
}
