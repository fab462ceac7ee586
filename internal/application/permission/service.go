package permission

import (
	"context"
	"fmt"
	"sort"

	"github.com/buildingai/cozepkg/internal/domain/permission"
	"github.com/buildingai/cozepkg/internal/shared/constants"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// SyncResult counts what a Sync changed.
type SyncResult struct {
	Added      int
	Restored   int
	Deprecated int
}

type Service struct {
	permissionRepo permission.PermissionRepository
	enforcer       permission.PermissionEnforcer
	logger         logger.Interface
}

func NewService(
	permissionRepo permission.PermissionRepository,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *Service {
	return &Service{
		permissionRepo: permissionRepo,
		enforcer:       enforcer,
		logger:         logger,
	}
}

func (s *Service) CheckPermission(userID, code string) (bool, error) {
	if s.enforcer == nil {
		return false, nil
	}
	resource, action, err := permission.SplitCode(code)
	if err != nil {
		return false, err
	}
	return s.enforcer.Enforce(userID, resource, action)
}

// GrantAdmin binds userID to the role that holds every active permission.
func (s *Service) GrantAdmin(userID string) error {
	if s.enforcer == nil {
		return nil
	}
	if err := s.enforcer.AddRoleForUser(userID, constants.RoleAdmin); err != nil {
		return fmt.Errorf("failed to grant admin role: %w", err)
	}
	return nil
}

// Sync reconciles the stored permissions with the declared ones. New codes
// are inserted, stored system codes that are no longer declared are marked
// deprecated, and deprecated codes that reappear are restored. Other fields
// of existing rows are left as they are.
func (s *Service) Sync(ctx context.Context, defs []permission.Definition) (SyncResult, error) {
	var result SyncResult

	stored, err := s.permissionRepo.ListAll(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list permissions: %w", err)
	}
	byCode := make(map[string]*permission.Permission, len(stored))
	for _, p := range stored {
		byCode[p.Code()] = p
	}

	declared := make(map[string]bool, len(defs))
	for _, def := range defs {
		if declared[def.Code] {
			continue
		}
		declared[def.Code] = true

		if existing, ok := byCode[def.Code]; ok {
			if existing.Restore() {
				if err := s.permissionRepo.Update(ctx, existing); err != nil {
					return result, fmt.Errorf("failed to restore permission %s: %w", def.Code, err)
				}
				result.Restored++
			}
			continue
		}

		p, err := permission.NewPermission(def.Code, def.Name, def.Description, def.Type)
		if err != nil {
			return result, err
		}
		if err := s.permissionRepo.Create(ctx, p); err != nil {
			return result, fmt.Errorf("failed to create permission %s: %w", def.Code, err)
		}
		result.Added++
	}

	for _, p := range stored {
		if declared[p.Code()] || p.Type() != permission.TypeSystem {
			continue
		}
		if p.Deprecate() {
			if err := s.permissionRepo.Update(ctx, p); err != nil {
				return result, fmt.Errorf("failed to deprecate permission %s: %w", p.Code(), err)
			}
			result.Deprecated++
		}
	}

	s.logger.Infow("permissions synced",
		"added", result.Added,
		"restored", result.Restored,
		"deprecated", result.Deprecated)
	return result, nil
}

// Ensure inserts the permission when its code is not stored yet.
func (s *Service) Ensure(ctx context.Context, def permission.Definition) (bool, error) {
	existing, err := s.permissionRepo.GetByCode(ctx, def.Code)
	if err != nil {
		return false, fmt.Errorf("failed to get permission %s: %w", def.Code, err)
	}
	if existing != nil {
		return false, nil
	}

	p, err := permission.NewPermission(def.Code, def.Name, def.Description, def.Type)
	if err != nil {
		return false, err
	}
	if err := s.permissionRepo.Create(ctx, p); err != nil {
		return false, fmt.Errorf("failed to create permission %s: %w", def.Code, err)
	}
	s.logger.Infow("permission created", "code", def.Code)
	return true, nil
}

func (s *Service) Remove(ctx context.Context, codes []string) error {
	if err := s.permissionRepo.DeleteByCodes(ctx, codes); err != nil {
		return fmt.Errorf("failed to delete permissions: %w", err)
	}
	return nil
}

// Resolver returns a snapshot of the stored codes for menu merging.
func (s *Service) Resolver(ctx context.Context) (permission.CodeSet, error) {
	stored, err := s.permissionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	set := make(permission.CodeSet, len(stored))
	for _, p := range stored {
		set[p.Code()] = true
	}
	return set, nil
}

// RebuildPolicies grants the admin role every non-deprecated code.
func (s *Service) RebuildPolicies(ctx context.Context) error {
	if s.enforcer == nil {
		return nil
	}

	stored, err := s.permissionRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list permissions: %w", err)
	}
	codes := make([]string, 0, len(stored))
	for _, p := range stored {
		if !p.IsDeprecated() {
			codes = append(codes, p.Code())
		}
	}
	sort.Strings(codes)

	if err := s.enforcer.ReplaceRolePolicies(constants.RoleAdmin, codes); err != nil {
		return fmt.Errorf("failed to rebuild admin policies: %w", err)
	}
	s.logger.Infow("admin policies rebuilt", "codes", len(codes))
	return nil
}
