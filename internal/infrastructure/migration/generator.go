package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// Generator writes up/down script pairs in the golang-migrate layout.
type Generator struct {
	scriptsPath string
	now         func() time.Time
	logger      logger.Interface
}

func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		now:         time.Now,
		logger:      log.With("component", "migration.generator"),
	}
}

// CreateMigration creates a new migration file pair and returns their paths.
func (g *Generator) CreateMigration(name string) (string, string, error) {
	if name == "" {
		return "", "", fmt.Errorf("migration name is required")
	}
	now := g.now()
	timestamp := now.Format("20060102150405")

	upFilePath := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.up.sql", timestamp, name))
	downFilePath := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.down.sql", timestamp, name))

	if err := os.MkdirAll(g.scriptsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	created := now.Format("2006-01-02 15:04:05")
	if err := os.WriteFile(upFilePath, []byte(upTemplate(name, created)), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create up migration file: %w", err)
	}
	if err := os.WriteFile(downFilePath, []byte(downTemplate(name, created)), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created successfully",
		"up_file", upFilePath,
		"down_file", downFilePath)
	return upFilePath, downFilePath, nil
}

func upTemplate(name, created string) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- Example:
-- ALTER TABLE coze_package_orders ADD COLUMN coupon_code VARCHAR(64) NULL;

`, name, created)
}

func downTemplate(name, created string) string {
	return fmt.Sprintf(`-- Rollback Migration: %s
-- Created: %s

-- Example:
-- ALTER TABLE coze_package_orders DROP COLUMN coupon_code;

`, name, created)
}
