package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// SegmentsTable is indexed for Chinese full-text search when it exists.
const SegmentsTable = "datasets_segments"

// SchemaManager creates, syncs and drops tables for install and upgrades.
type SchemaManager struct {
	db     *gorm.DB
	driver string
	logger logger.Interface
}

func NewSchemaManager(db *gorm.DB, driver string, log logger.Interface) *SchemaManager {
	return &SchemaManager{
		db:     db,
		driver: driver,
		logger: log.With("component", "migration.schema"),
	}
}

// Prerequisites enables pgvector on postgres and does nothing elsewhere.
func (s *SchemaManager) Prerequisites(ctx context.Context) error {
	if s.driver != config.DriverPostgres {
		return nil
	}
	if err := s.db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}
	s.logger.Infow("vector extension ready")
	return nil
}

func (s *SchemaManager) SyncAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(AutoMigrateModels()...); err != nil {
		return fmt.Errorf("failed to sync schema: %w", err)
	}
	s.logger.Infow("schema synchronized", "tables", len(tableModels))
	return nil
}

var zhparserStatements = []string{
	"CREATE EXTENSION IF NOT EXISTS zhparser",
	`DO $$
BEGIN
    IF NOT EXISTS (SELECT 1 FROM pg_ts_config WHERE cfgname = 'chinese_zh') THEN
        CREATE TEXT SEARCH CONFIGURATION chinese_zh (PARSER = zhparser);
        ALTER TEXT SEARCH CONFIGURATION chinese_zh ADD MAPPING FOR n,v,a,i,e,l WITH simple;
    END IF;
END
$$`,
}

// FullText installs the zhparser search configuration on postgres and
// indexes the segments table when it exists.
func (s *SchemaManager) FullText(ctx context.Context) error {
	if s.driver != config.DriverPostgres {
		return nil
	}
	tx := s.db.WithContext(ctx)
	for _, stmt := range zhparserStatements {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to configure zhparser: %w", err)
		}
	}
	if !tx.Migrator().HasTable(SegmentsTable) {
		return nil
	}
	err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_segments_content_zh ON " + SegmentsTable +
		" USING gin (to_tsvector('chinese_zh', content))").Error
	if err != nil {
		return fmt.Errorf("failed to create segments full-text index: %w", err)
	}
	return nil
}

func (s *SchemaManager) SyncTable(ctx context.Context, name string) error {
	model, ok := ModelForTable(name)
	if !ok {
		return fmt.Errorf("unknown table %q", name)
	}
	if err := s.db.WithContext(ctx).AutoMigrate(model); err != nil {
		return fmt.Errorf("failed to sync table %s: %w", name, err)
	}
	s.logger.Infow("table synchronized", "table", name)
	return nil
}

func (s *SchemaManager) DropTable(ctx context.Context, name string) error {
	if _, ok := ModelForTable(name); !ok {
		return fmt.Errorf("unknown table %q", name)
	}
	if err := s.db.WithContext(ctx).Migrator().DropTable(name); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	s.logger.Infow("table dropped", "table", name)
	return nil
}
