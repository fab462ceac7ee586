package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/buildingai/cozepkg/internal/infrastructure/database"
	"github.com/buildingai/cozepkg/internal/infrastructure/migration"
	"github.com/buildingai/cozepkg/internal/interfaces/cli/cmdutil"
	"github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

const (
	toolGoose         = "goose"
	toolGolangMigrate = "golang-migrate"
)

var (
	env        string
	tool       string
	scriptsDir string
	name       string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long: `Manage SQL migrations. goose runs the scripts embedded in the binary;
golang-migrate runs up/down pairs from --dir on disk.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVar(&tool, "tool", toolGoose, "Migration tool (goose, golang-migrate)")
	cmd.PersistentFlags().StringVar(&scriptsDir, "dir", "", "Scripts directory on disk (default: internal/infrastructure/migration/scripts/<driver>)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		RunE:  runCreate,
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// migrator is what both SQL tools offer the commands.
type migrator interface {
	migration.Strategy
	MigrateDown(db *gorm.DB, steps int) error
}

func diskDir(driver string) (string, error) {
	dir := scriptsDir
	if dir == "" {
		dir = filepath.Join("internal/infrastructure/migration", migration.ScriptsDir(driver))
	}
	return filepath.Abs(dir)
}

func newMigrator(driver string, log logger.Interface) (migrator, error) {
	switch tool {
	case toolGoose:
		if driver != config.DriverMySQL {
			return nil, fmt.Errorf("goose scripts ship for mysql only; use `server --auto-migrate` on %s", driver)
		}
		return migration.NewGooseStrategy(migration.Scripts, migration.ScriptsDir(driver), driver, log), nil
	case toolGolangMigrate:
		dir, err := diskDir(driver)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve scripts path: %w", err)
		}
		return migration.NewGolangMigrateStrategy(dir, driver, log), nil
	default:
		return nil, fmt.Errorf("unknown migration tool %q", tool)
	}
}

func setup() (migrator, logger.Interface, error) {
	cfg, log, err := cmdutil.Bootstrap(cmdutil.ResolveEnv(env))
	if err != nil {
		return nil, nil, err
	}
	m, err := newMigrator(cfg.Database.Driver, log)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return m, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	m, log, err := setup()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env, "tool", m.GetName())
	if err := m.Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	m, log, err := setup()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("rolling back migrations", "environment", env, "steps", steps)
	return m.MigrateDown(database.Get(), steps)
}

func runStatus(cmd *cobra.Command, args []string) error {
	m, _, err := setup()
	if err != nil {
		return err
	}
	defer database.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Strategy: %s\n", migration.StrategyDescription(m.GetName()))

	switch s := m.(type) {
	case *migration.GooseStrategy:
		return s.Status(database.Get())
	case *migration.GolangMigrateStrategy:
		v, dirty, err := s.GetVersion(database.Get())
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		fmt.Fprintf(out, "Version: %d (dirty: %t)\n", v, dirty)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, log, err := cmdutil.LoadConfig(cmdutil.ResolveEnv(env))
	if err != nil {
		return err
	}
	dir, err := diskDir(cfg.Database.Driver)
	if err != nil {
		return fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	switch tool {
	case toolGoose:
		if err := migration.Create(dir, name); err != nil {
			return err
		}
		log.Infow("migration created", "dir", dir, "name", name)
		return nil
	case toolGolangMigrate:
		up, down, err := migration.NewGenerator(dir, log).CreateMigration(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", up, down)
		return nil
	default:
		return fmt.Errorf("unknown migration tool %q", tool)
	}
}
