package upgrade

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildingai/cozepkg/internal/infrastructure/database"
	"github.com/buildingai/cozepkg/internal/interfaces/cli/cmdutil"
	httpRouter "github.com/buildingai/cozepkg/internal/interfaces/http"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Release data migration tools",
	}
	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.AddCommand(newRollbackCommand())
	return cmd
}

func newRollbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rollback <version>",
		Short:   "Revert the data migration of a release",
		Example: "  cozepkg upgrade rollback 1.0.0-beta.10",
		Args:    cobra.ExactArgs(1),
		RunE:    runRollback,
	}
}

func runRollback(cmd *cobra.Command, args []string) error {
	cfg, log, err := cmdutil.Bootstrap(cmdutil.ResolveEnv(env))
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	router, err := httpRouter.NewRouter(ctx, database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	defer router.Shutdown()

	if err := router.NewOrchestrator(false).Rollback(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s\n", args[0])
	return nil
}
