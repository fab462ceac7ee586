package install

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildingai/cozepkg/internal/application/bootstrap"
	"github.com/buildingai/cozepkg/internal/infrastructure/database"
	"github.com/buildingai/cozepkg/internal/interfaces/cli/cmdutil"
	httpRouter "github.com/buildingai/cozepkg/internal/interfaces/http"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install or upgrade the database without serving",
		Long: `Run the install/upgrade check once and exit. When no admin password is
configured it is read from the terminal.`,
		RunE: run,
	}
	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
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
	// Routes declare the permission codes the install syncs.
	router.SetupRoutes()

	outcome, err := router.NewOrchestrator(true).Run(ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "%s (version %s)\n", outcome, router.AppVersion())
	if outcome == bootstrap.OutcomeInstallFailed || outcome == bootstrap.OutcomeUpgradeFailed {
		return err
	}
	return nil
}
