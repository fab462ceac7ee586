package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	appVersion "github.com/buildingai/cozepkg/internal/shared/version"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the release version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cozepkg %s (%s %s/%s)\n",
				appVersion.Current, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
