package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goframe",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		fmt.Fprintln(cmd.OutOrStdout(), "Frame load case combination following EN 1990")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
