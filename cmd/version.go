package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set at build time with -ldflags "-X github.com/openlab-ops/cdboot/cmd.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the cdboot version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
