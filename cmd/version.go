package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/tagforge/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(version.Get())
			return
		}
		fmt.Println(version.Detailed())
	},
}

var versionShort bool

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}
