package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "fat12nav"

func Execute() error {
	// Run bare, the root command behaves like "nav".
	rootCmd := &cobra.Command{
		Use:          AppName + " [image]",
		Short:        AppName + " - FAT12 disk image navigator",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         RunNav,
	}
	rootCmd.Flags().String("log-level", "ERROR", "log level: DEBUG, INFO, WARN, ERROR")
	addBlockSizeFlag(rootCmd)

	rootCmd.AddCommand(DefineNavCommand())
	rootCmd.AddCommand(DefineExtractCommand())
	rootCmd.AddCommand(DefineMountCommand())

	return rootCmd.Execute()
}
