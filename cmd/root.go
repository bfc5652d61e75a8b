package cmd

import (
	"os"

	"medconnect/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "medconnect",
	Short: "Doctor availability service",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(workerCmd())
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
