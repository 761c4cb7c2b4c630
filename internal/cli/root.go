// Package cli implements the zenith command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/zenithtodo/zenith/internal/config"
	"github.com/zenithtodo/zenith/internal/version"
)

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "zenith",
		Short: "Personal task manager",
		Long: `Zenith keeps your tasks in an Inbox, plans your day in Today, and looks ahead in Upcoming.
Run without arguments to open the interactive board.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File to load environment variables from")

	root.AddCommand(
		newServeCmd(),
		newListCmd(),
		newAddCmd(),
		newEditCmd(),
		newDoneCmd(),
		newToggleCmd(),
		newRemoveCmd(),
		newHealthCmd(),
		newBoardCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
