package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zenithtodo/zenith/internal/client"
	"github.com/zenithtodo/zenith/internal/config"
	"github.com/zenithtodo/zenith/internal/prefs"
	"github.com/zenithtodo/zenith/internal/tui"
)

// TUIOptions are the settings the interactive board accepts on the command
// line. Zero values fall back to the environment.
type TUIOptions struct {
	APIURL       string
	FocusMinutes int
}

// RunTUI opens the interactive board.
func RunTUI(opts TUIOptions) error {
	if opts.APIURL != "" {
		os.Setenv(config.EnvAPIURL, opts.APIURL)
	}
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	c, err := client.New(cfg.APIURL)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Repo:            c,
		Themes:          prefs.NewStorage(cfg.PrefsPath),
		DefaultPriority: cfg.DefaultPriority,
		FocusMinutes:    opts.FocusMinutes,
	})
}

func newBoardCmd() *cobra.Command {
	var opts TUIOptions

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTUI(opts)
		},
	}
	cmd.Flags().StringVar(&opts.APIURL, "api", "", "Task service URL (overrides ZENITH_API_URL)")
	cmd.Flags().IntVar(&opts.FocusMinutes, "focus-minutes", 25, "Initial focus session length")
	return cmd
}
