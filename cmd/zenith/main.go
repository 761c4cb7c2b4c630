package main

import (
	"fmt"
	"os"

	"github.com/zenithtodo/zenith/internal/cli"
	"github.com/zenithtodo/zenith/internal/config"
	"github.com/zenithtodo/zenith/internal/version"
)

func main() {
	// No subcommand launches the TUI; anything else routes to the CLI.
	if len(os.Args) == 1 || isFlag(os.Args[1]) {
		os.Exit(runTUI(os.Args[1:]))
	}
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(args []string) int {
	res, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if res.ShowHelp {
		fmt.Fprint(os.Stdout, res.HelpText)
		return 0
	}
	if res.ShowVersion {
		fmt.Fprintf(os.Stdout, "zenith %s\n", version.String())
		return 0
	}

	if err := config.LoadDotEnv(res.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := cli.RunTUI(res.Options); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}
