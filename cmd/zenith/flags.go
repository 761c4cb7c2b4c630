package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/zenithtodo/zenith/internal/cli"
	"github.com/zenithtodo/zenith/internal/focus"
)

type parseResult struct {
	Options     cli.TUIOptions
	EnvFile     string
	ShowHelp    bool
	ShowVersion bool
	HelpText    string
}

func parseArgs(args []string) (parseResult, error) {
	fs := flag.NewFlagSet("zenith", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	apiURL := fs.String("api", "", "Task service URL (overrides ZENITH_API_URL)")
	envFile := fs.String("env-file", ".env", "File to load environment variables from")
	focusMinutes := fs.Int("focus-minutes", focus.DefaultMinutes, "Initial focus session length in minutes")
	showVersion := fs.Bool("version", false, "Show version information")
	showVersionShort := fs.Bool("v", false, "Show version information")

	usage := func() string {
		var b strings.Builder
		fmt.Fprintln(&b, "Usage: zenith [flags]")
		fmt.Fprintln(&b, "       zenith <command> [flags]")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "Zenith is a personal task manager. Without a command it opens the board.")
		fmt.Fprintln(&b, "Run 'zenith help' for the list of commands.")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "Flags:")
		fs.SetOutput(&b)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
		return b.String()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return parseResult{ShowHelp: true, HelpText: usage()}, nil
		}
		return parseResult{}, fmt.Errorf("%v\n\n%s", err, usage())
	}

	if fs.NArg() > 0 {
		return parseResult{}, fmt.Errorf("unexpected arguments after flags: %s\n\n%s", strings.Join(fs.Args(), " "), usage())
	}

	if *showVersion || *showVersionShort {
		return parseResult{ShowVersion: true}, nil
	}

	if *focusMinutes < focus.MinMinutes || *focusMinutes > focus.MaxMinutes {
		return parseResult{}, fmt.Errorf("--focus-minutes must be between %d and %d\n\n%s", focus.MinMinutes, focus.MaxMinutes, usage())
	}

	return parseResult{
		Options: cli.TUIOptions{
			APIURL:       strings.TrimSpace(*apiURL),
			FocusMinutes: *focusMinutes,
		},
		EnvFile: *envFile,
	}, nil
}
