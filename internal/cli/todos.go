package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zenithtodo/zenith/internal/board"
	"github.com/zenithtodo/zenith/internal/client"
	"github.com/zenithtodo/zenith/internal/config"
	"github.com/zenithtodo/zenith/internal/todo"
)

const shortIDLen = 8

// openBoard connects to the service and loads the collection.
func openBoard(ctx context.Context) (*board.Engine, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	c, err := client.New(cfg.APIURL)
	if err != nil {
		return nil, err
	}

	// Failures are returned to the command, which reports them itself.
	logger := log.New()
	logger.SetOutput(io.Discard)

	e, err := board.New(c, board.Options{DefaultPriority: cfg.DefaultPriority, Logger: logger})
	if err != nil {
		return nil, err
	}
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// resolveID accepts a full id or a unique prefix of one.
func resolveID(e *board.Engine, arg string) (todo.Task, error) {
	if t, ok := e.Task(arg); ok {
		return t, nil
	}
	var matches []todo.Task
	for _, t := range e.Tasks() {
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return todo.Task{}, fmt.Errorf("todo not found: %s", arg)
	case 1:
		return matches[0], nil
	}
	return todo.Task{}, fmt.Errorf("id prefix %q matches %d todos", arg, len(matches))
}

// parseDue reads "today", "tomorrow", "none" or a YYYY-MM-DD date in local
// time. "none" and "" return nil.
func parseDue(s string, now time.Time) (*time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return nil, nil
	case "today":
		d := todo.StartOfDay(now)
		return &d, nil
	case "tomorrow":
		d := todo.StartOfDay(now).AddDate(0, 0, 1)
		return &d, nil
	}
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (want YYYY-MM-DD, today, tomorrow or none)", s)
	}
	return &d, nil
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func newListCmd() *cobra.Command {
	var view, search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := board.ParseTab(view)
			if err != nil {
				return err
			}
			e, err := openBoard(cmd.Context())
			if err != nil {
				return err
			}
			e.SetTab(tab)
			e.SetSearch(search)
			tasks := e.View()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tasks)
			}
			return printTasks(out, e.Title(), tasks, e.Today())
		},
	}
	cmd.Flags().StringVar(&view, "view", string(board.TabInbox), "View to show: inbox, today or upcoming")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show todos whose text contains this")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print todos as JSON")
	return cmd
}

func printTasks(out io.Writer, title string, tasks []todo.Task, today time.Time) error {
	fmt.Fprintf(out, "%s · %s\n\n", title, board.HeaderDate(today))
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks here.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tDUE\tTEXT\tCREATED")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		due := todo.FormatDue(t.DueDate)
		if todo.IsOverdue(t, today) {
			due += " (overdue)"
		}
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\t%s\t%s\n",
			shortID(t.ID),
			done,
			t.Priority,
			due,
			t.Text,
			formatAge(t.CreatedAt),
		)
	}
	return w.Flush()
}

func newAddCmd() *cobra.Command {
	var desc, priority, due string

	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := todo.Draft{Text: strings.Join(args, " "), Description: desc}
			if priority != "" {
				p, err := todo.ParsePriority(priority)
				if err != nil {
					return err
				}
				draft.Priority = p
			}
			d, err := parseDue(due, time.Now())
			if err != nil {
				return err
			}
			draft.DueDate = d

			e, err := openBoard(cmd.Context())
			if err != nil {
				return err
			}
			t, err := e.Add(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", shortID(t.ID), t.Text, t.Priority)
			return nil
		},
	}
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "High, Medium or Low (default from ZENITH_CLIENT_DEFAULT_PRIORITY)")
	cmd.Flags().StringVar(&due, "due", "", "Due date: YYYY-MM-DD, today or tomorrow")
	return cmd
}

func newEditCmd() *cobra.Command {
	var text, desc, priority, due string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a todo's text, description, priority or due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch todo.Patch
			flags := cmd.Flags()
			if flags.Changed("text") {
				patch.Text = &text
			}
			if flags.Changed("desc") {
				patch.Description = &desc
			}
			if flags.Changed("priority") {
				p, err := todo.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &p
			}
			if flags.Changed("due") {
				d, err := parseDue(due, time.Now())
				if err != nil {
					return err
				}
				patch.DueDate = &todo.DueChange{Value: d}
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change: pass --text, --desc, --priority or --due")
			}

			e, err := openBoard(cmd.Context())
			if err != nil {
				return err
			}
			t, err := resolveID(e, args[0])
			if err != nil {
				return err
			}
			if err := e.EditFields(cmd.Context(), t.ID, patch); err != nil {
				return err
			}
			updated, _ := e.Task(t.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", shortID(updated.ID), updated.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New text")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "New description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "High, Medium or Low")
	cmd.Flags().StringVar(&due, "due", "", "Due date: YYYY-MM-DD, today, tomorrow or none to clear")
	return cmd
}

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openBoard(cmd.Context())
			if err != nil {
				return err
			}
			t, err := resolveID(e, args[0])
			if err != nil {
				return err
			}
			if err := e.MarkDone(cmd.Context(), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s %s\n", shortID(t.ID), t.Text)
			return nil
		},
	}
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a todo between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openBoard(cmd.Context())
			if err != nil {
				return err
			}
			t, err := resolveID(e, args[0])
			if err != nil {
				return err
			}
			if err := e.ToggleComplete(cmd.Context(), t.ID); err != nil {
				return err
			}
			state := "open"
			if updated, _ := e.Task(t.ID); updated.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", shortID(t.ID), t.Text, state)
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo permanently",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openBoard(cmd.Context())
			if err != nil {
				return err
			}
			t, err := resolveID(e, args[0])
			if err != nil {
				return err
			}
			if err := e.Remove(cmd.Context(), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Todo removed: %s %s\n", shortID(t.ID), t.Text)
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the task service is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}
			c, err := client.New(cfg.APIURL)
			if err != nil {
				return err
			}
			h, err := c.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.Status, h.Message)
			return nil
		},
	}
}

// formatAge returns a human-readable relative time string.
func formatAge(t time.Time) string {
	now := time.Now()
	duration := now.Sub(t)

	if duration < time.Minute {
		return "just now"
	}

	minutes := int(duration.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}

	hours := int(duration.Hours())
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd ago", days)
}
