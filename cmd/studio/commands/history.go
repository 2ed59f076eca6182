package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/haivivi/studio/pkg/cli"
	"github.com/haivivi/studio/pkg/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded runs",
	Long: `Inspect recorded runs.

History is recorded when the context sets history_dir:
  studio config add-context default --api-key hf_xxx --history-dir ~/.giztoy/studio/history`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return fmt.Errorf("failed to read 'limit' flag: %w", err)
		}

		return withHistory(func(ctx context.Context, store history.Store) error {
			records, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			if outputJSON {
				return outputResult(records, true)
			}
			if len(records) == 0 {
				fmt.Fprintln(cli.Stdout, "No runs recorded")
				return nil
			}

			w := tabwriter.NewWriter(cli.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODE\tSTARTED\tDURATION\tSTATUS\tINPUT")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Mode, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
					cli.FormatDuration(r.Duration), recordStatus(r), truncate(r.Input, 40))
			}
			return w.Flush()
		})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(func(ctx context.Context, store history.Store) error {
			r, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return outputResult(r, outputJSON)
		})
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(func(ctx context.Context, store history.Store) error {
			if _, err := store.Get(ctx, args[0]); err != nil {
				return err
			}
			if err := store.Delete(ctx, args[0]); err != nil {
				return err
			}
			cli.PrintSuccess("Run %s deleted", args[0])
			return nil
		})
	},
}

// withHistory opens the history of the current context for fn.
func withHistory(fn func(context.Context, history.Store) error) error {
	c, err := getContext()
	if err != nil {
		return err
	}
	paths, err := cli.NewPaths(appName)
	if err != nil {
		return err
	}
	store, err := openHistory(c, paths)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if store == nil {
		return errors.New("history is disabled for this context; set history_dir")
	}
	defer store.Close()
	return fn(context.Background(), store)
}

// recordStatus summarizes the stage statuses of a run.
func recordStatus(r *history.Record) string {
	if len(r.Stages) == 0 {
		return "invalid"
	}
	status := "ok"
	for _, s := range r.Stages {
		switch s.Status {
		case "failed":
			return "failed"
		case "skipped":
			status = "skipped"
		}
	}
	return status
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}
