package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the request history",
	}

	cmd.AddCommand(historyListCmd(), historyPurgeCmd())
	return cmd
}

func historyListCmd() *cobra.Command {
	var limit int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent dispatches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			repo, closeDB, err := a.openHistory()
			if err != nil {
				return err
			}
			defer closeDB()

			entries, err := repo.FindRecent(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-3d %-17s %4dms  %-30s %s\n",
					e.CreatedAt.Format(time.RFC3339),
					e.StatusCode,
					e.Class,
					e.DurationMs,
					e.Profile,
					e.Scenario,
				)
				if verbose {
					fmt.Fprintf(out, "  request:  %s\n  response: %s\n", e.RequestBody, e.ResponseSnippet)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include request and response bodies")
	return cmd
}

func historyPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete every history entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			repo, closeDB, err := a.openHistory()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := repo.Purge(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "history purged")
			return nil
		},
	}
}
