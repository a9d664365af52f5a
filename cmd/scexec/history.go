// cmd/scexec/history.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/scexec/internal/history"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded calls and deployments",
	}
	cmd.AddCommand(newHistoryListCmd(), newHistoryShowCmd())
	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var (
		kind   string
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := history.ListOptions{
				Kind:   history.Kind(kind),
				Status: history.Status(status),
				Limit:  limit,
			}
			if err := validateListOptions(opts); err != nil {
				return err
			}

			store, err := openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return out.PrintRecords(records)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (call, deploy)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (success, failed, captured)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records (0 for all)")

	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			r, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return out.PrintRecord(r)
		},
	}
}

func validateListOptions(opts history.ListOptions) error {
	switch opts.Kind {
	case "", history.KindCall, history.KindDeploy:
	default:
		return fmt.Errorf("unknown kind %q", opts.Kind)
	}
	switch opts.Status {
	case "", history.StatusSuccess, history.StatusFailed, history.StatusCaptured:
	default:
		return fmt.Errorf("unknown status %q", opts.Status)
	}
	if opts.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}
