package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func ptpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ptp",
		Short: "Browse the payment-type-profile catalog",
	}

	cmd.AddCommand(ptpListCmd())
	return cmd
}

func ptpListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued payment-type-profile names",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			names, err := a.catalog().Filter(filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "substring to filter by, case-insensitive")
	return cmd
}
