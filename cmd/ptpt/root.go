package main

import (
	"github.com/spf13/cobra"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/config"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ptpt",
		Short: "Construct and send payment-API test requests",
		Long: `ptpt builds payment-API test requests from saved configuration
profiles, keeps the structured fields and the raw JSON payload in sync,
and sends the result for inspection. Sensitive values are masked in
every display; transport always carries the real values.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", config.DefaultPath(), "config file path")

	cmd.AddCommand(
		compileCmd(),
		sendCmd(),
		profilesCmd(),
		ptpCmd(),
		historyCmd(),
		configCmd(),
		mockCmd(),
	)

	return cmd
}
