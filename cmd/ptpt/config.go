package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/privacy"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the operator settings",
	}

	cmd.AddCommand(configShowCmd(), configSetCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings, integration key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			key := a.cfg.IntegrationKey
			if key == "" {
				key = "(not set)"
			} else {
				key = privacy.Key(key)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config file:     %s\n", a.cfgPath)
			fmt.Fprintf(out, "base_url:        %s\n", a.cfg.BaseURL)
			fmt.Fprintf(out, "integration_key: %s\n", key)
			fmt.Fprintf(out, "data_dir:        %s\n", a.cfg.DataDir)
			fmt.Fprintf(out, "log_file:        %s\n", a.cfg.LogFile)
			fmt.Fprintf(out, "timeout_seconds: %d\n", a.cfg.TimeoutSeconds)
			fmt.Fprintf(out, "max_retries:     %d\n", a.cfg.MaxRetries)
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist one setting",
		Long: `Set writes one setting to the config file. Keys: base_url,
integration_key, data_dir, log_file, timeout_seconds, max_retries.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := a.cfg
			key, value := args[0], args[1]

			switch key {
			case "base_url":
				cfg.BaseURL = value
			case "integration_key":
				cfg.IntegrationKey = value
			case "data_dir":
				cfg.DataDir = value
			case "log_file":
				cfg.LogFile = value
			case "timeout_seconds":
				n, err := strconv.Atoi(value)
				if err != nil || n <= 0 {
					return fmt.Errorf("timeout_seconds wants a positive integer, got %q", value)
				}
				cfg.TimeoutSeconds = n
			case "max_retries":
				n, err := strconv.Atoi(value)
				if err != nil || n <= 0 {
					return fmt.Errorf("max_retries wants a positive integer, got %q", value)
				}
				cfg.MaxRetries = n
			default:
				return fmt.Errorf("unknown setting %q", key)
			}

			if err := config.Save(a.cfgPath, cfg); err != nil {
				return err
			}

			shown := value
			if key == "integration_key" {
				shown = privacy.Key(value)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, shown)
			return nil
		},
	}

	return cmd
}
