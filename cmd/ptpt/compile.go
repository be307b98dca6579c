package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/compiler"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/metrics"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/eventbus"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/transport"
)

func compileCmd() *cobra.Command {
	var f sessionFlags
	var unmasked, curl, lint bool

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile and print the effective payload for a profile",
		Long: `Compile loads a profile, applies the selected scenario's fixed
parameters and the profile's saved override, and prints the effective
payload. The output is masked unless --unmasked is given; --curl prints
the exact request as a curl command instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			bus := eventbus.NewInMemoryBus()
			coord, _, err := a.newSession(&f, bus, &metrics.Counters{})
			if err != nil {
				return err
			}

			if lint {
				if err := compiler.Lint(coord.EffectivePayload(), coord.Scenario(), coord.Options()); err != nil {
					return fmt.Errorf("lint: %w", err)
				}
			}

			out := cmd.OutOrStdout()

			if curl {
				headers, err := coord.RequestHeaders()
				if err != nil {
					return err
				}
				command, err := transport.CurlCommand(transport.Endpoint(a.cfg.BaseURL), headers, coord.EffectivePayload())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, command)
				return nil
			}

			coord.SetPrivacy(!unmasked)
			fmt.Fprintln(out, coord.PayloadText())
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&unmasked, "unmasked", false, "print real values instead of the masked view")
	cmd.Flags().BoolVar(&curl, "curl", false, "print the request as a curl command (always unmasked)")
	cmd.Flags().BoolVar(&lint, "lint", false, "validate the payload against the request schema")

	return cmd
}
