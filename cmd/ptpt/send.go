package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/compiler"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/event"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/metrics"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/eventbus"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/history"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/transport"
)

func sendCmd() *cobra.Command {
	var f sessionFlags
	var endpoint string
	var lint, showCurl bool

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Compile a request and dispatch it to the payment API",
		Long: `Send compiles the effective payload for the selected profile and
scenario and dispatches it. The console shows the masked payload; the
wire carries the real values. Every dispatch is recorded in the request
history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			bus := eventbus.NewInMemoryBus()
			counters := &metrics.Counters{}

			coord, prof, err := a.newSession(&f, bus, counters)
			if err != nil {
				return err
			}

			headers, err := coord.RequestHeaders()
			if err != nil {
				return err
			}
			doc := coord.EffectivePayload()

			if lint {
				if err := compiler.Lint(doc, coord.Scenario(), coord.Options()); err != nil {
					return fmt.Errorf("lint: %w", err)
				}
			}

			if endpoint == "" {
				endpoint = transport.Endpoint(a.cfg.BaseURL)
			}

			repo, closeDB, err := a.openHistory()
			if err != nil {
				return err
			}
			defer closeDB()

			dispatcher := transport.NewDispatcher(
				transport.NewHTTPClient(a.cfg.Timeout()),
				bus,
				&history.Recorder{Repo: repo},
				a.logger,
				counters,
				a.cfg.MaxRetries,
				transport.Backoff{Base: time.Second, Max: 30 * time.Second},
			)

			out := cmd.OutOrStdout()

			if showCurl {
				command, err := transport.CurlCommand(endpoint, headers, doc)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, command)
				fmt.Fprintln(out)
			}

			coord.SetPrivacy(true)
			fmt.Fprintf(out, "POST %s\n%s\n\n", endpoint, coord.PayloadText())

			done := make(chan struct{})
			var sendErr error

			bus.Subscribe(event.ResponseReceived, func(evt event.Event) error {
				resp, ok := evt.Payload.(event.ResponseReceivedPayload)
				if !ok {
					return errors.New("invalid payload for ResponseReceived")
				}
				fmt.Fprintf(out, "HTTP %d (%s) in %dms\n%s\n", resp.StatusCode, resp.Class, resp.DurationMs, resp.Body)
				if resp.RedirectURL != "" {
					fmt.Fprintf(out, "\n3DS redirect: %s\n", resp.RedirectURL)
				}
				close(done)
				return nil
			})

			bus.Subscribe(event.RequestFailed, func(evt event.Event) error {
				fail, ok := evt.Payload.(event.RequestFailedPayload)
				if !ok {
					return errors.New("invalid payload for RequestFailed")
				}
				fmt.Fprintf(out, "attempt %d failed: %s\n", fail.Attempt, fail.Reason)
				if fail.Final {
					sendErr = fmt.Errorf("request failed after %d attempts: %s", fail.Attempt, fail.Reason)
					close(done)
				}
				return nil
			})

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			go dispatcher.Run(ctx)

			if _, err := dispatcher.Enqueue(transport.Request{
				Profile:  prof.Key(),
				Scenario: string(coord.Scenario()),
				Endpoint: endpoint,
				Headers:  headers,
				Payload:  doc,
			}); err != nil {
				return err
			}

			select {
			case <-done:
				return sendErr
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "full endpoint URL (default: base URL + /ws/direct)")
	cmd.Flags().BoolVar(&lint, "lint", false, "validate the payload against the request schema before sending")
	cmd.Flags().BoolVar(&showCurl, "curl", false, "print the request as a curl command before sending")

	return cmd
}
