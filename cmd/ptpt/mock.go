package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/mockapi"
)

func mockCmd() *cobra.Command {
	var addr string
	var approvalRate int
	var seed int64

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Run a local payment-API stub for offline use",
		Long: `Mock serves POST /ws/direct locally, answering with approved,
declined or 3DS-redirect responses. Point sends at it with
--endpoint or by setting base_url to the mock address.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if approvalRate < 0 || approvalRate > 100 {
				return fmt.Errorf("approval rate must be 0-100, got %d", approvalRate)
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			handler := &mockapi.DirectHandler{
				Simulator: mockapi.NewRandomSimulator(approvalRate, seed),
				Logger:    a.logger,
			}

			srv := &http.Server{
				Addr:    addr,
				Handler: mockapi.NewRouter(handler),
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			a.logger.Info("mock API listening", map[string]any{
				"addr":          addr,
				"approval-rate": approvalRate,
			})

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&approvalRate, "approval-rate", 70, "share of non-3DS requests approved, 0-100")
	cmd.Flags().Int64Var(&seed, "seed", 0, "simulator seed (0 = time-based)")

	return cmd
}
