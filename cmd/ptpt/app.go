package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/config"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/logging"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/catalog"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/history"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/persistence/jsonfile"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infrastructure/persistence/sqlite"
)

// app bundles the collaborators every command wires up the same way:
// loaded config, the structured logger and the stores under the data
// directory.
type app struct {
	cfg     config.Config
	cfgPath string
	logger  logging.Logger

	logFile *logging.FileLogger
}

func newApp(cmd *cobra.Command) (*app, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		// corrupt config: warn and continue on defaults
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	a := &app{cfg: cfg, cfgPath: path}

	if cfg.LogFile != "" {
		fl, err := logging.NewFileLogger(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		a.logFile = fl
		a.logger = fl
	} else {
		a.logger = logging.NewStderrLogger()
	}

	return a, nil
}

func (a *app) Close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func (a *app) store() *jsonfile.Store {
	return jsonfile.NewStore(a.cfg.DataDir, a.logger)
}

func (a *app) catalog() *catalog.Catalog {
	return catalog.New(a.cfg.DataDir, a.logger)
}

// openHistory opens the request-history database, creating the file and
// schema as needed. The returned close func must be deferred.
func (a *app) openHistory() (*history.SQLiteRepository, func() error, error) {
	if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sqlite.Open(a.cfg.HistoryPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open history db: %w", err)
	}
	if err := sqlite.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate history db: %w", err)
	}

	return history.NewSQLiteRepository(db), db.Close, nil
}
