package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tally/internal/amqp"
	"tally/internal/config"
	"tally/internal/export/sheets"
	apphttp "tally/internal/http"
	"tally/internal/ingest"
	"tally/internal/ledger"
	applog "tally/internal/log"
	"tally/internal/store"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server (same configuration as the tally binary)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunServe(cmd.Context())
		},
	}
}

// RunServe is the full server wiring; cmd/tally uses it directly.
func RunServe(ctx context.Context) error {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	st, err := store.Open(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := st.PruneSnapshots(ctx, cfg.SnapshotsKept); err != nil {
		logger.Warn("Snapshot pruning failed", "error", err)
	}

	var pub ledger.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return fmt.Errorf("connecting to AMQP: %w", err)
		}
		defer amqpClient.Close()
		pub = amqpClient
	}

	led := ledger.New(st, pub)
	led.Restore(ctx)

	var exporter apphttp.TotalsExporter
	if cfg.GoogleSpreadsheetID != "" {
		cli, err := sheets.NewFromEnv(ctx)
		if err != nil {
			return fmt.Errorf("initializing sheets exporter: %w", err)
		}
		exporter = cli
	}

	cols := ingest.Columns{
		Date:        cfg.CSVDateColumn,
		Amount:      cfg.CSVAmountColumn,
		Description: cfg.CSVDescriptionColumn,
	}
	srv := apphttp.NewServer(":"+cfg.Port, led, cols, exporter)
	srv.Handler = applog.Middleware(logger.WithComponent(applog.ComponentHTTP))(srv.Handler)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting tally server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
		case <-gctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
