package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers for the console's session store.`,
}

var sessionWorkerCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Purge expired console sessions",
	Long:  `Periodically delete sessions past their expiry from the database session store`,
	Run: func(cmd *cobra.Command, args []string) {
		startSessionWorker()
	},
}

var (
	janitorInterval time.Duration
	janitorOnce     bool
)

func startSessionWorker() {
	config, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !config.Database.Enabled() {
		fmt.Fprintln(os.Stderr, "worker sessions needs database.source; in-memory sessions are purged by the server itself")
		os.Exit(1)
	}

	logger := initLogger(config)

	repo, closeStore, err := openSessionRepository(config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	svc := session.NewService(repo, nil, config.Security.SessionTTL, logger)

	if janitorOnce {
		n, err := svc.PurgeExpired(context.Background())
		if err != nil {
			logger.Error("session purge failed", "error", err)
			os.Exit(1)
		}
		logger.Info("session purge complete", "purged", n)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		session.RunJanitor(ctx, svc, janitorInterval, logger)
		close(done)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("session worker is running. Press Ctrl+C to stop.")

	// wait for shutdown signal
	sig := <-sigChan
	logger.Info("received signal, shutting down session worker", "signal", sig)
	cancel()

	select {
	case <-done:
		logger.Info("session worker shutdown complete")
	case <-time.After(30 * time.Second):
		logger.Warn("shutdown timeout reached, forcing exit")
	}
}

func init() {
	sessionWorkerCmd.Flags().DurationVar(&janitorInterval, "interval", time.Minute, "purge interval")
	sessionWorkerCmd.Flags().BoolVar(&janitorOnce, "once", false, "purge once and exit")

	workerCmd.AddCommand(sessionWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
