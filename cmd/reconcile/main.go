// Command reconcile runs one engagement reconciliation pass: it fixes drifted
// like and save counters and prunes engagement rows whose document store
// target no longer exists. It is the on-demand counterpart of the worker's
// scheduled job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/heartmarshall/eventhub-backend/internal/app"
	"github.com/heartmarshall/eventhub-backend/internal/config"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup completes before the
// process exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Worker.JobTimeout)
	defer cancel()

	infra, err := app.Connect(ctx, cfg)
	if err != nil {
		logger.Error("connect", slog.String("error", err.Error()))
		return 1
	}
	defer infra.Close(context.Background())

	svcs := app.NewServices(logger, cfg, infra.Pool, app.NewDocumentStores(logger, infra.DocStore, infra.Redis, cfg))

	report, err := svcs.Engagement.Reconcile(ctx)
	if err != nil {
		logger.Error("reconcile failed", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("reconcile completed",
		slog.Int("events_corrected", report.EventsCorrected),
		slog.Int("external_pruned", report.ExternalPruned),
		slog.Int("external_failures", report.ExternalFailures),
	)
	return 0
}
