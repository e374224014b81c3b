package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"orderpulse.app/pulse/common/logger"
	"orderpulse.app/pulse/core/config"
	"orderpulse.app/pulse/core/db"
	"orderpulse.app/pulse/internal/materializer"
	"orderpulse.app/pulse/internal/service"
	"orderpulse.app/pulse/internal/store"
	"orderpulse.app/pulse/internal/validator"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeMaterializer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)
	logger.Setup(cfg)

	slog.InfoContext(ctx, "pulse materializer starting",
		"env", cfg.Env,
		"interval", cfg.Materializer.Interval,
		"validator_interval", cfg.Validator.Interval)

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	m := materializer.New(service.NewTxRunner(database), nil)
	scheduler := materializer.NewScheduler(m, cfg.Materializer.Interval, nil)

	go scheduler.Run(ctx)

	// The validator reads outside the materializer's transaction, so it can
	// run off the shared pool without blocking cycles.
	var runner *validator.Runner
	if cfg.Validator.Interval > 0 {
		stores := store.NewStores(database.Queries())
		v := validator.New(stores.Events(), stores.Statuses(), nil)
		runner = validator.NewRunner(v, cfg.Validator.Interval, nil)
		go runner.Run(ctx)
	} else {
		slog.InfoContext(ctx, "scheduled validation disabled")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down materializer...")

	if runner != nil {
		runner.Stop()
	}
	// Stop drains any cycle still in flight before the deferred pool close.
	scheduler.Stop()

	slog.InfoContext(ctx, "materializer shutdown complete")
}

const banner = `
██████╗ ██╗   ██╗██╗     ███████╗███████╗    ███╗   ███╗ █████╗ ████████╗
██╔══██╗██║   ██║██║     ██╔════╝██╔════╝    ████╗ ████║██╔══██╗╚══██╔══╝
██████╔╝██║   ██║██║     ███████╗█████╗      ██╔████╔██║███████║   ██║
██╔═══╝ ██║   ██║██║     ╚════██║██╔══╝      ██║╚██╔╝██║██╔══██║   ██║
██║     ╚██████╔╝███████╗███████║███████╗    ██║ ╚═╝ ██║██║  ██║   ██║
╚═╝      ╚═════╝ ╚══════╝╚══════╝╚══════╝    ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝
`
