package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"orderpulse.app/pulse/common/id"
	"orderpulse.app/pulse/common/logger"
	"orderpulse.app/pulse/core/config"
	"orderpulse.app/pulse/core/db"
	"orderpulse.app/pulse/internal/queue"
	"orderpulse.app/pulse/internal/store"
	"orderpulse.app/pulse/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)
	logger.Setup(cfg)

	slog.InfoContext(ctx, "pulse worker starting",
		"env", cfg.Env,
		"lanes", cfg.Lanes.Count,
		"consumer_group", cfg.Lanes.Group,
		"consumer_name", cfg.Lanes.Consumer)

	// Different node ID than the server so event IDs never collide
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Lanes.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream_prefix", cfg.Lanes.StreamPrefix)

	stores := store.NewStores(database.Queries())

	// One writer and one reclaimer per lane. Writers are independent, so a
	// stuck lane only delays its own orders.
	var (
		writers    []*worker.Writer
		reclaimers []*worker.RedisReclaimer
	)
	errCh := make(chan error, cfg.Lanes.Count*2)

	for lane := 0; lane < cfg.Lanes.Count; lane++ {
		stream := queue.LaneStream(cfg.Lanes.StreamPrefix, lane)

		consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
			Stream:       stream,
			Group:        cfg.Lanes.Group,
			Consumer:     fmt.Sprintf("%s-%d", cfg.Lanes.Consumer, lane),
			DLQStream:    cfg.Lanes.DLQStream,
			BatchSize:    64,
			Block:        5 * time.Second,
			MaxAttempts:  3,
			RequeueDelay: time.Second,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create consumer", "error", err, "lane", lane)
			os.Exit(1)
		}

		w := worker.New(consumer, stores.Events(), lane, worker.Config{
			MaxAttempts: 3,
		})
		writers = append(writers, w)

		reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
			Stream:    stream,
			Group:     cfg.Lanes.Group,
			Consumer:  fmt.Sprintf("%s-%d-reclaimer", cfg.Lanes.Consumer, lane),
			MinIdle:   5 * time.Minute,
			Interval:  1 * time.Minute,
			BatchSize: 10,
		}, consumer, w.ProcessMessage)
		reclaimers = append(reclaimers, reclaimer)

		go func(w *worker.Writer) {
			errCh <- w.Run(ctx)
		}(w)
		go func(r *worker.RedisReclaimer) {
			r.Run(ctx)
			errCh <- nil
		}(reclaimer)
	}

	slog.InfoContext(ctx, "log writers initialized and running", "lanes", cfg.Lanes.Count)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Stop reclaimers first (quick)
	for _, r := range reclaimers {
		r.Stop()
	}

	// Stop writers (may be mid-batch)
	for _, w := range writers {
		w.Stop()
	}

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case err := <-errCh:
		if err != nil {
			slog.ErrorContext(ctx, "writer error during shutdown", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
██████╗ ██╗   ██╗██╗     ███████╗███████╗    ██╗    ██╗██████╗ ██╗████████╗███████╗██████╗
██╔══██╗██║   ██║██║     ██╔════╝██╔════╝    ██║    ██║██╔══██╗██║╚══██╔══╝██╔════╝██╔══██╗
██████╔╝██║   ██║██║     ███████╗█████╗      ██║ █╗ ██║██████╔╝██║   ██║   █████╗  ██████╔╝
██╔═══╝ ██║   ██║██║     ╚════██║██╔══╝      ██║███╗██║██╔══██╗██║   ██║   ██╔══╝  ██╔══██╗
██║     ╚██████╔╝███████╗███████║███████╗    ╚███╔███╔╝██║  ██║██║   ██║   ███████╗██║  ██║
╚═╝      ╚═════╝ ╚══════╝╚══════╝╚══════╝     ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝   ╚═╝   ╚══════╝╚═╝  ╚═╝
`
