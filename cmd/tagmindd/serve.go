package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ferrylab/tagmind/internal/config"
	"github.com/ferrylab/tagmind/internal/events"
	"github.com/ferrylab/tagmind/internal/registry"
	"github.com/ferrylab/tagmind/internal/scanstore"
	"github.com/ferrylab/tagmind/internal/server"
	"github.com/ferrylab/tagmind/internal/snapshot"
)

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reg, err := registry.Load(cfg.RemindersFile)
	if err != nil {
		return fmt.Errorf("loading reminders: %w", err)
	}
	logger.Info("reminders loaded", "file", cfg.RemindersFile, "count", reg.Len())

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	// A provisioning store gets one entry per reminder seeded up front so
	// never-scanned reminders are visible to external consumers.
	if prov, ok := store.(scanstore.Provisioner); ok {
		for _, rem := range reg.Reminders() {
			if err := prov.Ensure(context.Background(), rem.Key()); err != nil {
				logger.Warn("failed to provision reminder state", "name", rem.Key(), "err", err)
			}
		}
	}

	srv := server.NewServer(reg, store, logger)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.NewHTTPHandler(cfg.AuthToken),
	}
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "err", err)
		}
	}()

	// Subscribe to tag-scan events when a bus is configured.
	var subCancel context.CancelFunc
	if cfg.NATSURL != "" {
		sub, err := events.NewNATSSubscriber(cfg.NATSURL)
		if err != nil {
			logger.Error("failed to connect to NATS", "url", cfg.NATSURL, "err", err)
		} else {
			var subCtx context.Context
			subCtx, subCancel = context.WithCancel(context.Background())
			go func() {
				if err := srv.StartScanSubscriber(subCtx, sub); err != nil {
					logger.Error("scan subscriber error", "err", err)
				}
				sub.Close()
			}()
			logger.Info("scan bus enabled", "nats_url", cfg.NATSURL)
		}
	} else {
		logger.Info("scan bus disabled (TAGMIND_NATS_URL not set)")
	}

	// Start the snapshot scheduler if an interval and destination are set.
	var scheduler *snapshot.Scheduler
	if cfg.SnapshotInterval > 0 {
		var dests []snapshot.Destination
		if cfg.SnapshotS3Bucket != "" {
			s3Dest, err := snapshot.NewS3Destination(
				context.Background(),
				cfg.SnapshotS3Bucket,
				cfg.SnapshotS3Key,
				cfg.SnapshotS3Region,
				cfg.SnapshotS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 snapshot destination", "err", err)
			} else {
				dests = append(dests, s3Dest)
				logger.Info("snapshot S3 destination enabled", "bucket", cfg.SnapshotS3Bucket, "key", cfg.SnapshotS3Key)
			}
		}
		if len(dests) > 0 {
			scheduler = snapshot.NewScheduler(reg, store, dests, cfg.SnapshotInterval, logger)
			scheduler.Start()
			logger.Info("snapshot scheduler started", "interval", cfg.SnapshotInterval)
		}
	}

	logger.Info("tagmindd started", "http_addr", cfg.HTTPAddr, "store", string(cfg.Store))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig)

	if subCancel != nil {
		subCancel()
		logger.Info("scan subscriber stopped")
	}
	if scheduler != nil {
		scheduler.Stop()
		logger.Info("snapshot scheduler stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "err", err)
	}
	logger.Info("HTTP server stopped")

	if err := store.Close(); err != nil {
		logger.Error("error closing store", "err", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// openStore builds the scan record backend selected by TAGMIND_STORE.
func openStore(cfg *config.Config, logger *slog.Logger) (scanstore.Store, error) {
	switch cfg.Store {
	case config.StoreFile:
		return scanstore.NewFileStore(cfg.StoreFile, logger)
	case config.StoreExternal:
		return scanstore.NewExternalStore(cfg.StateURL, cfg.StateToken), nil
	case config.StorePostgres:
		return scanstore.NewPostgresStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store mode %q", cfg.Store)
	}
}
