package tracker

import (
	"context"
	"fmt"
	"time"

	"mexctracker/config"
	"mexctracker/internal/notify"
	"mexctracker/internal/statestore"
	"mexctracker/pkg/exchange"
	"mexctracker/pkg/storage/postgres"

	"go.uber.org/zap"
)

// Status snapshots go out every 6 hours regardless of the check interval.
const statusInterval = 6 * time.Hour

// StartTracker wires the pipeline and starts both schedules: the check
// cycle every update_interval and the status snapshot every 6 hours. The
// first check runs immediately, preceded by a startup notification.
func StartTracker(cfg *config.Config, logger *zap.Logger) error {
	store := statestore.New(cfg.Tracker.StateFile, logger)
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to init state store: %w", err)
	}

	notifier, err := notify.NewTelegramNotifier(cfg.Telegram, logger)
	if err != nil {
		return fmt.Errorf("failed to create telegram notifier: %w", err)
	}

	// Optional DB mirror for the tracking history
	var events EventSink
	if cfg.Postgres.Enabled {
		pgClient, err := postgres.InitializeAndMigrateEventRecord(cfg.Postgres, cfg.Log.Environment, true)
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		events = pgClient
	}

	timeout := cfg.Exchanges.Timeout
	primary := exchange.NewMEXCClient(cfg.Exchanges.MEXCBaseURL, timeout)
	references := []exchange.Fetcher{
		exchange.NewBinanceClient(cfg.Exchanges.BinanceBaseURL, timeout),
		exchange.NewBybitClient(cfg.Exchanges.BybitBaseURL, timeout),
		exchange.NewBitgetClient(cfg.Exchanges.BitgetBaseURL, timeout),
		exchange.NewGateClient(cfg.Exchanges.GateBaseURL, timeout),
		exchange.NewOKXClient(cfg.Exchanges.OKXBaseURL, timeout),
	}

	checker := NewChecker(primary, references, store, notifier, events, timeout, logger)

	ctx := context.Background()
	notifier.Send(ctx, notify.StartupMessage(cfg.Tracker.UpdateInterval), false)

	check := &IntervalRunner{
		Interval:  cfg.Tracker.UpdateInterval,
		Immediate: true,
		Job:       checker.RunCycle,
	}
	check.Start(ctx)

	status := &IntervalRunner{
		Interval: statusInterval,
		Job:      checker.RunStatus,
	}
	status.Start(ctx)

	logger.Info("tracker started",
		zap.Duration("update_interval", cfg.Tracker.UpdateInterval),
		zap.String("state_file", cfg.Tracker.StateFile),
		zap.Bool("db_mirror", cfg.Postgres.Enabled))

	return nil
}
