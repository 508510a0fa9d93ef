package tracker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"mexctracker/internal/notify"
	"mexctracker/internal/statestore"
	"mexctracker/pkg/exchange"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// EventSink mirrors tracking events to an external store. Mirroring is
// best-effort; the JSON aggregate stays the record of truth.
type EventSink interface {
	RecordEvent(ctx context.Context, symbol, event string, detectedAt time.Time) error
}

// Checker runs one full check cycle: fetch all venues, resolve the unique
// set, diff it against the persisted one, persist, notify.
type Checker struct {
	primary    exchange.Fetcher
	references []exchange.Fetcher
	store      *statestore.Store
	notifier   notify.Notifier
	// events is nil when the DB mirror is disabled
	events  EventSink
	timeout time.Duration
	logger  *zap.Logger

	inFlight atomic.Bool
}

func NewChecker(primary exchange.Fetcher, references []exchange.Fetcher,
	store *statestore.Store, notifier notify.Notifier, events EventSink,
	timeout time.Duration, logger *zap.Logger) *Checker {
	return &Checker{
		primary:    primary,
		references: references,
		store:      store,
		notifier:   notifier,
		events:     events,
		timeout:    timeout,
		logger:     logger,
	}
}

// RunCycle executes one check cycle. Overlapping invocations are skipped:
// if a cycle is still in flight when the next tick fires, the tick is a
// logged no-op. Any failure or panic is contained here; the process and the
// next scheduled cycle are unaffected.
func (c *Checker) RunCycle(ctx context.Context) {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Warn("previous check still in flight, skipping this tick")
		return
	}
	defer c.inFlight.Store(false)

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("check cycle panicked", zap.Any("panic", r))
			c.notifier.Send(ctx, notify.ErrorMessage(fmt.Sprint(r)), false)
		}
	}()

	if err := c.runCycle(ctx); err != nil {
		c.logger.Error("check cycle failed", zap.Error(err))
		c.notifier.Send(ctx, notify.ErrorMessage(err.Error()), false)
	}
}

func (c *Checker) runCycle(ctx context.Context) error {
	state := c.store.Load()
	previous := state.UniqueFutures

	var primarySymbols, referenceUnion []string
	for _, res := range c.fetchAll(ctx) {
		if res.Err != nil {
			// A failed reference venue degrades the union; a failed primary
			// leaves the primary set empty and Resolve fail-safes to empty.
			c.logger.Warn("venue fetch failed",
				zap.String("venue", res.Venue), zap.Error(res.Err))
			continue
		}
		c.logger.Info("fetched contracts",
			zap.String("venue", res.Venue), zap.Int("count", len(res.Symbols)))

		if res.Venue == c.primary.Name() {
			primarySymbols = res.Symbols
		} else {
			referenceUnion = append(referenceUnion, res.Symbols...)
		}
	}

	current := Resolve(primarySymbols, referenceUnion)

	added, removed := lo.Difference(current, previous)
	sort.Strings(added)
	sort.Strings(removed)

	now := time.Now()
	ts := statestore.Timestamp(now)

	state.Statistics.TotalUniqueFound += len(added)
	state.Statistics.TotalNotificationsSent += len(added) + len(removed)
	state.Statistics.LastRun = ts

	for _, symbol := range added {
		state.TrackingHistory = append(state.TrackingHistory, statestore.TrackingEvent{
			Symbol: symbol, Event: statestore.EventAdded, Timestamp: ts,
		})
	}
	for _, symbol := range removed {
		state.TrackingHistory = append(state.TrackingHistory, statestore.TrackingEvent{
			Symbol: symbol, Event: statestore.EventRemoved, Timestamp: ts,
		})
	}

	state.UniqueFutures = current
	state.LastUpdate = ts

	if err := c.store.Save(state); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}

	c.mirrorEvents(ctx, added, removed, now)

	switch {
	case len(added) > 0 || len(removed) > 0:
		if len(added) > 0 {
			c.notifier.Send(ctx, notify.AddedMessage(added, len(current)), false)
		}
		if len(removed) > 0 {
			c.notifier.Send(ctx, notify.RemovedMessage(removed, len(current)), false)
		}
	default:
		c.logger.Info("no change in unique futures", zap.Int("count", len(current)))
	}

	return nil
}

// fetchAll queries every venue concurrently and blocks until the slowest
// fetch completes or times out.
func (c *Checker) fetchAll(ctx context.Context) []exchange.Result {
	fetchers := append([]exchange.Fetcher{c.primary}, c.references...)
	results := make([]exchange.Result, len(fetchers))

	var wg sync.WaitGroup
	for i, f := range fetchers {
		wg.Add(1)
		go func(i int, f exchange.Fetcher) {
			defer wg.Done()

			fctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			symbols, err := f.FetchSymbols(fctx)
			results[i] = exchange.Result{Venue: f.Name(), Symbols: symbols, Err: err}
		}(i, f)
	}
	wg.Wait()

	return results
}

func (c *Checker) mirrorEvents(ctx context.Context, added, removed []string, detectedAt time.Time) {
	if c.events == nil {
		return
	}
	for _, symbol := range added {
		if err := c.events.RecordEvent(ctx, symbol, statestore.EventAdded, detectedAt); err != nil {
			c.logger.Warn("failed to mirror event to DB",
				zap.String("symbol", symbol), zap.Error(err))
		}
	}
	for _, symbol := range removed {
		if err := c.events.RecordEvent(ctx, symbol, statestore.EventRemoved, detectedAt); err != nil {
			c.logger.Warn("failed to mirror event to DB",
				zap.String("symbol", symbol), zap.Error(err))
		}
	}
}

// RunStatus sends a silent status snapshot built from the persisted state.
func (c *Checker) RunStatus(ctx context.Context) {
	state := c.store.Load()
	c.notifier.Send(ctx, notify.StatusMessage(state, time.Now()), true)
}
