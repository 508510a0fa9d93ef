package tracker

import (
	"context"
	"time"
)

// IntervalRunner schedules a job on a fixed interval. No jitter and no
// catch-up on missed ticks: a late job simply runs at the next tick.
type IntervalRunner struct {
	Interval time.Duration
	// Immediate runs the job once right away, before the first tick.
	Immediate bool
	Job       func(context.Context)
}

func (r *IntervalRunner) Start(ctx context.Context) {
	go func() {
		if r.Immediate {
			r.Job(ctx)
		}

		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.Job(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}
