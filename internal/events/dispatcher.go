package events

import (
	"context"
	"time"

	"github.com/yungbote/ordering-backend/internal/data/repos"
	"github.com/yungbote/ordering-backend/internal/observability"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

// Dispatcher drains the outbox: it claims pending rows, publishes them and
// marks the result. Delivery is at least once; consumers dedup on event_id.
type Dispatcher struct {
	outbox    repos.IntegrationEventRepo
	publisher Publisher
	metrics   *observability.Metrics
	log       *logger.Logger

	interval     time.Duration
	batchSize    int
	staleTimeout time.Duration
	maxAttempts  int
}

type DispatcherConfig struct {
	Interval     time.Duration
	BatchSize    int
	StaleTimeout time.Duration
	MaxAttempts  int
}

func NewDispatcher(outbox repos.IntegrationEventRepo, publisher Publisher, metrics *observability.Metrics, baseLog *logger.Logger, cfg DispatcherConfig) *Dispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.StaleTimeout <= 0 {
		cfg.StaleTimeout = 5 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	var log *logger.Logger
	if baseLog != nil {
		log = baseLog.With("component", "OutboxDispatcher")
	}
	return &Dispatcher{
		outbox:       outbox,
		publisher:    publisher,
		metrics:      metrics,
		log:          log,
		interval:     cfg.Interval,
		batchSize:    cfg.BatchSize,
		staleTimeout: cfg.StaleTimeout,
		maxAttempts:  cfg.MaxAttempts,
	}
}

// Run drains the outbox until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	if d == nil || d.outbox == nil || d.publisher == nil {
		return nil
	}
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.drainOnce(ctx)
		}
	}
}

// DrainOnce processes a single batch; exposed for tests and manual flushes.
func (d *Dispatcher) DrainOnce(ctx context.Context) int {
	return d.drainOnce(ctx)
}

func (d *Dispatcher) drainOnce(ctx context.Context) int {
	dbc := dbctx.Context{Ctx: ctx}

	if n, err := d.outbox.ReclaimStale(dbc, d.staleTimeout); err != nil {
		if d.log != nil {
			d.log.Warn("outbox reclaim failed", "error", err)
		}
	} else if n > 0 && d.log != nil {
		d.log.Info("reclaimed stale outbox rows", "count", n)
	}

	rows, err := d.outbox.ClaimPending(dbc, d.batchSize)
	if err != nil {
		if d.log != nil {
			d.log.Warn("outbox claim failed", "error", err)
		}
		return 0
	}

	published := 0
	for _, row := range rows {
		start := time.Now()
		if err := d.publisher.Publish(ctx, row); err != nil {
			status := "retry"
			if row.Attempts >= d.maxAttempts {
				status = "failed"
				if markErr := d.outbox.MarkFailed(dbc, row.ID, err.Error()); markErr != nil && d.log != nil {
					d.log.Warn("outbox mark failed errored", "event_id", row.ID, "error", markErr)
				}
			}
			// Below the attempt cap the row stays in publishing and is
			// reclaimed to pending after the stale timeout.
			if d.metrics != nil {
				d.metrics.ObserveOutboxPublish(row.EventType, status, time.Since(start))
			}
			if d.log != nil {
				d.log.Warn("outbox publish failed", "event_id", row.ID, "event_type", row.EventType, "attempts", row.Attempts, "error", err)
			}
			continue
		}
		if err := d.outbox.MarkPublished(dbc, row.ID); err != nil {
			if d.log != nil {
				d.log.Warn("outbox mark published errored", "event_id", row.ID, "error", err)
			}
			continue
		}
		published++
		if d.metrics != nil {
			d.metrics.ObserveOutboxPublish(row.EventType, "published", time.Since(start))
		}
	}
	return published
}
