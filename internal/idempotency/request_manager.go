package idempotency

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ordering-backend/internal/data/repos"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

// RequestManager answers "has this request id been processed" for the
// identified command path and owns dedup row retention. Recording a new id
// is not done here: the aggregate inserts the row inside its own write
// transaction so the record and the effects commit atomically.
type RequestManager struct {
	requests  repos.ClientRequestRepo
	retention time.Duration
	log       *logger.Logger
}

// NewRequestManager creates a manager. A zero retention keeps dedup rows
// forever; replays then stay acknowledged for the lifetime of the store.
func NewRequestManager(requests repos.ClientRequestRepo, retention time.Duration, baseLog *logger.Logger) *RequestManager {
	var log *logger.Logger
	if baseLog != nil {
		log = baseLog.With("component", "RequestManager")
	}
	return &RequestManager{
		requests:  requests,
		retention: retention,
		log:       log,
	}
}

// Exists reports whether the request id was already processed.
func (m *RequestManager) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m == nil || m.requests == nil || id == uuid.Nil {
		return false, nil
	}
	return m.requests.Exists(dbctx.Context{Ctx: ctx}, id)
}

// PurgeExpired deletes dedup rows older than the retention window. A request
// id retried after its row was purged re-executes; retention must be chosen
// longer than any realistic client retry horizon.
func (m *RequestManager) PurgeExpired(ctx context.Context) (int64, error) {
	if m == nil || m.requests == nil || m.retention <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-m.retention)
	return m.requests.DeleteOlderThan(dbctx.Context{Ctx: ctx}, cutoff)
}

// StartJanitor purges expired dedup rows on the given interval until the
// context is cancelled. No-op when retention is disabled.
func (m *RequestManager) StartJanitor(ctx context.Context, interval time.Duration) {
	if m == nil || m.requests == nil || m.retention <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := m.PurgeExpired(ctx)
				if err != nil {
					if m.log != nil {
						m.log.Warn("client request purge failed", "error", err)
					}
					continue
				}
				if n > 0 && m.log != nil {
					m.log.Info("purged expired client requests", "deleted", n)
				}
			}
		}
	}()
}
