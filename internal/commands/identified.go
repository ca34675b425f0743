package commands

import (
	"context"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
	"github.com/yungbote/ordering-backend/internal/observability"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

// IdentifiedCommand wraps a command with the client-supplied request id that
// makes it safe to retry. The wrapped command keeps its own name; the id is
// transport metadata, not part of the command.
type IdentifiedCommand[C Command] struct {
	Command   C
	RequestID uuid.UUID
}

func (ic IdentifiedCommand[C]) CommandName() string {
	return ic.Command.CommandName()
}

// RequestStore answers whether a request id has already been processed.
type RequestStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// InnerHandler executes the wrapped command. The request id is threaded
// through so the aggregate can record the dedup row inside its transaction.
type InnerHandler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C, requestID uuid.UUID) (R, error)
}

// InnerHandlerFunc adapts a function to InnerHandler.
type InnerHandlerFunc[C Command, R any] func(ctx context.Context, cmd C, requestID uuid.UUID) (R, error)

func (f InnerHandlerFunc[C, R]) Handle(ctx context.Context, cmd C, requestID uuid.UUID) (R, error) {
	return f(ctx, cmd, requestID)
}

// IdentifiedHandler enforces at-most-once execution per request id.
//
// A request id seen before returns the zero result with no error: the
// original effects already committed and the caller only needs an ack.
// The pre-check is an optimization; the authoritative guard is the dedup
// row the aggregate inserts in the same transaction as its writes, so a
// race between concurrent retries resolves to exactly one winner.
type IdentifiedHandler[C Command, R any] struct {
	inner   InnerHandler[C, R]
	store   RequestStore
	metrics *observability.Metrics
	log     *logger.Logger
}

func NewIdentifiedHandler[C Command, R any](inner InnerHandler[C, R], store RequestStore, metrics *observability.Metrics, baseLog *logger.Logger) *IdentifiedHandler[C, R] {
	var log *logger.Logger
	if baseLog != nil {
		var zero C
		log = baseLog.With("component", "IdentifiedHandler", "command", zero.CommandName())
	}
	return &IdentifiedHandler[C, R]{
		inner:   inner,
		store:   store,
		metrics: metrics,
		log:     log,
	}
}

func (h *IdentifiedHandler[C, R]) Handle(ctx context.Context, ic IdentifiedCommand[C]) (R, error) {
	var zero R
	if ic.RequestID == uuid.Nil {
		return zero, domainagg.NewError(domainagg.CodeValidation, ic.CommandName(), "missing request id", nil)
	}
	if h.inner == nil || h.store == nil {
		return zero, domainagg.NewError(domainagg.CodeInternal, ic.CommandName(), "identified handler not configured", nil)
	}

	seen, err := h.store.Exists(ctx, ic.RequestID)
	if err != nil {
		return zero, err
	}
	if seen {
		h.observeDuplicate(ic)
		return zero, nil
	}

	out, err := h.inner.Handle(ctx, ic.Command, ic.RequestID)
	if err == nil {
		return out, nil
	}

	// A conflict can mean a concurrent retry won the dedup insert. If the
	// request id is recorded now, treat this run as a replay.
	if domainagg.IsCode(err, domainagg.CodeConflict) {
		if seen, checkErr := h.store.Exists(ctx, ic.RequestID); checkErr == nil && seen {
			h.observeDuplicate(ic)
			return zero, nil
		}
	}
	return zero, err
}

// RegisterIdentified wraps the inner handler with replay protection and
// registers it on the bus under the wrapped command's name.
func RegisterIdentified[C Command, R any](b *Bus, inner InnerHandler[C, R], store RequestStore, metrics *observability.Metrics, baseLog *logger.Logger) error {
	var h Handler[IdentifiedCommand[C], R] = NewIdentifiedHandler(inner, store, metrics, baseLog)
	return Register(b, h)
}

func (h *IdentifiedHandler[C, R]) observeDuplicate(ic IdentifiedCommand[C]) {
	if h.metrics != nil {
		h.metrics.IncDuplicateRequest(ic.CommandName())
	}
	if h.log != nil {
		h.log.Info("duplicate request ignored", "request_id", ic.RequestID)
	}
}
