package commands

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

// Command is a request to mutate exactly one aggregate. Commands are named
// so the bus can route them and the dedup ledger can record what ran.
type Command interface {
	CommandName() string
}

// Handler processes one command type and returns its result.
type Handler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[C Command, R any] func(ctx context.Context, cmd C) (R, error)

func (f HandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

// Bus routes commands to their registered handler by command name.
// Registration happens once during wiring; Send is safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]any
	log      *logger.Logger
}

func NewBus(baseLog *logger.Logger) *Bus {
	var log *logger.Logger
	if baseLog != nil {
		log = baseLog.With("component", "CommandBus")
	}
	return &Bus{
		handlers: map[string]any{},
		log:      log,
	}
}

// Register binds the handler for command type C. The name is taken from the
// zero value, so CommandName must not depend on field values.
func Register[C Command, R any](b *Bus, h Handler[C, R]) error {
	if b == nil {
		return fmt.Errorf("commands: nil bus")
	}
	if h == nil {
		return fmt.Errorf("commands: nil handler")
	}
	var zero C
	name := strings.TrimSpace(zero.CommandName())
	if name == "" {
		return fmt.Errorf("commands: empty command name for %T", zero)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.handlers[name]; dup {
		return fmt.Errorf("commands: handler already registered for %q", name)
	}
	b.handlers[name] = h
	if b.log != nil {
		b.log.Debug("command handler registered", "command", name)
	}
	return nil
}

// Send dispatches the command to its handler and returns the typed result.
func Send[C Command, R any](ctx context.Context, b *Bus, cmd C) (R, error) {
	var zero R
	if b == nil {
		return zero, fmt.Errorf("commands: nil bus")
	}
	name := strings.TrimSpace(cmd.CommandName())
	b.mu.RLock()
	raw, ok := b.handlers[name]
	b.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("commands: no handler registered for %q", name)
	}
	h, ok := raw.(Handler[C, R])
	if !ok {
		return zero, fmt.Errorf("commands: handler for %q has mismatched types", name)
	}
	return h.Handle(ctx, cmd)
}
