package sim

import (
	"context"
	"fmt"
	"log/slog"
)

// A LogHook is a hook that is responsible for recording information from the
// simulation
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks
type LogHookBase struct {
	*slog.Logger
}

// EventLogger is a LogHook that writes every hook invocation as one
// structured record.
type EventLogger struct {
	LogHookBase
	level slog.Level
}

// NewEventLogger returns an EventLogger that writes through the given logger
// at the given level.
func NewEventLogger(logger *slog.Logger, level slog.Level) *EventLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &EventLogger{
		LogHookBase: LogHookBase{Logger: logger},
		level:       level,
	}
}

// Func logs the hook position, the domain and the hooked item.
func (h *EventLogger) Func(ctx HookCtx) {
	if !h.Enabled(context.Background(), h.level) {
		return
	}

	attrs := []any{slog.String("pos", ctx.Pos.Name)}

	if named, ok := ctx.Domain.(Named); ok {
		attrs = append(attrs, slog.String("where", named.Name()))
	}

	if ctx.Item != nil {
		attrs = append(attrs, slog.String("item", fmt.Sprintf("%+v", ctx.Item)))
	}

	if ctx.Detail != nil {
		attrs = append(attrs,
			slog.String("detail", fmt.Sprintf("%+v", ctx.Detail)))
	}

	h.Log(context.Background(), h.level, "hook", attrs...)
}
