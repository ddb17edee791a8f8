package application

import (
	"fmt"
	"log/slog"

	"mvvmkit-go/core/dispatch"
	"mvvmkit-go/core/eventbus"
	"mvvmkit-go/infrastructure/config"
)

// NewDispatcher builds the dispatcher selected by cfg for one context.
// The returned queue is non-nil in queue mode; the host must Flush it once
// per frame.
func NewDispatcher(cfg config.DispatcherConfig, bus eventbus.EventBus, contextID string, logger *slog.Logger) (dispatch.Dispatcher, *dispatch.Queue, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		base  dispatch.Dispatcher
		queue *dispatch.Queue
	)
	switch cfg.Mode {
	case config.ModeImmediate, "":
		base = dispatch.Immediate{}
	case config.ModeQueue:
		queue = dispatch.NewQueue(&dispatch.QueueConfig{
			Buffer: cfg.QueueSize,
			Logger: logger,
		})
		base = queue
	default:
		return nil, nil, fmt.Errorf("unknown dispatcher mode %q", cfg.Mode)
	}

	mws := []dispatch.Middleware{dispatch.WithEvents(bus, contextID)}
	if cfg.LogCommands {
		mws = append(mws, dispatch.WithLogging(logger.With("context_id", contextID)))
	}
	return dispatch.Chain(base, mws...), queue, nil
}
