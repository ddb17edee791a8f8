package dispatch

import (
	"log/slog"
	"time"

	"mvvmkit-go/core/command"
	"mvvmkit-go/core/event"
	"mvvmkit-go/core/eventbus"
)

// WithLogging logs each dispatched command and its outcome.
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Dispatcher) Dispatcher {
		return Func(func(cmd command.Executable, arg any) error {
			start := time.Now()
			err := next.ExecuteCommand(cmd, arg)
			if err != nil {
				logger.Warn("Command failed", "command", cmd.Name(), "error", err)
				return err
			}
			logger.Debug("Command dispatched", "command", cmd.Name(), "elapsed", time.Since(start))
			return nil
		})
	}
}

// WithEvents publishes CommandDispatched or CommandFailed for each command.
// Over a Queue, CommandDispatched means the command was enqueued.
func WithEvents(bus eventbus.EventBus, contextID string) Middleware {
	return func(next Dispatcher) Dispatcher {
		if bus == nil {
			return next
		}
		return Func(func(cmd command.Executable, arg any) error {
			start := time.Now()
			err := next.ExecuteCommand(cmd, arg)
			if err != nil {
				bus.Publish(event.NewCommandFailed(contextID, cmd.Name(), err))
				return err
			}
			bus.Publish(event.NewCommandDispatched(contextID, cmd.Name(), arg, time.Since(start)))
			return nil
		})
	}
}
