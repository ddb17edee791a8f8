package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"mvvmkit-go/core/command"
)

// Common errors for queued dispatch.
var (
	ErrQueueFull   = errors.New("command queue full")
	ErrQueueClosed = errors.New("command queue closed")
)

type request struct {
	cmd command.Executable
	arg any
}

// Queue defers commands until the host loop calls Flush. Commands run in
// enqueue order on the goroutine that flushes.
type Queue struct {
	requests chan request
	closed   atomic.Bool
	logger   *slog.Logger
}

// QueueConfig holds configuration for a Queue.
type QueueConfig struct {
	Buffer int
	Logger *slog.Logger
}

// NewQueue creates a command queue.
func NewQueue(cfg *QueueConfig) *Queue {
	if cfg == nil {
		cfg = &QueueConfig{}
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 100
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Queue{
		requests: make(chan request, cfg.Buffer),
		logger:   cfg.Logger.With("component", "dispatch_queue"),
	}
}

// ExecuteCommand enqueues cmd. The command's own error surfaces from Flush.
func (q *Queue) ExecuteCommand(cmd command.Executable, arg any) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}

	select {
	case q.requests <- request{cmd: cmd, arg: arg}:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrQueueFull, cmd.Name())
	}
}

// Pending returns the number of queued commands.
func (q *Queue) Pending() int {
	return len(q.requests)
}

// Flush runs every command queued before the call. Commands enqueued while
// flushing wait for the next Flush. Failures do not stop the flush; they are
// joined into the returned error.
func (q *Queue) Flush() error {
	n := len(q.requests)
	var errs []error

	for i := 0; i < n; i++ {
		req := <-q.requests
		if err := req.cmd.ExecuteParameter(req.arg); err != nil {
			q.logger.Debug("Queued command failed", "command", req.cmd.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", req.cmd.Name(), err))
		}
	}

	return errors.Join(errs...)
}

// Close stops accepting commands. Already queued commands still run on the
// next Flush.
func (q *Queue) Close() {
	q.closed.Store(true)
}
