package main

import (
	"errors"
	"fmt"
	"log/slog"

	"mvvmkit-go/core/command"
	"mvvmkit-go/domain/scene"
	"mvvmkit-go/domain/viewmodel"
)

var errEmptyLabel = errors.New("label must not be empty")

// CounterViewModel is a labelled counter.
type CounterViewModel struct {
	viewmodel.Base
	Label string
	Count int
}

func (v *CounterViewModel) Snapshot() map[string]any {
	return map[string]any{"label": v.Label, "count": v.Count}
}

func (v *CounterViewModel) Restore(state map[string]any) error {
	if label, ok := state["label"].(string); ok {
		v.Label = label
	}
	// Stored documents may widen or narrow the integer.
	switch n := state["count"].(type) {
	case int:
		v.Count = n
	case int32:
		v.Count = int(n)
	case int64:
		v.Count = int(n)
	case float64:
		v.Count = int(n)
	case nil:
	default:
		return fmt.Errorf("count: unexpected %T", n)
	}
	return nil
}

// counterBinder binds the counter commands.
type counterBinder struct {
	logger *slog.Logger
}

func (counterBinder) CreateEmpty() viewmodel.ViewModel {
	return &CounterViewModel{}
}

func (b counterBinder) Initialize(vm viewmodel.ViewModel) {
	cv := vm.(*CounterViewModel)
	if cv.Label == "" {
		cv.Label = cv.Identifier()
	}

	increment := command.NewArgumentWith(1, func(n int) error {
		cv.Count += n
		return nil
	}).Named("Increment").Guard(func(n int) bool { return n > 0 })
	increment.OnExecuted(func() {
		b.logger.Debug("Counter incremented", "identifier", cv.Identifier(), "count", cv.Count)
	})

	cv.BindCommand("Increment", increment)
	cv.BindCommand("Reset", command.NewSender(cv, func(v *CounterViewModel) error {
		v.Count = 0
		return nil
	}).Named("Reset"))
	cv.BindCommand("Rename", command.NewSenderArgument(cv, func(v *CounterViewModel, label string) error {
		if label == "" {
			return errEmptyLabel
		}
		v.Label = label
		return nil
	}).Named("Rename"))
}

// LobbyManager is the session manager of the lobby context.
type LobbyManager struct {
	*scene.HandlerTable
	logger *slog.Logger

	started  bool
	selected string
	log      []string
}

// NewLobbyManager creates the lobby manager with its handler table.
func NewLobbyManager(logger *slog.Logger) *LobbyManager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &LobbyManager{logger: logger.With("manager", "Lobby")}
	m.HandlerTable = scene.NewHandlerTable().
		On("Start", scene.ActionFunc(m.start)).
		On("Selected", scene.Typed(m.selectCounter)).
		On("Announce", scene.HandlerFunc(m.announce))
	return m
}

func (m *LobbyManager) start() error {
	if m.started {
		return errors.New("lobby already started")
	}
	m.started = true
	m.logger.Info("Lobby started")
	return nil
}

func (m *LobbyManager) selectCounter(cv *CounterViewModel) error {
	m.selected = cv.Identifier()
	m.logger.Info("Counter selected", "identifier", cv.Identifier(), "count", cv.Count)
	return nil
}

func (m *LobbyManager) announce(args ...any) error {
	line := fmt.Sprint(args...)
	m.log = append(m.log, line)
	m.logger.Info("Announcement", "text", line)
	return nil
}
