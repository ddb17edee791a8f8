package presentation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"mvvmkit-go/core/command"
	"mvvmkit-go/core/observer"
	"mvvmkit-go/core/state"
	"mvvmkit-go/domain/scene"
	"mvvmkit-go/domain/viewmodel"
	"mvvmkit-go/infrastructure/logging"
)

// Argument kinds offered by the argument selector.
const (
	ArgNone   = "none"
	ArgString = "string"
	ArgInt    = "int"
	ArgBool   = "bool"
)

// commandTable is implemented by view-models embedding viewmodel.Base.
type commandTable interface {
	CommandNames() []string
	CommandFor(name string) (command.Executable, error)
}

// MainWindow lists the view-models of one session context and lets the user
// execute their commands and relay manager messages.
type MainWindow struct {
	window fyne.Window
	bridge *UIEventBridge
	repo   scene.SnapshotRepository
	logger *slog.Logger

	// UI components - sidebar
	list        *ViewModelList
	createEntry *widget.Entry
	createBtn   *widget.Button

	// UI components - detail
	commandSelect *widget.Select
	argKindSelect *widget.Select
	argEntry      *widget.Entry
	executeBtn    *widget.Button
	messageSelect *widget.Select
	relayBtn      *widget.Button
	saveBtn       *widget.Button
	loadBtn       *widget.Button
	statusLabel   *widget.Label
	executeSub    *observer.Subscription

	selected   string
	selectedMu sync.RWMutex

	cleanupOnce sync.Once
}

// MainWindowConfig holds configuration for MainWindow.
type MainWindowConfig struct {
	App    fyne.App
	Bridge *UIEventBridge
	Logger *slog.Logger
	Title  string

	// Repository enables Save and Load when set.
	Repository scene.SnapshotRepository

	// Messages populates the relay selector.
	Messages []string
}

// NewMainWindow creates a new main window.
func NewMainWindow(cfg *MainWindowConfig) *MainWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Title == "" {
		cfg.Title = "mvvmkit"
	}

	w := &MainWindow{
		window: cfg.App.NewWindow(cfg.Title),
		bridge: cfg.Bridge,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}

	w.init(cfg.Messages)
	w.setupEventCallbacks()
	w.loadExisting()

	w.window.SetOnClosed(func() {
		w.Cleanup()
		cfg.App.Quit()
	})

	return w
}

func (w *MainWindow) init(messages []string) {
	w.list = NewViewModelList(w.onViewModelSelected)
	w.createEntry = widget.NewEntry()
	w.createEntry.SetPlaceHolder("identifier (blank = generated)")
	w.createBtn = widget.NewButtonWithIcon("Create", theme.ContentAddIcon(), w.handleCreate)

	sidebar := container.NewBorder(
		widget.NewLabel("View Models"),
		container.NewBorder(nil, nil, nil, w.createBtn, w.createEntry),
		nil, nil,
		w.list,
	)

	// The execute button is rebound whenever the command or argument changes.
	w.executeBtn = widget.NewButtonWithIcon("Execute", theme.MediaPlayIcon(), w.handleExecute)
	w.commandSelect = widget.NewSelect([]string{}, func(string) { w.rebindExecute() })
	w.commandSelect.PlaceHolder = "Select Command"
	w.argEntry = widget.NewEntry()
	w.argEntry.SetPlaceHolder("argument")
	w.argEntry.OnChanged = func(string) { w.rebindExecute() }
	w.argKindSelect = widget.NewSelect([]string{ArgNone, ArgString, ArgInt, ArgBool}, func(string) { w.rebindExecute() })
	w.argKindSelect.SetSelected(ArgNone)

	w.messageSelect = widget.NewSelect(messages, func(string) {})
	w.messageSelect.PlaceHolder = "Select Message"
	w.relayBtn = widget.NewButtonWithIcon("Relay", theme.MailSendIcon(), w.handleRelay)

	w.saveBtn = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), w.handleSave)
	w.loadBtn = widget.NewButtonWithIcon("Load", theme.FolderOpenIcon(), w.handleLoad)
	if w.repo == nil {
		w.saveBtn.Disable()
		w.loadBtn.Disable()
	}

	w.statusLabel = widget.NewLabel("Ready")

	detail := container.NewVBox(
		widget.NewLabel("Command"),
		container.NewHBox(w.commandSelect, w.argKindSelect),
		w.argEntry,
		w.executeBtn,
		widget.NewSeparator(),
		widget.NewLabel("Session Manager"),
		container.NewHBox(w.messageSelect, w.relayBtn),
		widget.NewSeparator(),
		container.NewHBox(layout.NewSpacer(), w.saveBtn, w.loadBtn),
	)

	split := container.NewHSplit(sidebar, container.NewPadded(detail))
	split.SetOffset(0.4)

	w.window.SetContent(container.NewBorder(nil, w.statusLabel, nil, nil, split))
	w.window.Resize(fyne.NewSize(800, 500))
}

func (w *MainWindow) setupEventCallbacks() {
	if w.bridge == nil {
		return
	}

	w.bridge.SetCallbacks(&UICallbacks{
		OnViewModelCreated: func(contextID, identifier, kind string) {
			// UI update must run on main thread
			fyne.Do(func() {
				w.addViewModel(identifier)
			})
		},
		OnCommandDispatched: func(contextID, command string, elapsed time.Duration) {
			fyne.Do(func() {
				w.setStatus(fmt.Sprintf("%s dispatched in %s", command, elapsed))
			})
		},
		OnCommandFailed: func(contextID, command string, err error) {
			w.logger.Warn("Command failed", "context_id", contextID, "command", command, "error", err)
			fyne.Do(func() {
				w.setStatus(fmt.Sprintf("%s failed: %v", command, err))
			})
		},
		OnMessageRelayed: func(contextID, message, manager string) {
			fyne.Do(func() {
				w.setStatus(fmt.Sprintf("%s relayed to %s", message, manager))
			})
		},
		OnControllerStateChanged: func(contextID, controller string, oldState, newState state.BindingState) {
			w.logger.Debug("Controller state changed", "controller", controller, "from", oldState, "to", newState)
		},
	})
}

// loadExisting lists view-models registered before the window opened.
func (w *MainWindow) loadExisting() {
	if w.bridge == nil {
		return
	}
	sc := w.bridge.Controller().Context()
	if sc == nil {
		return
	}
	for _, id := range sc.Identifiers() {
		w.addViewModel(id)
	}
}

func (w *MainWindow) addViewModel(identifier string) {
	item := ViewModelListItem{Identifier: identifier}
	if sc := w.bridge.Controller().Context(); sc != nil {
		if vm, ok := sc.Lookup(identifier); ok {
			item.Kind = fmt.Sprintf("%T", vm)
			_, item.Persistent = vm.(viewmodel.Snapshotter)
		}
	}
	w.list.Add(item)
}

func (w *MainWindow) onViewModelSelected(identifier string) {
	w.selectedMu.Lock()
	w.selected = identifier
	w.selectedMu.Unlock()

	names := []string{}
	if table, ok := w.lookup(identifier).(commandTable); ok {
		names = table.CommandNames()
	}
	w.commandSelect.Options = names
	w.commandSelect.ClearSelected()
	if len(names) > 0 {
		w.commandSelect.SetSelected(names[0])
	}
	w.commandSelect.Refresh()
}

func (w *MainWindow) handleCreate() {
	id, err := w.bridge.CreateViewModel(w.createEntry.Text)
	if err != nil {
		w.showError(err)
		return
	}
	w.createEntry.SetText("")
	w.addViewModel(id)
	w.list.SelectIdentifier(id)
}

func (w *MainWindow) handleExecute() {
	cmd, err := w.selectedCommand()
	if err != nil {
		w.showError(err)
		return
	}

	arg, err := ParseArgument(w.argKindSelect.Selected, w.argEntry.Text)
	if err != nil {
		w.showError(err)
		return
	}

	if err := w.bridge.ExecuteCommand(cmd, arg); err != nil {
		w.showError(err)
	}
}

// rebindExecute binds the execute button to the selected command. Without a
// command the button reports why on tap.
func (w *MainWindow) rebindExecute() {
	w.executeSub.Release()
	w.executeSub = nil

	cmd, err := w.selectedCommand()
	if err != nil {
		w.executeBtn.OnTapped = w.handleExecute
		w.executeBtn.Enable()
		return
	}
	w.executeSub = BindButton(w.executeBtn, w.bridge.Controller(), cmd, w.currentArgument, w.showError)
}

// currentArgument parses the argument entry. Unparseable text is passed
// through so the command reports the type mismatch.
func (w *MainWindow) currentArgument() any {
	arg, err := ParseArgument(w.argKindSelect.Selected, w.argEntry.Text)
	if err != nil {
		return w.argEntry.Text
	}
	return arg
}

func (w *MainWindow) handleRelay() {
	if w.messageSelect.Selected == "" {
		return
	}
	if err := w.bridge.Relay(w.selectedIdentifier(), w.messageSelect.Selected); err != nil {
		w.showError(err)
	}
}

func (w *MainWindow) handleSave() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ctx = logging.WithAttrs(logging.With(ctx, w.logger), "action", "save")

	if err := w.bridge.Controller().Save(ctx, w.repo); err != nil {
		w.showError(err)
		return
	}
	w.setStatus("Context saved")
}

func (w *MainWindow) handleLoad() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ctx = logging.WithAttrs(logging.With(ctx, w.logger), "action", "load")

	if err := w.bridge.Controller().Load(ctx, w.repo); err != nil {
		w.showError(err)
		return
	}
	w.loadExisting()
	w.setStatus("Context loaded")
}

func (w *MainWindow) selectedIdentifier() string {
	w.selectedMu.RLock()
	defer w.selectedMu.RUnlock()
	return w.selected
}

func (w *MainWindow) selectedCommand() (command.Executable, error) {
	id := w.selectedIdentifier()
	if id == "" {
		return nil, fmt.Errorf("no view model selected")
	}
	table, ok := w.lookup(id).(commandTable)
	if !ok {
		return nil, fmt.Errorf("view model %s exposes no commands", id)
	}
	if w.commandSelect.Selected == "" {
		return nil, fmt.Errorf("no command selected")
	}
	return table.CommandFor(w.commandSelect.Selected)
}

func (w *MainWindow) lookup(identifier string) viewmodel.ViewModel {
	sc := w.bridge.Controller().Context()
	if sc == nil {
		return nil
	}
	vm, _ := sc.Lookup(identifier)
	return vm
}

func (w *MainWindow) setStatus(text string) {
	w.statusLabel.SetText(text)
}

func (w *MainWindow) showError(err error) {
	w.logger.Warn("UI action failed", "error", err)
	w.setStatus(err.Error())
	dialog.ShowError(err, w.window)
}

// ParseArgument converts entry text to a command argument of kind.
func ParseArgument(kind, text string) (any, error) {
	switch kind {
	case ArgNone, "":
		return nil, nil
	case ArgString:
		return text, nil
	case ArgInt:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("argument %q is not an int: %w", text, err)
		}
		return n, nil
	case ArgBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("argument %q is not a bool: %w", text, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown argument kind %q", kind)
	}
}

// Show displays the main window.
func (w *MainWindow) Show() {
	w.window.Show()
}

// Cleanup releases resources.
func (w *MainWindow) Cleanup() {
	w.cleanupOnce.Do(func() {
		w.logger.Info("Starting cleanup...")
		w.executeSub.Release()
		if w.bridge != nil {
			w.bridge.Close()
		}
		w.logger.Info("Cleanup completed")
	})
}
