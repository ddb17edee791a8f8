package presentation

import (
	"fyne.io/fyne/v2/widget"

	"mvvmkit-go/core/command"
	"mvvmkit-go/core/dispatch"
	"mvvmkit-go/core/observer"
)

// BindButton makes btn dispatch cmd through d when tapped. arg supplies the
// parameter at tap time and may be nil. Dispatch errors go to onErr when set.
// The button is disabled while cmd cannot execute the current argument; the
// state is refreshed after every successful execution. Release the returned
// subscription to stop refreshing.
func BindButton(btn *widget.Button, d dispatch.Dispatcher, cmd command.Executable, arg func() any, onErr func(error)) *observer.Subscription {
	current := func() any {
		if arg == nil {
			return nil
		}
		return arg()
	}

	refresh := func() {
		if cmd.CanExecute(current()) {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}

	btn.OnTapped = func() {
		if err := d.ExecuteCommand(cmd, current()); err != nil && onErr != nil {
			onErr(err)
		}
	}

	refresh()
	return cmd.OnExecuted(refresh)
}

// BindEntry dispatches cmd with the entry text when the user submits it.
func BindEntry(entry *widget.Entry, d dispatch.Dispatcher, cmd command.Executable, onErr func(error)) {
	entry.OnSubmitted = func(text string) {
		if err := d.ExecuteCommand(cmd, text); err != nil && onErr != nil {
			onErr(err)
		}
	}
}

// BindCheck dispatches cmd with the checked state on every change.
func BindCheck(check *widget.Check, d dispatch.Dispatcher, cmd command.Executable, onErr func(error)) {
	check.OnChanged = func(checked bool) {
		if err := d.ExecuteCommand(cmd, checked); err != nil && onErr != nil {
			onErr(err)
		}
	}
}
