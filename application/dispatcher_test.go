package application

import (
	"testing"

	"mvvmkit-go/core/command"
	"mvvmkit-go/infrastructure/config"
)

func TestNewDispatcher(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.DispatcherConfig
		wantQueue bool
		wantErr   bool
	}{
		{"default", config.DispatcherConfig{}, false, false},
		{"immediate", config.DispatcherConfig{Mode: config.ModeImmediate, LogCommands: true}, false, false},
		{"queue", config.DispatcherConfig{Mode: config.ModeQueue, QueueSize: 4}, true, false},
		{"unknown", config.DispatcherConfig{Mode: "threaded"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, q, err := NewDispatcher(tt.cfg, nil, "ctx", nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDispatcher() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (q != nil) != tt.wantQueue {
				t.Fatalf("queue = %v, wantQueue %v", q, tt.wantQueue)
			}

			var runs int
			cmd := command.NewArgument(func(int) error { runs++; return nil })
			if err := d.ExecuteCommand(cmd, 1); err != nil {
				t.Fatalf("ExecuteCommand() error = %v", err)
			}

			if q != nil {
				if runs != 0 {
					t.Errorf("queued command ran before Flush")
				}
				if err := q.Flush(); err != nil {
					t.Fatalf("Flush() error = %v", err)
				}
			}
			if runs != 1 {
				t.Errorf("runs = %d, want 1", runs)
			}
		})
	}
}

func TestNewDispatcher_QueueSharedByController(t *testing.T) {
	d, q, err := NewDispatcher(config.DispatcherConfig{Mode: config.ModeQueue}, nil, "ctx", nil)
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}
	defer q.Close()

	c := NewController(&ControllerConfig{Dispatcher: d})
	var runs int
	cmd := command.NewArgument(func(string) error { runs++; return nil })

	for i := 0; i < 3; i++ {
		if err := c.ExecuteCommand(cmd, "tick"); err != nil {
			t.Fatalf("ExecuteCommand() error = %v", err)
		}
	}
	if q.Pending() != 3 {
		t.Errorf("Pending() = %d, want 3", q.Pending())
	}
	if err := q.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}
