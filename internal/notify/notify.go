// Package notify announces detection events: an audible terminal bell for
// every event, plus an optional external command fired on lock acquisition
// (for example a script playing an alert sound).
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"
)

const commandTimeout = 5 * time.Second

// WithLogger sets the notifier logger.
func WithLogger(logger *slog.Logger) func(*Notifier) {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// Notifier emits lock alerts and key-press acknowledgments.
type Notifier struct {
	w       io.Writer
	command string
	logger  *slog.Logger
}

// New creates a Notifier writing bells to w. If command is non-empty it must
// resolve to an executable; it is run once per lock acquisition.
func New(w io.Writer, command string, options ...func(*Notifier)) (*Notifier, error) {
	if command != "" {
		if _, err := exec.LookPath(command); err != nil {
			return nil, fmt.Errorf("alert command: %w", err)
		}
	}

	n := Notifier{
		w:       w,
		command: command,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&n)
	}

	return &n, nil
}

// Alert announces a new lock acquisition. Called exactly once per
// Scanning -> Locked transition, never on reconfirmation or unlock.
func (n *Notifier) Alert() {
	fmt.Fprint(n.w, "\a")
	n.logger.Info("alert emitted")

	if n.command == "" {
		return
	}
	go n.runCommand()
}

// Ack gives short feedback for a user key press.
func (n *Notifier) Ack() {
	fmt.Fprint(n.w, "\a")
}

func (n *Notifier) runCommand() {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := exec.CommandContext(ctx, n.command).Run(); err != nil {
		n.logger.Warn("alert command failed", slog.String("command", n.command), slog.Any("error", err))
	}
}
