package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// ConsoleNotifier prints notification bodies for the user and logs them.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a notifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// Send prints the body on its own line. The subject only goes to the log.
func (c *ConsoleNotifier) Send(ctx context.Context, notification Notification) error {
	slog.Debug("notification", "subject", notification.Subject, "body", notification.Body)

	if notification.Body == "" {
		return nil
	}
	if _, err := fmt.Fprintln(c.out, notification.Body); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}
