// Package notify delivers best-effort alerts about bot lifecycle and
// trade activity. Delivery failures are reported to the caller for
// logging but never block the trading loop.
package notify

import "context"

// Notifier is the outbound alert sink.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Noop discards all messages. Used when no notifier is configured.
type Noop struct{}

func (Noop) Send(ctx context.Context, text string) error { return nil }
