package notifier

import "context"

// Sender delivers a notification email. Implementations are best-effort
// and fire-and-forget: there is no retry or delivery confirmation beyond
// the immediate error, and callers log-and-continue on failure.
// This decouples the application logic from the mail transport.
type Sender interface {
	Send(ctx context.Context, to, subject, displayName, htmlBody string) error
}
