package notify

import "context"

// Notifier delivers a formatted message to the fixed destination channel.
// Delivery is best-effort: the returned bool reports success, and callers
// treat a failure as logged-and-moved-on, never as a cycle error.
type Notifier interface {
	Send(ctx context.Context, text string, silent bool) bool
}
