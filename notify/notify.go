// Package notify holds the transactional email and SMS senders. Both are
// fire-and-forget from the caller's perspective: failures are returned for
// logging but callers never retry.
package notify

import "context"

type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}
