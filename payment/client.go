// Package payment wraps the Stripe client library behind small interfaces
// so checkout and webhook handling stay testable without network calls.
package payment

import "context"

// LineItem is one server-trusted checkout line.
type LineItem struct {
	Name            string
	UnitAmountCents int64
	Quantity        int64
}

// SessionParams describes a hosted checkout session to create.
type SessionParams struct {
	CustomerEmail string
	LineItems     []LineItem
	// Opaque metadata echoed back on the completion webhook; carries the
	// internal order and event ids.
	Metadata   map[string]string
	SuccessURL string
	CancelURL  string
}

// Session is the created hosted session; URL is where the customer pays.
type Session struct {
	ID  string
	URL string
}

type Client interface {
	CreateCheckoutSession(ctx context.Context, p SessionParams) (*Session, error)
}

// CompletedSession is the slice of a webhook payload the confirmer needs.
type CompletedSession struct {
	ID              string
	PaymentIntentID string
	CustomerEmail   string
	Metadata        map[string]string
}

// Event is a verified webhook notification.
type Event struct {
	Type string
	// Session is set when Type is checkout.session.completed.
	Session *CompletedSession
}

// EventTypeSessionCompleted is the only event type this service acts on.
const EventTypeSessionCompleted = "checkout.session.completed"

// WebhookVerifier authenticates a raw webhook body against its signature
// header before any of its contents are trusted.
type WebhookVerifier interface {
	VerifyEvent(payload []byte, sigHeader string) (*Event, error)
}
