package checkout

import (
	"context"
	"time"

	"github.com/cornellb28/orderbbs-app/notify"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
	"github.com/cornellb28/orderbbs-app/payment"
	"github.com/cornellb28/orderbbs-app/realtime"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OrderBroadcaster pushes order events to connected admin dashboards.
type OrderBroadcaster interface {
	Broadcast(event string, payload any)
}

// Confirmer consumes verified payment-completion events. Downstream
// failures are logged and swallowed: the caller must still acknowledge the
// notification so the processor does not keep redelivering it.
type Confirmer struct {
	orders  orderpkg.Repository
	email   notify.EmailSender
	hub     OrderBroadcaster
	siteURL string
	now     func() time.Time
}

func NewConfirmer(orders orderpkg.Repository, email notify.EmailSender, hub OrderBroadcaster, siteURL string) *Confirmer {
	return &Confirmer{orders: orders, email: email, hub: hub, siteURL: siteURL, now: time.Now}
}

// HandleSessionCompleted marks the order paid/confirmed and sends the
// confirmation email at most once. It never returns an error: every
// signature-verified notification is acknowledged regardless of outcome.
func (c *Confirmer) HandleSessionCompleted(ctx context.Context, sess *payment.CompletedSession) {
	rawID := sess.Metadata["orderId"]
	if rawID == "" {
		// Malformed or irrelevant event; acknowledge without action.
		log.Error().Str("session_id", sess.ID).Msg("webhook: missing orderId in session metadata")
		return
	}
	orderID, err := uuid.Parse(rawID)
	if err != nil {
		log.Error().Str("session_id", sess.ID).Str("order_id", rawID).Msg("webhook: bad orderId in session metadata")
		return
	}

	var intentID *string
	if sess.PaymentIntentID != "" {
		id := sess.PaymentIntentID
		intentID = &id
	}
	if err := c.orders.MarkPaid(ctx, orderID, intentID); err != nil {
		// Acknowledge anyway; fixing the row is manual remediation.
		log.Error().Err(err).Str("order_id", rawID).Str("session_id", sess.ID).Msg("webhook: failed to mark order paid")
		return
	}
	log.Info().Str("order_id", rawID).Str("session_id", sess.ID).Msg("order marked as paid")

	o, err := c.orders.GetOrderByID(ctx, orderID)
	if err != nil || o == nil {
		log.Warn().Err(err).Str("order_id", rawID).Msg("webhook: could not load order for email check")
		return
	}

	// Idempotency: a redelivered notification must not notify twice. The
	// sent timestamp gates both the email and the dashboard push.
	if o.ConfirmationEmailSentAt != nil {
		log.Info().Str("order_id", rawID).Msg("confirmation email already sent, skipping")
		return
	}

	if c.hub != nil {
		c.hub.Broadcast("order.confirmed", realtime.OrderConfirmedPayload{
			OrderID:    o.ID.String(),
			EventID:    o.EventID.String(),
			Email:      o.Email,
			TotalCents: o.TotalCents,
		})
	}

	sum, err := c.orders.GetSummary(ctx, orderID)
	if err != nil || sum == nil {
		log.Warn().Err(err).Str("order_id", rawID).Msg("webhook: order summary not found for email")
		return
	}

	html := notify.OrderConfirmationHTML(sum, c.siteURL)
	if err := c.email.Send(ctx, sum.Email, notify.ConfirmationSubject, html); err != nil {
		log.Error().Err(err).Str("order_id", rawID).Msg("webhook: confirmation email send failed")
		return
	}
	if err := c.orders.StampConfirmationEmail(ctx, orderID, c.now()); err != nil {
		log.Error().Err(err).Str("order_id", rawID).Msg("webhook: failed to stamp confirmation email")
		return
	}
	log.Info().Str("order_id", rawID).Str("to", sum.Email).Msg("confirmation email sent")
}
