package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornellb28/orderbbs-app/entity"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
	"github.com/cornellb28/orderbbs-app/payment"
)

type confirmStore struct {
	orderpkg.Repository
	order   *entity.Order
	summary *orderpkg.Summary

	markPaidErr   error
	markPaidCalls int
	stamped       []time.Time
}

func (s *confirmStore) MarkPaid(ctx context.Context, id uuid.UUID, intentID *string) error {
	s.markPaidCalls++
	if s.markPaidErr != nil {
		return s.markPaidErr
	}
	s.order.Paid = true
	s.order.Status = entity.OrderConfirmed
	s.order.StripePaymentIntentID = intentID
	return nil
}

func (s *confirmStore) GetOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, nil
	}
	return s.order, nil
}

func (s *confirmStore) GetSummary(ctx context.Context, id uuid.UUID) (*orderpkg.Summary, error) {
	return s.summary, nil
}

func (s *confirmStore) StampConfirmationEmail(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.stamped = append(s.stamped, at)
	s.order.ConfirmationEmailSentAt = &at
	return nil
}

type recordingBroadcaster struct {
	events []string
}

func (r *recordingBroadcaster) Broadcast(event string, payload any) {
	r.events = append(r.events, event)
}

type recordingEmail struct {
	sent []string
	err  error
}

func (r *recordingEmail) Send(ctx context.Context, to, subject, html string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, to)
	return nil
}

func newConfirmFixture() (*Confirmer, *confirmStore, *recordingEmail, *payment.CompletedSession) {
	conf, store, email, _, sess := newConfirmFixtureWithHub()
	return conf, store, email, sess
}

func newConfirmFixtureWithHub() (*Confirmer, *confirmStore, *recordingEmail, *recordingBroadcaster, *payment.CompletedSession) {
	orderID := uuid.New()
	store := &confirmStore{
		order: &entity.Order{
			ID:         orderID,
			EventID:    uuid.New(),
			Email:      "ina.chen@example.com",
			TotalCents: 2300,
			Status:     entity.OrderPending,
		},
		summary: &orderpkg.Summary{
			ID:         orderID,
			Email:      "ina.chen@example.com",
			TotalCents: 2300,
			Event:      orderpkg.SummaryEvent{Title: "March Ramen Drop"},
		},
	}
	email := &recordingEmail{}
	hub := &recordingBroadcaster{}
	conf := &Confirmer{
		orders:  store,
		email:   email,
		hub:     hub,
		siteURL: "https://bowlandbrothsociety.com",
		now:     func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
	sess := &payment.CompletedSession{
		ID:              "cs_test_123",
		PaymentIntentID: "pi_test_456",
		Metadata:        map[string]string{"orderId": orderID.String()},
	}
	return conf, store, email, hub, sess
}

func TestHandleSessionCompleted(t *testing.T) {
	conf, store, email, sess := newConfirmFixture()

	conf.HandleSessionCompleted(context.Background(), sess)

	assert.True(t, store.order.Paid)
	assert.Equal(t, entity.OrderConfirmed, store.order.Status)
	require.NotNil(t, store.order.StripePaymentIntentID)
	assert.Equal(t, "pi_test_456", *store.order.StripePaymentIntentID)
	assert.Equal(t, []string{"ina.chen@example.com"}, email.sent)
	assert.Len(t, store.stamped, 1)
}

func TestHandleSessionCompletedRedeliveredOnce(t *testing.T) {
	conf, store, email, hub, sess := newConfirmFixtureWithHub()

	conf.HandleSessionCompleted(context.Background(), sess)
	conf.HandleSessionCompleted(context.Background(), sess)

	// MarkPaid runs per delivery; the email and the dashboard push are both
	// gated by the sent timestamp.
	assert.Equal(t, 2, store.markPaidCalls)
	assert.Len(t, email.sent, 1)
	assert.Len(t, store.stamped, 1)
	assert.Equal(t, []string{"order.confirmed"}, hub.events)
}

func TestHandleSessionCompletedMissingOrderID(t *testing.T) {
	conf, store, email, sess := newConfirmFixture()
	sess.Metadata = map[string]string{}

	conf.HandleSessionCompleted(context.Background(), sess)

	assert.Zero(t, store.markPaidCalls)
	assert.Empty(t, email.sent)
}

func TestHandleSessionCompletedMarkPaidFailure(t *testing.T) {
	conf, store, email, sess := newConfirmFixture()
	store.markPaidErr = errors.New("db down")

	conf.HandleSessionCompleted(context.Background(), sess)

	assert.Empty(t, email.sent)
	assert.Empty(t, store.stamped)
}

func TestHandleSessionCompletedEmailFailureLeavesStampUnset(t *testing.T) {
	conf, store, email, sess := newConfirmFixture()
	email.err = errors.New("resend 500")

	conf.HandleSessionCompleted(context.Background(), sess)

	// Order is paid but unstamped, so a redelivery retries the email.
	assert.True(t, store.order.Paid)
	assert.Empty(t, store.stamped)
	assert.Nil(t, store.order.ConfirmationEmailSentAt)
}
