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
	eventpkg "github.com/cornellb28/orderbbs-app/event"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
	"github.com/cornellb28/orderbbs-app/payment"
	productpkg "github.com/cornellb28/orderbbs-app/product"
)

type fakeEventRepo struct {
	eventpkg.Repository
	evt     *entity.Event
	allowed map[uuid.UUID]struct{}
}

func (f *fakeEventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	if f.evt == nil || f.evt.ID != id {
		return nil, nil
	}
	return f.evt, nil
}

func (f *fakeEventRepo) ListAllowedProductIDs(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{})
	for _, id := range ids {
		if _, ok := f.allowed[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	productpkg.Repository
	products map[uuid.UUID]entity.Product
}

func (f *fakeProductRepo) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orderpkg.Repository
	createdOrder *entity.Order
	createdItems []entity.OrderItem
	sessionID    string

	createOrderErr error
	createItemsErr error
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	if f.createOrderErr != nil {
		return nil, f.createOrderErr
	}
	cp := *o
	cp.ID = uuid.New()
	f.createdOrder = &cp
	return &cp, nil
}

func (f *fakeOrderRepo) CreateOrderItems(ctx context.Context, items []entity.OrderItem) error {
	if f.createItemsErr != nil {
		return f.createItemsErr
	}
	f.createdItems = items
	return nil
}

func (f *fakeOrderRepo) SetStripeSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	f.sessionID = sessionID
	return nil
}

type fakePaymentClient struct {
	lastParams payment.SessionParams
	err        error
}

func (f *fakePaymentClient) CreateCheckoutSession(ctx context.Context, p payment.SessionParams) (*payment.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastParams = p
	return &payment.Session{ID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"}, nil
}

type checkoutFixture struct {
	svc      *service
	events   *fakeEventRepo
	products *fakeProductRepo
	orders   *fakeOrderRepo
	payments *fakePaymentClient

	eventID uuid.UUID
	ramenID uuid.UUID
	brothID uuid.UUID
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	eventID := uuid.New()
	ramenID := uuid.New()
	brothID := uuid.New()

	events := &fakeEventRepo{
		evt: &entity.Event{
			ID:         eventID,
			Title:      "March Ramen Drop",
			PickupDate: "2025-03-15",
			IsActive:   true,
			Deadline:   now.Add(48 * time.Hour),
		},
		allowed: map[uuid.UUID]struct{}{ramenID: {}, brothID: {}},
	}
	products := &fakeProductRepo{products: map[uuid.UUID]entity.Product{
		ramenID: {ID: ramenID, Name: "Tonkotsu Ramen Kit", PriceCents: 1000, IsActive: true},
		brothID: {ID: brothID, Name: "Broth Quart", PriceCents: 300, IsActive: true},
	}}
	orders := &fakeOrderRepo{}
	payments := &fakePaymentClient{}

	svc := &service{
		events:   events,
		products: products,
		orders:   orders,
		payments: payments,
		now:      func() time.Time { return now },
	}
	return &checkoutFixture{
		svc: svc, events: events, products: products, orders: orders, payments: payments,
		eventID: eventID, ramenID: ramenID, brothID: brothID,
	}
}

func (fx *checkoutFixture) request() Request {
	return Request{
		EventID:  fx.eventID,
		Name:     "Ina Chen",
		Email:    "Ina.Chen@Example.com",
		Items:    []Item{{ProductID: fx.ramenID, Quantity: 1}, {ProductID: fx.brothID, Quantity: 1}},
		Origin:   "https://bowlandbrothsociety.com/",
		SMSOptIn: false,
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	fx := newCheckoutFixture(t)
	req := fx.request()
	req.Phone = "(312) 555-0142"
	req.SMSOptIn = true
	// Duplicate line gets merged with the first ramen entry.
	req.Items = append(req.Items, Item{ProductID: fx.ramenID, Quantity: 1})

	res, err := fx.svc.Checkout(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", res.RedirectURL)

	o := fx.orders.createdOrder
	require.NotNil(t, o)
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.False(t, o.Paid)
	assert.Equal(t, "ina.chen@example.com", o.Email)
	require.NotNil(t, o.Phone)
	assert.Equal(t, "+13125550142", *o.Phone)
	assert.True(t, o.SMSOptIn)
	assert.NotEmpty(t, o.PublicToken)
	// 2x ramen at 1000 plus 1x broth at 300.
	assert.Equal(t, int64(2300), o.TotalCents)

	require.Len(t, fx.orders.createdItems, 2)
	assert.Equal(t, int64(2), fx.orders.createdItems[0].Qty)
	assert.Equal(t, int64(2000), fx.orders.createdItems[0].LineTotalCents)
	assert.Equal(t, int64(300), fx.orders.createdItems[1].LineTotalCents)

	p := fx.payments.lastParams
	assert.Equal(t, "ina.chen@example.com", p.CustomerEmail)
	assert.Equal(t, o.ID.String(), p.Metadata["orderId"])
	assert.Equal(t, fx.eventID.String(), p.Metadata["eventId"])
	assert.Equal(t, "+13125550142", p.Metadata["customerPhone"])
	assert.Equal(t, "true", p.Metadata["smsOptIn"])
	assert.Equal(t, "https://bowlandbrothsociety.com/success?session_id={CHECKOUT_SESSION_ID}", p.SuccessURL)
	assert.Equal(t, "https://bowlandbrothsociety.com/canceled", p.CancelURL)

	assert.Equal(t, "cs_test_123", fx.orders.sessionID)
}

func TestCheckoutValidation(t *testing.T) {
	fx := newCheckoutFixture(t)

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing name", func(r *Request) { r.Name = "  " }},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }},
		{"empty cart", func(r *Request) { r.Items = nil }},
		{"zero quantity", func(r *Request) { r.Items[0].Quantity = 0 }},
		{"invalid phone", func(r *Request) { r.Phone = "555-0142" }},
		{"sms opt-in without phone", func(r *Request) { r.SMSOptIn = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := fx.request()
			tc.mutate(&req)
			_, err := fx.svc.Checkout(context.Background(), req)
			require.Error(t, err)
			assert.True(t, IsValidationError(err), "expected a validation error, got %v", err)
		})
	}
}

func TestCheckoutQuantityCap(t *testing.T) {
	fx := newCheckoutFixture(t)

	req := fx.request()
	req.Items = []Item{{ProductID: fx.ramenID, Quantity: maxItemQuantity + 1}}
	_, err := fx.svc.Checkout(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// Duplicate lines that merge past the cap are rejected too.
	req = fx.request()
	req.Items = []Item{
		{ProductID: fx.ramenID, Quantity: maxItemQuantity},
		{ProductID: fx.ramenID, Quantity: 1},
	}
	_, err = fx.svc.Checkout(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Nil(t, fx.orders.createdOrder)

	// An overflow-sized quantity never reaches the total computation.
	req = fx.request()
	req.Items = []Item{{ProductID: fx.ramenID, Quantity: 1 << 60}}
	_, err = fx.svc.Checkout(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	req = fx.request()
	req.Items = []Item{{ProductID: fx.ramenID, Quantity: maxItemQuantity}}
	_, err = fx.svc.Checkout(context.Background(), req)
	require.NoError(t, err)
}

func TestCheckoutInvalidPhoneRejectedWithoutOptIn(t *testing.T) {
	fx := newCheckoutFixture(t)
	req := fx.request()
	req.Phone = "12345"
	req.SMSOptIn = false

	_, err := fx.svc.Checkout(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Nil(t, fx.orders.createdOrder)
}

func TestCheckoutUnknownEvent(t *testing.T) {
	fx := newCheckoutFixture(t)
	req := fx.request()
	req.EventID = uuid.New()

	_, err := fx.svc.Checkout(context.Background(), req)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCheckoutInactiveEvent(t *testing.T) {
	fx := newCheckoutFixture(t)
	fx.events.evt.IsActive = false

	_, err := fx.svc.Checkout(context.Background(), fx.request())
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCheckoutDeadlinePassed(t *testing.T) {
	fx := newCheckoutFixture(t)
	fx.events.evt.Deadline = fx.svc.now().Add(-time.Minute)

	_, err := fx.svc.Checkout(context.Background(), fx.request())
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Nil(t, fx.orders.createdOrder)
}

func TestCheckoutProductNotOnMenu(t *testing.T) {
	fx := newCheckoutFixture(t)
	delete(fx.events.allowed, fx.brothID)

	_, err := fx.svc.Checkout(context.Background(), fx.request())
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCheckoutProductWentInactive(t *testing.T) {
	fx := newCheckoutFixture(t)
	p := fx.products.products[fx.brothID]
	p.IsActive = false
	fx.products.products[fx.brothID] = p

	_, err := fx.svc.Checkout(context.Background(), fx.request())
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Nil(t, fx.orders.createdOrder)
}

func TestCheckoutPaymentFailureIsNotValidation(t *testing.T) {
	fx := newCheckoutFixture(t)
	fx.payments.err = errors.New("stripe unreachable")

	_, err := fx.svc.Checkout(context.Background(), fx.request())
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
	// The pending order was already written before the session attempt.
	assert.NotNil(t, fx.orders.createdOrder)
}

func TestMergeItems(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	merged := mergeItems([]Item{
		{ProductID: a, Quantity: 1},
		{ProductID: b, Quantity: 2},
		{ProductID: a, Quantity: 3},
	})
	require.Len(t, merged, 2)
	assert.Equal(t, a, merged[0].ProductID)
	assert.Equal(t, int64(4), merged[0].Quantity)
	assert.Equal(t, b, merged[1].ProductID)
	assert.Equal(t, int64(2), merged[1].Quantity)
}
