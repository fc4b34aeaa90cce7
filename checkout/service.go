// Package checkout implements the order pipeline: validate a cart against
// server-trusted event and product state, persist the pending order, and
// hand the customer to the hosted payment page.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	customerpkg "github.com/cornellb28/orderbbs-app/customer"
	"github.com/cornellb28/orderbbs-app/entity"
	eventpkg "github.com/cornellb28/orderbbs-app/event"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
	"github.com/cornellb28/orderbbs-app/payment"
	productpkg "github.com/cornellb28/orderbbs-app/product"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrEventNotFound maps to a 404 at the HTTP layer.
var ErrEventNotFound = errors.New("event not found")

// maxItemQuantity bounds a single merged cart line. Client quantities are
// untrusted; without a cap, price * quantity can overflow int64.
const maxItemQuantity = 100

// ValidationError is a customer-safe rejection; its message may be shown
// verbatim. Anything else that comes out of the pipeline is internal and
// must be replaced with a generic message before reaching the customer.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a customer-safe rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type Item struct {
	ProductID uuid.UUID
	Quantity  int64
}

type Request struct {
	EventID  uuid.UUID
	Name     string
	Email    string
	Phone    string
	SMSOptIn bool
	Items    []Item
	// Origin is the public origin of the storefront, used for the payment
	// redirect URLs.
	Origin string
}

type Result struct {
	OrderID     uuid.UUID `json:"order_id"`
	RedirectURL string    `json:"url"`
}

type Service interface {
	Checkout(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	events   eventpkg.Repository
	products productpkg.Repository
	orders   orderpkg.Repository
	payments payment.Client
	now      func() time.Time
}

func New(events eventpkg.Repository, products productpkg.Repository, orders orderpkg.Repository, payments payment.Client) Service {
	return &service{events: events, products: products, orders: orders, payments: payments, now: time.Now}
}

// mergeItems de-duplicates cart lines by product id, summing quantities and
// preserving first-appearance order.
func mergeItems(items []Item) []Item {
	qtyByID := make(map[uuid.UUID]int64, len(items))
	order := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if _, seen := qtyByID[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		qtyByID[it.ProductID] += it.Quantity
	}
	merged := make([]Item, 0, len(order))
	for _, id := range order {
		merged = append(merged, Item{ProductID: id, Quantity: qtyByID[id]})
	}
	return merged
}

func (s *service) Checkout(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationErrorf("name is required")
	}
	email := customerpkg.NormalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationErrorf("a valid email is required")
	}
	if len(req.Items) == 0 {
		return nil, validationErrorf("cart is empty")
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, validationErrorf("item quantities must be positive")
		}
	}

	// Phone rules: SMS opt-in requires a valid US phone; a typed but invalid
	// phone is rejected even without opt-in.
	phoneRaw := strings.TrimSpace(req.Phone)
	var phone *string
	if phoneRaw != "" {
		normalized, ok := customerpkg.NormalizePhoneE164US(phoneRaw)
		if !ok {
			return nil, validationErrorf("phone number must be a valid US number (10 digits)")
		}
		phone = &normalized
	}
	if req.SMSOptIn && phone == nil {
		return nil, validationErrorf("please enter a valid US phone number to receive SMS reminders")
	}

	items := mergeItems(req.Items)
	productIDs := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if it.Quantity > maxItemQuantity {
			return nil, validationErrorf("item quantities are limited to %d per product", maxItemQuantity)
		}
		productIDs = append(productIDs, it.ProductID)
	}

	// Event must exist, be the active drop, and still be before deadline.
	evt, err := s.events.GetEventByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return nil, ErrEventNotFound
	}
	if !evt.IsActive {
		return nil, validationErrorf("preorders are closed for this event")
	}
	if s.now().After(evt.Deadline) {
		return nil, validationErrorf("order deadline has passed")
	}

	// Every requested product must be on the event's active allow-list.
	allowed, err := s.events.ListAllowedProductIDs(ctx, evt.ID, productIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range productIDs {
		if _, ok := allowed[id]; !ok {
			return nil, validationErrorf("one or more items are not available for this event")
		}
	}

	// Re-fetch authoritative product rows; a count mismatch means a product
	// went inactive between the allow-list check and here.
	products, err := s.products.ListActiveByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(productIDs) {
		return nil, validationErrorf("one or more products are invalid")
	}
	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// Line totals come from the authoritative unit price, never the client.
	type line struct {
		product *entity.Product
		qty     int64
		total   int64
	}
	lines := make([]line, 0, len(items))
	var totalCents int64
	for _, it := range items {
		p := byID[it.ProductID]
		lt := p.PriceCents * it.Quantity
		lines = append(lines, line{product: p, qty: it.Quantity, total: lt})
		totalCents += lt
	}
	if totalCents <= 0 {
		return nil, validationErrorf("invalid total")
	}

	o := &entity.Order{
		EventID:      evt.ID,
		CustomerName: strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        phone,
		SMSOptIn:     req.SMSOptIn,
		TotalCents:   totalCents,
		Paid:         false,
		Status:       entity.OrderPending,
		PublicToken:  uuid.NewString(),
	}
	created, err := s.orders.CreateOrder(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	orderItems := make([]entity.OrderItem, 0, len(lines))
	for _, l := range lines {
		orderItems = append(orderItems, entity.OrderItem{
			OrderID:        created.ID,
			ProductID:      l.product.ID,
			Qty:            l.qty,
			UnitPriceCents: l.product.PriceCents,
			LineTotalCents: l.total,
		})
	}
	if err := s.orders.CreateOrderItems(ctx, orderItems); err != nil {
		// The pending order stays behind; it can never become paid without a
		// verified webhook.
		return nil, fmt.Errorf("create order items: %w", err)
	}

	origin := strings.TrimRight(req.Origin, "/")
	lineItems := make([]payment.LineItem, 0, len(lines))
	for _, l := range lines {
		lineItems = append(lineItems, payment.LineItem{
			Name:            l.product.Name,
			UnitAmountCents: l.product.PriceCents,
			Quantity:        l.qty,
		})
	}
	phoneMeta := ""
	if phone != nil {
		phoneMeta = *phone
	}
	sess, err := s.payments.CreateCheckoutSession(ctx, payment.SessionParams{
		CustomerEmail: email,
		LineItems:     lineItems,
		Metadata: map[string]string{
			"orderId":       created.ID.String(),
			"eventId":       evt.ID.String(),
			"customerName":  created.CustomerName,
			"customerPhone": phoneMeta,
			"smsOptIn":      fmt.Sprintf("%t", req.SMSOptIn),
		},
		SuccessURL: origin + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  origin + "/canceled",
	})
	if err != nil {
		return nil, fmt.Errorf("create payment session: %w", err)
	}

	if err := s.orders.SetStripeSession(ctx, created.ID, sess.ID); err != nil {
		return nil, fmt.Errorf("link payment session: %w", err)
	}

	log.Info().
		Str("order_id", created.ID.String()).
		Str("event_id", evt.ID.String()).
		Int64("total_cents", totalCents).
		Msg("checkout session created")

	return &Result{OrderID: created.ID, RedirectURL: sess.URL}, nil
}
