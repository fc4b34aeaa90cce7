package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	checkoutpkg "github.com/cornellb28/orderbbs-app/checkout"
	customerpkg "github.com/cornellb28/orderbbs-app/customer"
	eventpkg "github.com/cornellb28/orderbbs-app/event"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
)

// PublicHandler serves the unauthenticated storefront surface.
type PublicHandler struct {
	events    eventpkg.Service
	orders    orderpkg.Service
	customers customerpkg.Service
	checkout  checkoutpkg.Service
}

func NewPublicHandler(events eventpkg.Service, orders orderpkg.Service, customers customerpkg.Service, checkout checkoutpkg.Service) *PublicHandler {
	return &PublicHandler{events: events, orders: orders, customers: customers, checkout: checkout}
}

// siteOrigin prefers the request Origin header and falls back to SITE_URL.
func siteOrigin(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return origin
	}
	if site := os.Getenv("SITE_URL"); site != "" {
		return site
	}
	return "http://localhost:3000"
}

// GetActiveEvent returns the current drop and its menu, or 404 when no
// event is active.
func (h *PublicHandler) GetActiveEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		evt, err := h.events.ActiveEventWithMenu(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event"})
			return
		}
		if evt == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active event"})
			return
		}
		c.JSON(http.StatusOK, evt)
	}
}

type checkoutItemPayload struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

type checkoutPayload struct {
	EventID  string `json:"eventId" binding:"required"`
	Customer struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Phone    string `json:"phone"`
		SMSOptIn bool   `json:"smsOptIn"`
	} `json:"customer" binding:"required"`
	Items []checkoutItemPayload `json:"items" binding:"required"`
}

// Checkout runs the order pipeline and returns the hosted payment URL.
// Validation failures surface their reason; anything else is a generic 500
// so store internals never leak to customers.
func (h *PublicHandler) Checkout() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p checkoutPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		eventID, err := uuid.Parse(p.EventID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid eventId"})
			return
		}
		req := checkoutpkg.Request{
			EventID:  eventID,
			Name:     p.Customer.Name,
			Email:    p.Customer.Email,
			Phone:    p.Customer.Phone,
			SMSOptIn: p.Customer.SMSOptIn,
			Origin:   siteOrigin(c),
		}
		for _, it := range p.Items {
			pid, err := uuid.Parse(it.ProductID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
				return
			}
			req.Items = append(req.Items, checkoutpkg.Item{ProductID: pid, Quantity: it.Quantity})
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		res, err := h.checkout.Checkout(ctx, req)
		if err != nil {
			switch {
			case checkoutpkg.IsValidationError(err):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case err == checkoutpkg.ErrEventNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": res.RedirectURL})
	}
}

type subscribePayload struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	SMSOptIn bool   `json:"smsOptIn"`
}

func (h *PublicHandler) Subscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p subscribePayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload (check email/phone)"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		err := h.customers.Subscribe(ctx, customerpkg.SubscribeRequest{
			Name:     p.Name,
			Email:    p.Email,
			Phone:    p.Phone,
			SMSOptIn: p.SMSOptIn,
		})
		if err != nil {
			switch err {
			case customerpkg.ErrInvalidEmail, customerpkg.ErrInvalidPhone:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "subscribe failed"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GetReceipt returns an order summary by id plus public token.
func (h *PublicHandler) GetReceipt() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}
		token := c.Query("t")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		sum, err := h.orders.GetReceipt(ctx, id, token)
		if err != nil {
			if err == orderpkg.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
			return
		}
		c.JSON(http.StatusOK, sum)
	}
}

// CalendarExport serves the pickup window as an .ics attachment.
func (h *PublicHandler) CalendarExport() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}
		token := c.Query("t")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		sum, err := h.orders.GetReceipt(ctx, id, token)
		if err != nil {
			if err == orderpkg.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
			return
		}
		ics := orderpkg.BuildPickupICS(sum, time.Now())
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "pickup-"+sum.ID.String()+".ics"))
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
	}
}
