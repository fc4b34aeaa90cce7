package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	customerpkg "github.com/cornellb28/orderbbs-app/customer"
	"github.com/cornellb28/orderbbs-app/entity"
	eventpkg "github.com/cornellb28/orderbbs-app/event"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
	productpkg "github.com/cornellb28/orderbbs-app/product"
)

// AdminHandler serves the authenticated back-office API: event and product
// management, order listings and the unified customer directory.
type AdminHandler struct {
	events    eventpkg.Service
	orders    orderpkg.Service
	products  productpkg.Service
	customers customerpkg.Service
}

func NewAdminHandler(events eventpkg.Service, orders orderpkg.Service, products productpkg.Service, customers customerpkg.Service) *AdminHandler {
	return &AdminHandler{events: events, orders: orders, products: products, customers: customers}
}

type eventPayload struct {
	Title           string    `json:"title" binding:"required"`
	PickupDate      string    `json:"pickupDate" binding:"required"`
	PickupStart     string    `json:"pickupStart" binding:"required"`
	PickupEnd       string    `json:"pickupEnd" binding:"required"`
	LocationName    string    `json:"locationName" binding:"required"`
	LocationAddress string    `json:"locationAddress"`
	Deadline        time.Time `json:"deadline" binding:"required"`
}

type eventPatchPayload struct {
	Title           *string    `json:"title"`
	PickupDate      *string    `json:"pickupDate"`
	PickupStart     *string    `json:"pickupStart"`
	PickupEnd       *string    `json:"pickupEnd"`
	LocationName    *string    `json:"locationName"`
	LocationAddress *string    `json:"locationAddress"`
	Deadline        *time.Time `json:"deadline"`
}

type eventWithStats struct {
	entity.Event
	Stats entity.EventStats `json:"stats"`
}

func (h *AdminHandler) CreateEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p eventPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		ev, err := h.events.CreateEvent(ctx, eventpkg.CreateEventRequest{
			Title:           p.Title,
			PickupDate:      p.PickupDate,
			PickupStart:     p.PickupStart,
			PickupEnd:       p.PickupEnd,
			LocationName:    p.LocationName,
			LocationAddress: p.LocationAddress,
			Deadline:        p.Deadline,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
			return
		}
		c.JSON(http.StatusCreated, ev)
	}
}

// ListEvents returns every event newest first, each with its order counts
// and revenue attached.
func (h *AdminHandler) ListEvents() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		list, err := h.events.ListEvents(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
			return
		}
		stats, err := h.orders.StatsByEvent(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event stats"})
			return
		}

		out := make([]eventWithStats, 0, len(list))
		for i := range list {
			out = append(out, eventWithStats{Event: list[i], Stats: stats[list[i].ID]})
		}
		c.JSON(http.StatusOK, gin.H{"events": out})
	}
}

func (h *AdminHandler) GetEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		ev, err := h.events.GetEvent(ctx, id)
		if errors.Is(err, eventpkg.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event"})
			return
		}
		c.JSON(http.StatusOK, ev)
	}
}

func (h *AdminHandler) UpdateEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}
		var p eventPatchPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		ev, err := h.events.UpdateEvent(ctx, id, eventpkg.UpdateEventRequest{
			Title:           p.Title,
			PickupDate:      p.PickupDate,
			PickupStart:     p.PickupStart,
			PickupEnd:       p.PickupEnd,
			LocationName:    p.LocationName,
			LocationAddress: p.LocationAddress,
			Deadline:        p.Deadline,
		})
		if errors.Is(err, eventpkg.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event"})
			return
		}
		c.JSON(http.StatusOK, ev)
	}
}

func (h *AdminHandler) DeleteEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if err := h.events.DeleteEvent(ctx, id); err != nil {
			if errors.Is(err, eventpkg.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

// ActivateEvent makes the given event the storefront's live drop,
// deactivating whichever event was live before.
func (h *AdminHandler) ActivateEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if err := h.events.Activate(ctx, id); err != nil {
			if errors.Is(err, eventpkg.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to activate event"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"activated": true})
	}
}

type menuPayload struct {
	Items []struct {
		ProductID string `json:"productId" binding:"required"`
		SortOrder int    `json:"sortOrder"`
		IsActive  *bool  `json:"isActive"`
	} `json:"items"`
}

func (h *AdminHandler) SetEventMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}
		var p menuPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		items := make([]eventpkg.MenuItem, 0, len(p.Items))
		for _, it := range p.Items {
			pid, err := uuid.Parse(it.ProductID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
				return
			}
			active := true
			if it.IsActive != nil {
				active = *it.IsActive
			}
			items = append(items, eventpkg.MenuItem{ProductID: pid, SortOrder: it.SortOrder, IsActive: active})
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if err := h.events.SetMenu(ctx, id, items); err != nil {
			if errors.Is(err, eventpkg.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set menu"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

func (h *AdminHandler) ListEventMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := h.events.ListMenu(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list menu"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// ListEventOrders returns an event's orders newest first plus the paid and
// unpaid rollups shown at the top of the admin order screen.
func (h *AdminHandler) ListEventOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		list, totals, err := h.orders.ListByEvent(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list, "totals": totals})
	}
}

func (h *AdminHandler) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		sum, err := h.orders.GetSummary(ctx, id)
		if errors.Is(err, orderpkg.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
			return
		}
		c.JSON(http.StatusOK, sum)
	}
}

type productPayload struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"priceCents" binding:"required"`
}

type productPatchPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"priceCents"`
	IsActive    *bool   `json:"isActive"`
}

func (h *AdminHandler) CreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p productPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if p.PriceCents <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		prod, err := h.products.CreateProduct(ctx, productpkg.CreateProductRequest{
			Name:        p.Name,
			Description: p.Description,
			PriceCents:  p.PriceCents,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, prod)
	}
}

func (h *AdminHandler) ListProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		activeOnly := c.Query("active") == "true"
		list, err := h.products.ListProducts(ctx, activeOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list})
	}
}

func (h *AdminHandler) UpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		var p productPatchPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if p.PriceCents != nil && *p.PriceCents <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		prod, err := h.products.UpdateProduct(ctx, id, productpkg.UpdateProductRequest{
			Name:        p.Name,
			Description: p.Description,
			PriceCents:  p.PriceCents,
			IsActive:    p.IsActive,
		})
		if errors.Is(err, productpkg.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
			return
		}
		c.JSON(http.StatusOK, prod)
	}
}

// ListCustomers serves the unified directory. Filters arrive as query
// params: ordered, subscribed, vip (any value enables) and q for search.
func (h *AdminHandler) ListCustomers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		f := customerpkg.Filter{
			Ordered:    c.Query("ordered") == "true",
			Subscribed: c.Query("subscribed") == "true",
			VIP:        c.Query("vip") == "true",
			Search:     c.Query("q"),
		}
		list, err := h.customers.ListUnified(ctx, f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list customers"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": list, "count": len(list)})
	}
}

func (h *AdminHandler) GetCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		detail, err := h.customers.GetDetail(ctx, c.Param("email"))
		if errors.Is(err, customerpkg.ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load customer"})
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

type profilePatchPayload struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	SMSOptIn *bool   `json:"smsOptIn"`
	VIP      *bool   `json:"vip"`
	Notes    *string `json:"notes"`
}

func (h *AdminHandler) UpdateCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p profilePatchPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		prof, err := h.customers.UpdateProfile(ctx, c.Param("email"), customerpkg.UpdateProfileRequest{
			Name:     p.Name,
			Phone:    p.Phone,
			SMSOptIn: p.SMSOptIn,
			VIP:      p.VIP,
			Notes:    p.Notes,
		})
		if errors.Is(err, customerpkg.ErrInvalidEmail) || errors.Is(err, customerpkg.ErrInvalidPhone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update customer"})
			return
		}
		c.JSON(http.StatusOK, prof)
	}
}
