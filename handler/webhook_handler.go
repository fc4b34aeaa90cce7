package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	checkoutpkg "github.com/cornellb28/orderbbs-app/checkout"
	"github.com/cornellb28/orderbbs-app/payment"
)

// WebhookHandler receives Stripe's asynchronous payment notifications.
type WebhookHandler struct {
	verifier  payment.WebhookVerifier
	confirmer *checkoutpkg.Confirmer
}

func NewWebhookHandler(verifier payment.WebhookVerifier, confirmer *checkoutpkg.Confirmer) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, confirmer: confirmer}
}

// HandleStripe verifies the signature, then acknowledges every valid
// notification with 200 regardless of downstream outcome, so the processor
// never retries because of our own DB or email failures.
func (h *WebhookHandler) HandleStripe() gin.HandlerFunc {
	return func(c *gin.Context) {
		sig := c.GetHeader("Stripe-Signature")
		if sig == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing stripe-signature"})
			return
		}
		// Raw body is required for signature verification.
		payload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		ev, err := h.verifier.VerifyEvent(payload, sig)
		if err != nil {
			log.Error().Err(err).Msg("webhook signature verification failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}

		if ev.Type == payment.EventTypeSessionCompleted && ev.Session != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
			defer cancel()
			h.confirmer.HandleSessionCompleted(ctx, ev.Session)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
