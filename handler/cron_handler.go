package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cornellb28/orderbbs-app/entity"
	reminderpkg "github.com/cornellb28/orderbbs-app/reminder"
)

// CronHandler exposes the scheduled jobs over HTTP so an external scheduler
// can trigger them.
type CronHandler struct {
	reminders reminderpkg.Service
}

func NewCronHandler(reminders reminderpkg.Service) *CronHandler {
	return &CronHandler{reminders: reminders}
}

// RunReminders sweeps the active event's orders for the given reminder kind
// and texts everyone who opted in and has not been reminded yet.
func (h *CronHandler) RunReminders() gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := entity.ReminderKind(c.Param("kind"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
		defer cancel()

		res, err := h.reminders.Run(ctx, kind)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
