package controller

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/config"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/calendarview"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

const icsContentType = "text/calendar; charset=utf-8"

// SharedICSController publishes the shared dates as a subscribable calendar.
type SharedICSController struct {
	UC       *usecase.LoadAvailabilityUseCase
	cfg      *config.Config
	registry *roster.Registry
}

func NewSharedICSController(uc *usecase.LoadAvailabilityUseCase, cfg *config.Config, reg *roster.Registry) *SharedICSController {
	return &SharedICSController{UC: uc, cfg: cfg, registry: reg}
}

func (h *SharedICSController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		records, err := h.UC.Execute(ctx, usecase.LoadAvailabilityInput{})
		if err != nil {
			respondError(c, err)
			return
		}

		dates := calendarview.SharedDates(records, h.registry, h.cfg.CurrentRange())
		var buf bytes.Buffer
		err = calendarview.ExportICS(&buf, dates, calendarview.ExportOptions{
			Name:      h.cfg.AppShortName + " shared dates",
			Summary:   "Everyone available",
			UIDPrefix: "shared-",
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode calendar"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="shared.ics"`)
		c.Data(http.StatusOK, icsContentType, buf.Bytes())
	}
}
