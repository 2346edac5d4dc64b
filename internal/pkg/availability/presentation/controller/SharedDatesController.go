package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/calendarview"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// SharedDatesController answers "which days work for everyone", plus a
// ranked list of the best partial matches (?min=N participants, default 2).
type SharedDatesController struct {
	UC       *usecase.LoadAvailabilityUseCase
	Range    usecase.RangeFunc
	registry *roster.Registry
}

func NewSharedDatesController(uc *usecase.LoadAvailabilityUseCase, reg *roster.Registry, rangeFn usecase.RangeFunc) *SharedDatesController {
	return &SharedDatesController{UC: uc, Range: rangeFn, registry: reg}
}

func (h *SharedDatesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		minCount := 2
		if v := c.Query("min"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "min must be a positive integer"})
				return
			}
			minCount = n
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		records, err := h.UC.Execute(ctx, usecase.LoadAvailabilityInput{})
		if err != nil {
			respondError(c, err)
			return
		}

		r := h.Range()
		c.JSON(http.StatusOK, gin.H{
			"range":  r.DisplayString(),
			"shared": calendarview.SharedDates(records, h.registry, r),
			"best":   calendarview.BestDates(records, h.registry, r, minCount),
		})
	}
}
