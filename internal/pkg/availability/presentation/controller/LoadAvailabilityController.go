package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
)

// LoadAvailabilityController returns every record. With ?inRange=true only
// records inside the selectable range are returned.
type LoadAvailabilityController struct {
	UC    *usecase.LoadAvailabilityUseCase
	Range usecase.RangeFunc
}

func NewLoadAvailabilityController(uc *usecase.LoadAvailabilityUseCase, rangeFn usecase.RangeFunc) *LoadAvailabilityController {
	return &LoadAvailabilityController{UC: uc, Range: rangeFn}
}

func (h *LoadAvailabilityController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in usecase.LoadAvailabilityInput
		if v := c.Query("inRange"); v != "" {
			within, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "inRange must be a boolean"})
				return
			}
			if within {
				r := h.Range()
				in.Within = &r
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		records, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"records": records})
	}
}
