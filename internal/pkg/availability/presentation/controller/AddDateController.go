package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
)

// AddDateController marks a participant available on one date.
type AddDateController struct {
	UC    *usecase.AddDateUseCase
	guard *exclusiveGuard
}

func NewAddDateController(uc *usecase.AddDateUseCase, load *usecase.LoadAvailabilityUseCase, multiUser bool) *AddDateController {
	return &AddDateController{UC: uc, guard: newExclusiveGuard(multiUser, load)}
}

type addDateRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h *AddDateController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		var req addDateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d, err := caldate.Parse(req.Date)
		if err != nil {
			respondError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.guard.check(ctx, name, d); err != nil {
			respondError(c, err)
			return
		}
		res, err := h.UC.Execute(ctx, usecase.AddDateInput{UserName: name, Date: d.String()})
		if err != nil {
			respondError(c, err)
			return
		}

		status := http.StatusOK
		if res.Changed {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{
			"name":    name,
			"date":    d,
			"changed": res.Changed,
			"demo":    res.Demo,
		})
	}
}
