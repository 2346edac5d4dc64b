package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// ToggleDateController sets or clears a date for the participant the
// browser is acting as. This is the calendar's click handler.
type ToggleDateController struct {
	UC            *usecase.ToggleDateUseCase
	registry      *roster.Registry
	guard         *exclusiveGuard
	toggleEnabled bool
}

func NewToggleDateController(uc *usecase.ToggleDateUseCase, reg *roster.Registry, load *usecase.LoadAvailabilityUseCase, multiUser, toggleEnabled bool) *ToggleDateController {
	return &ToggleDateController{
		UC:            uc,
		registry:      reg,
		guard:         newExclusiveGuard(multiUser, load),
		toggleEnabled: toggleEnabled,
	}
}

type toggleRequest struct {
	Date     string `json:"date" binding:"required"`
	Selected *bool  `json:"selected" binding:"required"`
}

func (h *ToggleDateController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req toggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d, err := caldate.Parse(req.Date)
		if err != nil {
			respondError(c, err)
			return
		}
		p, ok := SelectionFrom(c, h.registry).Active().Get()
		if !ok {
			respondError(c, fmt.Errorf("%w: no participants configured", usecase.ErrUnknownParticipant))
			return
		}
		selected := *req.Selected
		if !selected && !h.toggleEnabled {
			respondError(c, ErrToggleDisabled)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if selected {
			if err := h.guard.check(ctx, p.Name, d); err != nil {
				respondError(c, err)
				return
			}
		}
		res, err := h.UC.Execute(ctx, usecase.ToggleDateInput{UserName: p.Name, Date: d.String(), Selected: selected})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"name":     p.Name,
			"date":     d,
			"selected": selected,
			"changed":  res.Changed,
			"demo":     res.Demo,
		})
	}
}
