package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
)

type RemoveDateController struct {
	UC      *usecase.RemoveDateUseCase
	enabled bool
}

// NewRemoveDateController rejects every request with 403 unless enabled.
func NewRemoveDateController(uc *usecase.RemoveDateUseCase, enabled bool) *RemoveDateController {
	return &RemoveDateController{UC: uc, enabled: enabled}
}

func (h *RemoveDateController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.enabled {
			respondError(c, ErrToggleDisabled)
			return
		}
		name := c.Param("name")
		date := c.Param("date")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		res, err := h.UC.Execute(ctx, usecase.RemoveDateInput{UserName: name, Date: date})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"name":    name,
			"date":    date,
			"changed": res.Changed,
			"demo":    res.Demo,
		})
	}
}
