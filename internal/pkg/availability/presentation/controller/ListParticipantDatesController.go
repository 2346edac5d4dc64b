package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
)

type ListParticipantDatesController struct {
	UC *usecase.ListParticipantDatesUseCase
}

func NewListParticipantDatesController(uc *usecase.ListParticipantDatesUseCase) *ListParticipantDatesController {
	return &ListParticipantDatesController{UC: uc}
}

func (h *ListParticipantDatesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		dates, err := h.UC.Execute(ctx, usecase.ListParticipantDatesInput{UserName: name})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"name": name, "dates": dates})
	}
}
