package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
)

// ReplaceDatesController makes the request body the participant's complete
// date set. An empty list clears it.
type ReplaceDatesController struct {
	UC    *usecase.ReplaceDatesUseCase
	guard *exclusiveGuard
}

func NewReplaceDatesController(uc *usecase.ReplaceDatesUseCase, load *usecase.LoadAvailabilityUseCase, multiUser bool) *ReplaceDatesController {
	return &ReplaceDatesController{UC: uc, guard: newExclusiveGuard(multiUser, load)}
}

type replaceDatesRequest struct {
	Dates []string `json:"dates" binding:"required"`
}

func (h *ReplaceDatesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		var req replaceDatesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dates := make([]caldate.Date, 0, len(req.Dates))
		for _, s := range req.Dates {
			d, err := caldate.Parse(s)
			if err != nil {
				respondError(c, err)
				return
			}
			dates = append(dates, d)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		out, err := replaceDates(ctx, h.UC, h.guard, name, dates)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"name":    name,
			"dates":   out.Dates,
			"changed": out.Changed,
			"demo":    out.Demo,
		})
	}
}

func replaceDates(ctx context.Context, uc *usecase.ReplaceDatesUseCase, guard *exclusiveGuard, name string, dates []caldate.Date) (usecase.ReplaceDatesOutput, error) {
	if err := guard.check(ctx, name, dates...); err != nil {
		return usecase.ReplaceDatesOutput{}, err
	}
	raw := make([]string, len(dates))
	for i, d := range dates {
		raw[i] = d.String()
	}
	return uc.Execute(ctx, usecase.ReplaceDatesInput{UserName: name, Dates: raw})
}
