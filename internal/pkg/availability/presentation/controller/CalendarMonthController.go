package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	"github.com/FlintShadey/huddleuptime/internal/config"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/calendarview"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// CalendarMonthController serves one month grid with everyone's selections
// overlaid. Only months inside the range are served; with month navigation
// off only the first one is.
type CalendarMonthController struct {
	UC       *usecase.LoadAvailabilityUseCase
	cfg      *config.Config
	registry *roster.Registry
}

func NewCalendarMonthController(uc *usecase.LoadAvailabilityUseCase, cfg *config.Config, reg *roster.Registry) *CalendarMonthController {
	return &CalendarMonthController{UC: uc, cfg: cfg, registry: reg}
}

func (h *CalendarMonthController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		year, yerr := strconv.Atoi(c.Param("year"))
		month, merr := strconv.Atoi(c.Param("month"))
		if yerr != nil || merr != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year and month must be numeric, month 1-12"})
			return
		}
		ym := caldate.YearMonth{Year: year, Month: time.Month(month)}

		loc := h.cfg.Location()
		today := caldate.Today(loc)
		r := h.cfg.Range(today)
		navigation := h.cfg.Features.MonthNavigation
		if ym.Compare(r.Start) < 0 || ym.Compare(r.End) > 0 || (!navigation && ym != r.Start) {
			c.JSON(http.StatusNotFound, gin.H{"error": ym.String() + " is not available", "range": r.DisplayString()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		records, err := h.UC.Execute(ctx, usecase.LoadAvailabilityInput{Within: &r})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, calendarview.BuildMonth(ym, records, h.registry, calendarview.Options{
			WeekStartsMonday: h.cfg.WeekStartsMonday(),
			Today:            today,
			Range:            r,
			Navigation:       navigation,
		}))
	}
}
