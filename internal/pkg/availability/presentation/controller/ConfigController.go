package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/config"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// ConfigController serves the settings the browser needs to render.
type ConfigController struct {
	cfg      *config.Config
	registry *roster.Registry
	demo     bool
}

func NewConfigController(cfg *config.Config, reg *roster.Registry, demo bool) *ConfigController {
	return &ConfigController{cfg: cfg, registry: reg, demo: demo}
}

type rangePayload struct {
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Display string   `json:"display"`
	Months  []string `json:"months"`
}

func (h *ConfigController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := h.cfg.CurrentRange()
		months := make([]string, 0, 4)
		for ym := range r.AllMonths() {
			months = append(months, ym.String())
		}

		c.JSON(http.StatusOK, gin.H{
			"appName":      h.cfg.AppName,
			"appShortName": h.cfg.AppShortName,
			"logoPath":     h.cfg.LogoPath,
			"timezone":     h.cfg.Timezone,
			"weekStart":    h.cfg.WeekStart,
			"users":        h.registry.List(),
			"dateRange":    h.cfg.DateRange,
			"range": rangePayload{
				Start:   r.StartDate().String(),
				End:     r.EndDate().String(),
				Display: r.DisplayString(),
				Months:  months,
			},
			"ui":        h.cfg.UI,
			"features":  h.cfg.Features,
			"writeAuth": h.cfg.BasicAuthEnabled(),
			"demoMode":  h.demo,
		})
	}
}
