package controller

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/config"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/calendarview"
)

// ExportICSController downloads one participant's dates as a calendar.
type ExportICSController struct {
	UC  *usecase.ListParticipantDatesUseCase
	cfg *config.Config
}

func NewExportICSController(uc *usecase.ListParticipantDatesUseCase, cfg *config.Config) *ExportICSController {
	return &ExportICSController{UC: uc, cfg: cfg}
}

func (h *ExportICSController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		dates, err := h.UC.Execute(ctx, usecase.ListParticipantDatesInput{UserName: name})
		if err != nil {
			respondError(c, err)
			return
		}

		slug := slugify(name)
		var buf bytes.Buffer
		err = calendarview.ExportICS(&buf, dates, calendarview.ExportOptions{
			Name:      fmt.Sprintf("%s - %s", h.cfg.AppShortName, name),
			Summary:   name + " available",
			UIDPrefix: slug + "-",
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode calendar"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ics"`, slug))
		c.Data(http.StatusOK, icsContentType, buf.Bytes())
	}
}

// slugify keeps letters and digits and joins the rest with dashes:
// "Flint & Maryam" becomes "flint-maryam".
func slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return "participant"
	}
	return strings.Join(fields, "-")
}
