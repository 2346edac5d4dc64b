package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/calendarview"
)

const maxICSBody = 1 << 20

// ImportICSController reads an uploaded calendar and stores the days it
// covers as the participant's dates. The body is either raw text/calendar or
// a multipart form with a "file" field. With ?merge=true the imported days
// are added to the existing ones instead of replacing them.
type ImportICSController struct {
	UC    *usecase.ReplaceDatesUseCase
	List  *usecase.ListParticipantDatesUseCase
	Range usecase.RangeFunc
	guard *exclusiveGuard
}

func NewImportICSController(uc *usecase.ReplaceDatesUseCase, list *usecase.ListParticipantDatesUseCase, load *usecase.LoadAvailabilityUseCase, rangeFn usecase.RangeFunc, multiUser bool) *ImportICSController {
	return &ImportICSController{UC: uc, List: list, Range: rangeFn, guard: newExclusiveGuard(multiUser, load)}
}

func (h *ImportICSController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		merge := c.Query("merge") == "true"

		body, err := icsBody(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer body.Close()

		r := h.Range()
		dates, err := calendarview.ImportICS(io.LimitReader(body, maxICSBody), r)
		if err != nil {
			respondError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if merge {
			existing, err := h.List.Execute(ctx, usecase.ListParticipantDatesInput{UserName: name})
			if err != nil {
				respondError(c, err)
				return
			}
			// Expired dates would fail the range check on replace.
			for _, d := range existing {
				if r.Contains(d) {
					dates = append(dates, d)
				}
			}
		}

		out, err := replaceDates(ctx, h.UC, h.guard, name, dates)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"name":     name,
			"imported": len(out.Dates),
			"dates":    out.Dates,
			"changed":  out.Changed,
			"demo":     out.Demo,
		})
	}
}

func icsBody(c *gin.Context) (io.ReadCloser, error) {
	if c.ContentType() == "multipart/form-data" {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, errors.New("multipart upload needs a \"file\" field")
		}
		return fh.Open()
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil, errors.New("calendar body is required")
	}
	return c.Request.Body, nil
}
