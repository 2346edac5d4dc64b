package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	appLog "github.com/FlintShadey/huddleuptime/internal/log"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/calendarview"
)

var (
	// ErrDateTaken is returned when multi-user selection is off and another
	// participant already holds the date.
	ErrDateTaken = errors.New("date already selected by another participant")
	// ErrToggleDisabled rejects removals while date toggling is off.
	ErrToggleDisabled = errors.New("removing dates is disabled")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, caldate.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnknownParticipant):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrOutOfRange), errors.Is(err, calendarview.ErrNoEvents):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrDateTaken):
		return http.StatusConflict
	case errors.Is(err, ErrToggleDisabled):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// respondError writes err as {"error": ...}. Backend failures are logged and
// reported without internals.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		appLog.Error("request failed", err, "method", c.Request.Method, "path", c.FullPath())
		c.JSON(status, gin.H{"error": "unexpected persistence error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
