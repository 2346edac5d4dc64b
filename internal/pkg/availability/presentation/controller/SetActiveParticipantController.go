package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// SetActiveParticipantController switches the participant this browser acts
// as and remembers it in a cookie.
type SetActiveParticipantController struct {
	registry *roster.Registry
}

func NewSetActiveParticipantController(reg *roster.Registry) *SetActiveParticipantController {
	return &SetActiveParticipantController{registry: reg}
}

type setActiveRequest struct {
	Name  *string `json:"name"`
	Index *int    `json:"index"`
}

func (h *SetActiveParticipantController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sel := SelectionFrom(c, h.registry)
		switch {
		case req.Name != nil:
			if !sel.SetActiveByName(*req.Name) {
				respondError(c, fmt.Errorf("%w: %q", usecase.ErrUnknownParticipant, *req.Name))
				return
			}
		case req.Index != nil:
			if !sel.SetActive(*req.Index) {
				respondError(c, fmt.Errorf("%w: index %d", usecase.ErrUnknownParticipant, *req.Index))
				return
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "name or index is required"})
			return
		}

		p := sel.Active().MustGet()
		setParticipantCookie(c, p.Name)
		c.JSON(http.StatusOK, gin.H{
			"active":      p,
			"activeIndex": sel.ActiveIndex(),
		})
	}
}
