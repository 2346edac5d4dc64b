package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

type ListParticipantsController struct {
	registry *roster.Registry
}

func NewListParticipantsController(reg *roster.Registry) *ListParticipantsController {
	return &ListParticipantsController{registry: reg}
}

func (h *ListParticipantsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		sel := SelectionFrom(c, h.registry)
		body := gin.H{
			"participants": h.registry.List(),
			"activeIndex":  sel.ActiveIndex(),
		}
		if p, ok := sel.Active().Get(); ok {
			body["active"] = p.Name
		}
		c.JSON(http.StatusOK, body)
	}
}
