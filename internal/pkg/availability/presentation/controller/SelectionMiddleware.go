package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// ParticipantCookie remembers which participant a browser acts as.
const ParticipantCookie = "huddle_participant"

const selectionKey = "huddle.selection"

// ActiveParticipant builds a roster.Selection for the request from the
// participant cookie. Unknown or missing names leave the first participant
// active.
func ActiveParticipant(reg *roster.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sel := roster.NewSelection(reg)
		if name, err := c.Cookie(ParticipantCookie); err == nil && name != "" {
			sel.SetActiveByName(name)
		}
		c.Set(selectionKey, sel)
		c.Next()
	}
}

// SelectionFrom returns the request's selection, or a fresh default one when
// the middleware did not run.
func SelectionFrom(c *gin.Context, reg *roster.Registry) *roster.Selection {
	if v, ok := c.Get(selectionKey); ok {
		if sel, ok := v.(*roster.Selection); ok {
			return sel
		}
	}
	return roster.NewSelection(reg)
}

func setParticipantCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ParticipantCookie, name, 365*24*3600, "/", "", false, true)
}
