package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/FlintShadey/huddleuptime/internal/infrastructure/realtime"
	appLog "github.com/FlintShadey/huddleuptime/internal/log"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// AvailabilitySocketController streams store changes to browsers. Clients
// apply each event to their local copy (last write wins on user and date)
// and reload everything after a reconnect.
type AvailabilitySocketController struct {
	router    *realtime.Router
	subscribe *usecase.SubscribeChangesUseCase
	registry  *roster.Registry
}

func NewAvailabilitySocketController(router *realtime.Router, subscribe *usecase.SubscribeChangesUseCase, reg *roster.Registry) *AvailabilitySocketController {
	return &AvailabilitySocketController{router: router, subscribe: subscribe, registry: reg}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The stream is read-only and carries nothing the REST reads don't.
		return true
	},
}

type connectedFrame struct {
	Type        string `json:"type"`
	Session     string `json:"session"`
	Participant string `json:"participant,omitempty"`
}

type changeFrame struct {
	Type  string                   `json:"type"`
	Event availability.ChangeEvent `json:"event"`
}

// Start forwards every change event to all sessions until ctx is done.
func (ctl *AvailabilitySocketController) Start(ctx context.Context) (*usecase.Subscription, error) {
	return ctl.subscribe.Execute(ctx, usecase.SubscribeChangesInput{
		Handler: func(ev availability.ChangeEvent) {
			payload, err := json.Marshal(changeFrame{Type: "change", Event: ev})
			if err != nil {
				appLog.Error("encode change frame", err)
				return
			}
			n := ctl.router.Broadcast(payload)
			appLog.Debug("change broadcast", "type", string(ev.Type), "sessions", n)
		},
	})
}

// Handle upgrades the request and holds the session until the client leaves.
func (ctl *AvailabilitySocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var participant string
		if p, ok := SelectionFrom(c, ctl.registry).Active().Get(); ok {
			participant = p.Name
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(participant, ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		_ = conn.SendJSON(connectedFrame{Type: "connected", Session: conn.ID, Participant: participant})

		if err := conn.ReadLoop(); err != nil {
			appLog.Debug("realtime session ended", "session", conn.ID, "err", err)
		}
	}
}
