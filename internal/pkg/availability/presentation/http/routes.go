package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/auth"
	"github.com/FlintShadey/huddleuptime/internal/config"
	"github.com/FlintShadey/huddleuptime/internal/infrastructure/realtime"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/presentation/controller"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// Deps is what the availability routes are built from.
type Deps struct {
	Config   *config.Config
	Registry *roster.Registry
	Repo     repository.AvailabilityRepository
	Cache    *usecase.SnapshotCache
	// Changes feeds the websocket stream; nil disables it.
	Changes  usecase.ChangeSource
	Realtime *realtime.Router
	Demo     bool
}

// RegisterRoutes registers availability HTTP endpoints under the given router
// group. It constructs per-endpoint controllers and binds them directly to
// routes. The websocket fan-out stops when ctx is done.
func RegisterRoutes(ctx context.Context, g *gin.RouterGroup, d Deps) error {
	cfg := d.Config
	reg := d.Registry
	rangeFn := usecase.RangeFunc(cfg.CurrentRange)
	features := cfg.Features

	loadUC := usecase.NewLoadAvailabilityUseCase(d.Repo, d.Cache)
	listUC := usecase.NewListParticipantDatesUseCase(d.Repo, reg)
	addUC := usecase.NewAddDateUseCase(d.Repo, reg, rangeFn, d.Cache)
	removeUC := usecase.NewRemoveDateUseCase(d.Repo, reg, d.Cache)
	toggleUC := usecase.NewToggleDateUseCase(addUC, removeUC)
	replaceUC := usecase.NewReplaceDatesUseCase(d.Repo, reg, rangeFn, d.Cache)

	var creds *auth.Credentials
	if cfg.BasicAuthEnabled() {
		creds = &auth.Credentials{Username: cfg.BasicAuth.Username, PasswordHash: cfg.BasicAuth.PasswordHash}
	}

	g.Use(controller.ActiveParticipant(reg))
	write := g.Group("", RequireBasicAuth(creds, cfg.AppShortName))

	// GET /api/v1/config -> settings for the browser
	g.GET("/config", controller.NewConfigController(cfg, reg, d.Demo).Handle())

	// participants and the browser's active one
	g.GET("/participants", controller.NewListParticipantsController(reg).Handle())
	g.PUT("/participants/active", controller.NewSetActiveParticipantController(reg).Handle())

	// everyone's availability
	g.GET("/availability", controller.NewLoadAvailabilityController(loadUC, rangeFn).Handle())
	g.GET("/availability/shared", controller.NewSharedDatesController(loadUC, reg, rangeFn).Handle())
	g.GET("/availability/shared.ics", controller.NewSharedICSController(loadUC, cfg, reg).Handle())

	// one participant's dates
	g.GET("/participants/:name/dates", controller.NewListParticipantDatesController(listUC).Handle())
	g.GET("/participants/:name/dates.ics", controller.NewExportICSController(listUC, cfg).Handle())
	write.POST("/participants/:name/dates", controller.NewAddDateController(addUC, loadUC, features.MultiUserSelection).Handle())
	write.PUT("/participants/:name/dates", controller.NewReplaceDatesController(replaceUC, loadUC, features.MultiUserSelection).Handle())
	write.DELETE("/participants/:name/dates/:date", controller.NewRemoveDateController(removeUC, features.DateToggle).Handle())
	write.POST("/participants/:name/dates.ics", controller.NewImportICSController(replaceUC, listUC, loadUC, rangeFn, features.MultiUserSelection).Handle())

	// POST /api/v1/toggle -> calendar click for the active participant
	write.POST("/toggle", controller.NewToggleDateController(toggleUC, reg, loadUC, features.MultiUserSelection, features.DateToggle).Handle())

	// GET /api/v1/calendar/:year/:month -> month grid
	g.GET("/calendar/:year/:month", controller.NewCalendarMonthController(loadUC, cfg, reg).Handle())

	if !features.RealTimeSync || d.Changes == nil || d.Realtime == nil {
		return nil
	}
	socketCtl := controller.NewAvailabilitySocketController(d.Realtime, usecase.NewSubscribeChangesUseCase(d.Changes), reg)
	if _, err := socketCtl.Start(ctx); err != nil {
		return err
	}
	// GET /api/v1/ws -> realtime change stream
	g.GET("/ws", socketCtl.Handle())
	return nil
}
