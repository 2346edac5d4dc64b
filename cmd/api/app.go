package main

import (
	"context"
	"fmt"
	"time"

	"github.com/FlintShadey/huddleuptime/internal/config"
	cacheAdapter "github.com/FlintShadey/huddleuptime/internal/infrastructure/cache/adapter"
	cacheport "github.com/FlintShadey/huddleuptime/internal/infrastructure/cache/port"
	"github.com/FlintShadey/huddleuptime/internal/infrastructure/changefeed"
	"github.com/FlintShadey/huddleuptime/internal/infrastructure/database"
	queueAdapter "github.com/FlintShadey/huddleuptime/internal/infrastructure/queue/adapter"
	qport "github.com/FlintShadey/huddleuptime/internal/infrastructure/queue/port"
	"github.com/FlintShadey/huddleuptime/internal/infrastructure/realtime"
	"github.com/FlintShadey/huddleuptime/internal/infrastructure/scheduler"
	appLog "github.com/FlintShadey/huddleuptime/internal/log"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/task"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/adapter"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
	httpHandler "github.com/FlintShadey/huddleuptime/internal/pkg/availability/presentation/http"
	"github.com/FlintShadey/huddleuptime/internal/pkg/roster"
)

// app owns the long-lived resources behind the HTTP routes.
type app struct {
	cfg      *config.Config
	demo     bool
	registry *roster.Registry
	repo     repository.AvailabilityRepository
	snapshot *usecase.SnapshotCache
	broker   *changefeed.Broker[availability.ChangeEvent]
	realtime *realtime.Router
	listener *changefeed.PgListener

	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config, env config.Env) (*app, error) {
	a := &app{
		cfg:      cfg,
		registry: roster.FromConfig(cfg),
		broker:   changefeed.NewBroker[availability.ChangeEvent](0),
		realtime: realtime.NewRouter(),
	}
	a.onClose(a.broker.Close)
	a.onClose(a.realtime.Close)

	if err := a.openStore(ctx, env); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openCache(ctx, env); err != nil {
		a.Close()
		return nil, err
	}
	a.startListener(ctx)
	if err := a.startMaintenance(ctx, env); err != nil {
		a.Close()
		return nil, err
	}

	appLog.Info("huddleuptime ready",
		"participants", a.registry.Len(),
		"range", cfg.CurrentRange().DisplayString(),
		"store", env.StoreDriver,
		"demo", a.demo,
		"realtime", cfg.Features.RealTimeSync,
	)
	return a, nil
}

func (a *app) openStore(ctx context.Context, env config.Env) error {
	switch {
	case env.StoreDriver == config.StoreDriverMemory:
		a.repo = adapter.NewMemoryAvailabilityRepository(a.publish)
		appLog.Warn("using in-memory store, data is lost on restart")
		return nil
	case env.DemoMode():
		a.demo = true
		a.repo = adapter.NewDemoAvailabilityRepository()
		appLog.Warn("no database configured, running in demo mode", "env", config.EnvDatabaseURL)
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := database.Connect(connectCtx, env.DatabaseURL, database.WithApplicationName("huddleuptime"))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	a.onClose(pool.Close)

	if err := database.Migrate(connectCtx, pool); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	a.repo = adapter.NewPgAvailabilityRepository(pool)
	// Other processes write to the same table; their changes reach the cache
	// and the websocket stream only through this feed.
	a.listener = changefeed.NewPgListener(pool, changefeed.Channel, a.publishPayload)
	return nil
}

// startListener runs the Postgres change feed. Each (re)connect drops the
// snapshot because notifications sent while disconnected are gone.
func (a *app) startListener(ctx context.Context) {
	if a.listener == nil {
		return
	}
	a.listener.OnListen = func() {
		ictx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		a.snapshot.Invalidate(ictx)
	}
	go func() {
		if err := a.listener.Run(ctx); err != nil {
			appLog.Error("change listener stopped", err)
		}
	}()
}

// openCache picks Redis when configured and reachable, else process memory.
// Every change event drops the snapshot so other writers are seen promptly.
func (a *app) openCache(ctx context.Context, env config.Env) error {
	var c cacheport.Cache
	if env.CacheEnabled() {
		rc, err := cacheAdapter.NewRedisCache(ctx, env.RedisURL, "huddle:")
		if err != nil {
			appLog.Error("redis unavailable, using memory cache", err)
		} else {
			c = rc
		}
	}
	if c == nil {
		c = cacheAdapter.NewMemoryCache()
	}
	a.onClose(func() { _ = c.Close() })
	a.snapshot = usecase.NewSnapshotCache(c)

	_, err := usecase.NewSubscribeChangesUseCase(a.broker).Execute(ctx, usecase.SubscribeChangesInput{
		Handler: func(availability.ChangeEvent) {
			ictx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			a.snapshot.Invalidate(ictx)
		},
	})
	return err
}

// startMaintenance schedules the nightly prune. Tasks go through asynq when
// Redis is configured and run inline otherwise.
func (a *app) startMaintenance(ctx context.Context, env config.Env) error {
	if !a.cfg.Maintenance.PruneEnabled {
		return nil
	}

	var (
		client qport.Client
		server qport.Server
	)
	if env.CacheEnabled() {
		ac, err := queueAdapter.NewAsynqClient(env.RedisURL)
		if err != nil {
			return fmt.Errorf("asynq client: %w", err)
		}
		as, err := queueAdapter.NewAsynqServer(env.RedisURL, env.AsynqConcurrency, "")
		if err != nil {
			_ = ac.Close()
			return fmt.Errorf("asynq server: %w", err)
		}
		client, server = ac, as
	} else {
		q := queueAdapter.NewInlineQueue()
		client, server = q, q
	}
	a.onClose(func() { _ = client.Close() })

	pruneUC := usecase.NewPruneExpiredUseCase(a.repo, a.cfg.CurrentRange, a.snapshot)
	task.RegisterPruneExpiredTask(server, pruneUC)
	go func() {
		if err := server.Run(ctx); err != nil {
			appLog.Error("task server stopped", err)
		}
	}()

	sched := scheduler.New(a.cfg.Location())
	err := sched.Add(a.cfg.Maintenance.PruneCron, "prune-expired", func(ctx context.Context) error {
		_, err := task.EnqueuePruneExpired(ctx, client, task.PruneExpiredTaskPayload{})
		return err
	})
	if err != nil {
		return err
	}
	sched.Start()
	a.onClose(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sched.Stop(stopCtx)
	})
	return nil
}

func (a *app) deps() httpHandler.Deps {
	return httpHandler.Deps{
		Config:   a.cfg,
		Registry: a.registry,
		Repo:     a.repo,
		Cache:    a.snapshot,
		Changes:  a.broker,
		Realtime: a.realtime,
		Demo:     a.demo,
	}
}

func (a *app) publish(ev availability.ChangeEvent) {
	a.broker.Publish(ev)
}

func (a *app) publishPayload(payload string) {
	ev, err := availability.ParseChangeEvent([]byte(payload))
	if err != nil {
		appLog.Warn("dropping malformed change notification", "err", err)
		return
	}
	a.broker.Publish(ev)
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
