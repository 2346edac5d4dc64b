package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/FlintShadey/huddleuptime/cmd/api/router/v1"
	"github.com/FlintShadey/huddleuptime/internal/config"
	"github.com/FlintShadey/huddleuptime/internal/infrastructure/database"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/usecase"
	"github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/adapter"
)

func TestNewAppDemoMode(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, config.DefaultConfig(), config.Env{StoreDriver: config.StoreDriverPostgres})
	require.NoError(t, err)
	defer a.Close()

	assert.True(t, a.demo)
	records, err := usecase.NewLoadAvailabilityUseCase(a.repo, a.snapshot).Execute(ctx, usecase.LoadAvailabilityInput{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNewAppMemoryStorePublishesChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.DefaultConfig()
	cfg.Maintenance.PruneEnabled = true
	a, err := newApp(ctx, cfg, config.Env{StoreDriver: config.StoreDriverMemory})
	require.NoError(t, err)
	defer a.Close()
	assert.False(t, a.demo)

	got := make(chan availability.ChangeEvent, 1)
	cancelSub := a.broker.Subscribe(func(ev availability.ChangeEvent) { got <- ev })
	defer cancelSub()

	name := cfg.Users[0].Name
	today := cfg.CurrentRange().StartDate().String()
	_, err = usecase.NewAddDateUseCase(a.repo, a.registry, cfg.CurrentRange, a.snapshot).Execute(ctx, usecase.AddDateInput{UserName: name, Date: today})
	require.NoError(t, err)

	select {
	case ev := <-got:
		assert.Equal(t, availability.ChangeInsert, ev.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no change event")
	}
}

func TestPublishPayloadDropsMalformed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a, err := newApp(ctx, config.DefaultConfig(), config.Env{StoreDriver: config.StoreDriverMemory})
	require.NoError(t, err)
	defer a.Close()

	got := make(chan availability.ChangeEvent, 2)
	cancelSub := a.broker.Subscribe(func(ev availability.ChangeEvent) { got <- ev })
	defer cancelSub()

	a.publishPayload(`{not json`)
	a.publishPayload(`{"type":"DELETE","old":{"user_name":"A","selected_date":"2025-10-05"}}`)

	select {
	case ev := <-got:
		assert.Equal(t, availability.ChangeDelete, ev.Type)
		assert.Equal(t, "A", ev.Old.UserName)
	case <-time.After(2 * time.Second):
		t.Fatal("no change event")
	}
}

func TestRoutesMountUnderV1(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a, err := newApp(ctx, config.DefaultConfig(), config.Env{StoreDriver: config.StoreDriverMemory})
	require.NoError(t, err)
	defer a.Close()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, v1.RegisterRoutes(ctx, r, a.deps()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/participants", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Flint \\u0026 Maryam")
}

func TestHealthReportsDemoMode(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a, err := newApp(ctx, config.DefaultConfig(), config.Env{StoreDriver: config.StoreDriverPostgres})
	require.NoError(t, err)
	defer a.Close()

	gin.SetMode(gin.TestMode)
	r, err := newEngine(ctx, a)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","demo":true}`, w.Body.String())
}

func TestPostgresStoreSeesOtherWritersWithoutRealtime(t *testing.T) {
	dsn := os.Getenv(config.EnvDatabaseURL)
	if dsn == "" {
		t.Skip(config.EnvDatabaseURL + " not set")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.DefaultConfig()
	cfg.Features.RealTimeSync = false
	a, err := newApp(ctx, cfg, config.Env{StoreDriver: config.StoreDriverPostgres, DatabaseURL: dsn})
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.listener)

	// A second pool stands in for another instance writing to the table.
	other, err := database.Connect(ctx, dsn)
	require.NoError(t, err)
	defer other.Close()
	otherRepo := adapter.NewPgAvailabilityRepository(other)

	name := cfg.Users[0].Name
	_, err = otherRepo.DeleteByUser(ctx, name)
	require.NoError(t, err)
	defer func() { _, _ = otherRepo.DeleteByUser(context.Background(), name) }()

	load := usecase.NewLoadAvailabilityUseCase(a.repo, a.snapshot)
	countFor := func() int {
		recs, err := load.Execute(ctx, usecase.LoadAvailabilityInput{})
		require.NoError(t, err)
		n := 0
		for _, r := range recs {
			if r.UserName == name {
				n++
			}
		}
		return n
	}
	// Let the listener reach LISTEN, then prime the snapshot.
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, 0, countFor())

	rec, err := availability.NewRecord(name, cfg.CurrentRange().StartDate(), time.Now())
	require.NoError(t, err)
	require.NoError(t, otherRepo.Insert(ctx, rec))

	assert.Eventually(t, func() bool { return countFor() == 1 }, 3*time.Second, 50*time.Millisecond)
}
