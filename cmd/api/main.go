package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/FlintShadey/huddleuptime/cmd/api/router/v1"
	"github.com/FlintShadey/huddleuptime/internal/commands"
	"github.com/FlintShadey/huddleuptime/internal/config"
	appLog "github.com/FlintShadey/huddleuptime/internal/log"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		os.Exit(commands.HashPassword(os.Args[2:]))
	}

	// Load .env file
	if err := godotenv.Load(); err != nil {
		appLog.Debug(".env file not loaded", "err", err)
	}
	env := config.LoadEnv()

	configPath := flag.String("config", env.ConfigPath, "Path to the YAML config (created on first run)")
	listen := flag.String("listen", "", "HTTP listen address (overrides config and "+config.EnvListen+")")
	flag.Parse()

	if env.LogLevel != "" {
		appLog.SetLevel(appLog.ParseLevel(env.LogLevel))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "path", *configPath)
		os.Exit(1)
	}
	switch {
	case *listen != "":
		cfg.Listen = *listen
	case env.Listen != "":
		cfg.Listen = env.Listen
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, env); err != nil {
		appLog.Error("server failed", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, env config.Env) error {
	app, err := newApp(ctx, cfg, env)
	if err != nil {
		return err
	}
	defer app.Close()

	gin.SetMode(gin.ReleaseMode)
	r, err := newEngine(ctx, app)
	if err != nil {
		return err
	}
	return serve(ctx, cfg.Listen, r)
}

func newEngine(ctx context.Context, a *app) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(appLog.Writer()), gin.RecoveryWithWriter(appLog.Writer()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
			"demo":   a.demo,
		})
	})

	if err := v1.RegisterRoutes(ctx, r, a.deps()); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}
	return r, nil
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	appLog.Info("huddleuptime listening", "addr", listener.Addr().String())

	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		appLog.Info("shutdown signal received, draining in-flight requests")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server forced to shutdown", err)
	} else {
		appLog.Info("server exited gracefully")
	}
	return <-serveErr
}
