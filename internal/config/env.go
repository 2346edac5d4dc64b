package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	EnvConfigPath  = "HUDDLE_CONFIG"
	EnvListen      = "HUDDLE_LISTEN"
	EnvDatabaseURL = "DB_URL"
	EnvRedisURL    = "REDIS_URL"
	EnvStoreDriver = "STORE_DRIVER"
	EnvLogLevel    = "LOG_LEVEL"

	EnvAsynqConcurrency = "ASYNQ_CONCURRENCY"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Env carries process settings that come from the environment (and .env)
// rather than the YAML file: secrets and deployment wiring.
type Env struct {
	ConfigPath  string
	Listen      string
	DatabaseURL string
	RedisURL    string
	StoreDriver string
	LogLevel    string

	// AsynqConcurrency is the worker count when tasks run through Redis.
	AsynqConcurrency int
}

// LoadEnv reads Env from the process environment.
func LoadEnv() Env {
	env := Env{
		ConfigPath:  strings.TrimSpace(os.Getenv(EnvConfigPath)),
		Listen:      strings.TrimSpace(os.Getenv(EnvListen)),
		DatabaseURL: strings.TrimSpace(os.Getenv(EnvDatabaseURL)),
		RedisURL:    strings.TrimSpace(os.Getenv(EnvRedisURL)),
		StoreDriver: strings.ToLower(strings.TrimSpace(os.Getenv(EnvStoreDriver))),
		LogLevel:    strings.TrimSpace(os.Getenv(EnvLogLevel)),
	}
	if env.ConfigPath == "" {
		env.ConfigPath = "./config.yaml"
	}
	if env.StoreDriver == "" {
		env.StoreDriver = StoreDriverPostgres
	}
	env.AsynqConcurrency = 2
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(EnvAsynqConcurrency))); err == nil && n > 0 {
		env.AsynqConcurrency = n
	}
	return env
}

// DemoMode reports whether the Postgres store has no usable credentials.
// In demo mode reads return nothing and writes succeed without persisting.
func (e Env) DemoMode() bool {
	if e.StoreDriver == StoreDriverMemory {
		return false
	}
	return e.DatabaseURL == "" || strings.Contains(strings.ToLower(e.DatabaseURL), "placeholder")
}

// CacheEnabled reports whether a Redis URL is configured.
func (e Env) CacheEnabled() bool {
	return e.RedisURL != "" && !strings.Contains(strings.ToLower(e.RedisURL), "placeholder")
}
