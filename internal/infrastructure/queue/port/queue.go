package port

import (
	"context"
	"time"
)

// Task is a background job: a stable type name plus opaque payload bytes.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. Handlers must be idempotent; a non-nil error
// is retried per the adapter's policy.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption controls enqueue behavior. Zero values mean "unspecified" and
// adapters may ignore fields they cannot honor.
type EnqueueOption struct {
	Queue     string
	ProcessIn time.Duration
	ProcessAt time.Time // wins over ProcessIn
	// MaxRetry < 0 disables retries; 0 keeps the adapter default.
	MaxRetry  int
	UniqueTTL time.Duration
	Timeout   time.Duration
}

// Client enqueues tasks for background processing.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server runs handlers for registered task types. Run blocks until ctx is
// cancelled or Stop is called.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}
