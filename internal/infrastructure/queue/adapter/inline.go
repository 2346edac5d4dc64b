package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/FlintShadey/huddleuptime/internal/infrastructure/queue/port"
	appLog "github.com/FlintShadey/huddleuptime/internal/log"
)

// InlineQueue runs tasks synchronously in the caller's goroutine. It serves
// as both Client and Server when no Redis is configured, so the same task
// handlers run in every deployment.
type InlineQueue struct {
	mu       sync.RWMutex
	handlers map[string]port.Handler
}

func NewInlineQueue() *InlineQueue {
	return &InlineQueue{handlers: make(map[string]port.Handler)}
}

var (
	_ port.Client = (*InlineQueue)(nil)
	_ port.Server = (*InlineQueue)(nil)
)

func (q *InlineQueue) Register(taskType string, h port.Handler) {
	q.mu.Lock()
	q.handlers[taskType] = h
	q.mu.Unlock()
}

// Enqueue runs the handler immediately. Scheduling options are ignored.
func (q *InlineQueue) Enqueue(ctx context.Context, t port.Task, opts ...port.EnqueueOption) (string, error) {
	q.mu.RLock()
	h, ok := q.handlers[t.Type]
	q.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("inline queue: no handler for %q", t.Type)
	}

	if len(opts) > 0 && opts[0].Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts[0].Timeout)
		defer cancel()
	}

	id := uuid.NewString()
	if err := h(ctx, t); err != nil {
		appLog.Error("inline task failed", err, "type", t.Type, "id", id)
		return id, err
	}
	return id, nil
}

func (q *InlineQueue) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (q *InlineQueue) Stop(context.Context) error { return nil }
func (q *InlineQueue) Close() error                { return nil }
