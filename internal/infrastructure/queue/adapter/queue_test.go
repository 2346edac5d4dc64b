package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlintShadey/huddleuptime/internal/infrastructure/queue/port"
)

func TestParseQueueWeights(t *testing.T) {
	got := parseQueueWeights(" maintenance=2, default , low=x,=3,")
	assert.Equal(t, map[string]int{"maintenance": 2, "default": 1, "low": 1}, got)
	assert.Empty(t, parseQueueWeights(""))
}

func TestToAsynqOptions(t *testing.T) {
	assert.Nil(t, toAsynqOptions(nil))
	opts := toAsynqOptions([]port.EnqueueOption{{
		Queue:     QueueMaintenance,
		MaxRetry:  -1,
		UniqueTTL: time.Hour,
		Timeout:   time.Minute,
	}})
	assert.Len(t, opts, 4)
}

func TestNewAsynqClientRequiresURL(t *testing.T) {
	_, err := NewAsynqClient("")
	assert.Error(t, err)
}

func TestInlineQueueRunsHandler(t *testing.T) {
	q := NewInlineQueue()
	var got []byte
	q.Register("t", func(ctx context.Context, task port.Task) error {
		got = task.Payload
		return nil
	})

	id, err := q.Enqueue(context.Background(), port.Task{Type: "t", Payload: []byte("x")})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, []byte("x"), got)

	_, err = q.Enqueue(context.Background(), port.Task{Type: "missing"})
	assert.Error(t, err)
}

func TestInlineQueuePropagatesError(t *testing.T) {
	q := NewInlineQueue()
	boom := errors.New("boom")
	q.Register("t", func(context.Context, port.Task) error { return boom })
	_, err := q.Enqueue(context.Background(), port.Task{Type: "t"}, port.EnqueueOption{Timeout: time.Second})
	assert.ErrorIs(t, err, boom)
}
