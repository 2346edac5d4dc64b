package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
)

type fakeSource struct {
	handlers  []func(availability.ChangeEvent)
	cancelled atomic.Int32
}

func (f *fakeSource) Subscribe(h func(availability.ChangeEvent)) func() {
	f.handlers = append(f.handlers, h)
	return func() { f.cancelled.Add(1) }
}

func TestSubscribeCancelIsIdempotent(t *testing.T) {
	src := &fakeSource{}
	uc := NewSubscribeChangesUseCase(src)

	var got []availability.ChangeType
	sub, err := uc.Execute(context.Background(), SubscribeChangesInput{
		Handler: func(ev availability.ChangeEvent) { got = append(got, ev.Type) },
	})
	require.NoError(t, err)
	require.Len(t, src.handlers, 1)

	src.handlers[0](availability.ChangeEvent{Type: availability.ChangeInsert})
	assert.Equal(t, []availability.ChangeType{availability.ChangeInsert}, got)

	sub.Cancel()
	sub.Cancel()
	assert.Equal(t, int32(1), src.cancelled.Load())
}

func TestSubscribeCancelledWithContext(t *testing.T) {
	src := &fakeSource{}
	uc := NewSubscribeChangesUseCase(src)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := uc.Execute(ctx, SubscribeChangesInput{Handler: func(availability.ChangeEvent) {}})
	require.NoError(t, err)

	cancel()
	assert.Eventually(t, func() bool { return src.cancelled.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestSubscribeWithoutSource(t *testing.T) {
	uc := NewSubscribeChangesUseCase(nil)
	sub, err := uc.Execute(context.Background(), SubscribeChangesInput{Handler: func(availability.ChangeEvent) {}})
	require.NoError(t, err)
	sub.Cancel()

	_, err = uc.Execute(context.Background(), SubscribeChangesInput{})
	assert.Error(t, err)
}
