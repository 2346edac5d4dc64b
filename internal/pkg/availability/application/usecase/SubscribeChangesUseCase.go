package usecase

import (
	"context"
	"errors"
	"sync"

	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
)

// ChangeSource fans out change events. Subscribe returns a func that stops
// delivery to handler.
type ChangeSource interface {
	Subscribe(handler func(availability.ChangeEvent)) (cancel func())
}

type SubscribeChangesInput struct {
	Handler func(availability.ChangeEvent)
}

// Subscription stops a change subscription. Cancel is idempotent; an event
// already being delivered may still reach the handler.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// SubscribeChangesUseCase registers a handler for store changes. Without a
// source (demo mode, real-time sync off) the subscription never fires.
type SubscribeChangesUseCase struct {
	Source ChangeSource
}

func NewSubscribeChangesUseCase(source ChangeSource) *SubscribeChangesUseCase {
	return &SubscribeChangesUseCase{Source: source}
}

// Execute subscribes in.Handler. The subscription is also cancelled when ctx
// is done.
func (uc *SubscribeChangesUseCase) Execute(ctx context.Context, in SubscribeChangesInput) (*Subscription, error) {
	if in.Handler == nil {
		return nil, errors.New("handler is required")
	}
	if uc.Source == nil {
		return &Subscription{}, nil
	}

	cancel := uc.Source.Subscribe(in.Handler)
	sub := &Subscription{cancel: cancel}
	context.AfterFunc(ctx, sub.Cancel)
	return sub, nil
}
