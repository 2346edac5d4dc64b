// Package changefeed fans out store change events to in-process subscribers.
package changefeed

import (
	"sync"

	"github.com/google/uuid"

	appLog "github.com/FlintShadey/huddleuptime/internal/log"
)

const defaultBuffer = 64

// Broker delivers published values to every subscriber in publish order.
// Each subscriber has its own bounded buffer; when it is full the value is
// dropped for that subscriber only, so a slow consumer never stalls the feed.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[string]*subscriber[T]
	buffer int
	closed bool
}

type subscriber[T any] struct {
	id      string
	ch      chan T
	done    chan struct{}
	handler func(T)
}

// NewBroker creates a Broker with buffer slots per subscriber.
func NewBroker[T any](buffer int) *Broker[T] {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Broker[T]{subs: make(map[string]*subscriber[T]), buffer: buffer}
}

// Subscribe runs handler on its own goroutine for each published value until
// the returned cancel func is called. Subscribing to a closed broker yields a
// no-op cancel.
func (b *Broker[T]) Subscribe(handler func(T)) (cancel func()) {
	s := &subscriber[T]{
		id:      uuid.NewString(),
		ch:      make(chan T, b.buffer),
		done:    make(chan struct{}),
		handler: handler,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return func() {}
	}
	b.subs[s.id] = s
	b.mu.Unlock()

	go s.run()
	appLog.Debug("changefeed subscribed", "sub", s.id)

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(s.id) })
	}
}

// Publish hands v to every subscriber and returns how many accepted it.
func (b *Broker[T]) Publish(v T) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, s := range b.subs {
		select {
		case s.ch <- v:
			delivered++
		default:
			appLog.Warn("changefeed subscriber lagging, event dropped", "sub", s.id)
		}
	}
	return delivered
}

// Len reports the number of active subscribers.
func (b *Broker[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close cancels every subscription. Later Publish calls deliver nothing.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[string]*subscriber[T])
	b.closed = true
	b.mu.Unlock()

	for _, s := range subs {
		close(s.done)
	}
}

func (b *Broker[T]) remove(id string) {
	b.mu.Lock()
	s, ok := b.subs[id]
	delete(b.subs, id)
	b.mu.Unlock()
	if ok {
		close(s.done)
		appLog.Debug("changefeed unsubscribed", "sub", id)
	}
}

func (s *subscriber[T]) run() {
	for {
		select {
		case <-s.done:
			return
		case v := <-s.ch:
			s.handler(v)
		}
	}
}
