package changefeed

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu  sync.Mutex
	got []int
}

func (c *collector) add(v int) {
	c.mu.Lock()
	c.got = append(c.got, v)
	c.mu.Unlock()
}

func (c *collector) snapshot() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.got...)
}

func TestBrokerDeliversInOrder(t *testing.T) {
	b := NewBroker[int](16)
	defer b.Close()

	var c1, c2 collector
	b.Subscribe(c1.add)
	b.Subscribe(c2.add)
	require.Equal(t, 2, b.Len())

	for i := 1; i <= 5; i++ {
		assert.Equal(t, 2, b.Publish(i))
	}

	want := []int{1, 2, 3, 4, 5}
	assert.Eventually(t, func() bool { return assert.ObjectsAreEqual(want, c1.snapshot()) }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return assert.ObjectsAreEqual(want, c2.snapshot()) }, time.Second, 5*time.Millisecond)
}

func TestBrokerCancelStopsDelivery(t *testing.T) {
	b := NewBroker[int](4)
	defer b.Close()

	var c collector
	cancel := b.Subscribe(c.add)
	cancel()
	cancel()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Publish(1))
}

func TestBrokerDropsForLaggingSubscriber(t *testing.T) {
	b := NewBroker[int](1)
	defer b.Close()

	release := make(chan struct{})
	var slow collector
	b.Subscribe(func(v int) {
		<-release
		slow.add(v)
	})

	// First value is taken by the handler, second fills the buffer, the rest drop.
	b.Publish(1)
	assert.Eventually(t, func() bool { return b.Publish(2) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 0, b.Publish(3))

	close(release)
	assert.Eventually(t, func() bool { return len(slow.snapshot()) >= 2 }, time.Second, 5*time.Millisecond)
	assert.NotContains(t, slow.snapshot(), 3)
}

func TestBrokerClose(t *testing.T) {
	b := NewBroker[int](0)
	var c collector
	b.Subscribe(c.add)
	b.Close()

	assert.Equal(t, 0, b.Publish(1))
	cancel := b.Subscribe(c.add)
	cancel()
	assert.Equal(t, 0, b.Len())
}
