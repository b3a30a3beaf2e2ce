package pubsub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/utils/test/rand"

	"github.com/axelarnetwork/tm-rpc/pubsub"
)

const timeout = 5 * time.Second

func receive[T any](t *testing.T, ch <-chan T) T {
	select {
	case item, ok := <-ch:
		require.True(t, ok, "channel closed")
		return item
	case <-time.After(timeout):
		require.FailNow(t, "timed out")
		var zero T
		return zero
	}
}

func requireClosed[T any](t *testing.T, ch <-chan T) {
	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(timeout):
		require.FailNow(t, "timed out")
	}
}

func TestBus(t *testing.T) {
	t.Run("deliver to all matching subscribers in order", func(t *testing.T) {
		bus := pubsub.NewBus[int64]()
		defer bus.Close()

		all := bus.Subscribe(nil)
		even := bus.Subscribe(func(i int64) bool { return i%2 == 0 })
		assert.Equal(t, 2, bus.Subscribers())

		count := int(rand.I64Between(10, 100))
		for i := 0; i < count; i++ {
			require.NoError(t, bus.Publish(int64(i)))
		}

		for i := 0; i < count; i++ {
			assert.Equal(t, int64(i), receive(t, all))
		}
		for i := 0; i < count; i += 2 {
			assert.Equal(t, int64(i), receive(t, even))
		}
	})

	t.Run("unsubscribe closes the channel", func(t *testing.T) {
		bus := pubsub.NewBus[string]()
		defer bus.Close()

		sub := bus.Subscribe(nil)
		other := bus.Subscribe(nil)
		bus.Unsubscribe(sub)
		bus.Unsubscribe(sub)

		requireClosed(t, sub)
		assert.Equal(t, 1, bus.Subscribers())

		value := rand.Str(10)
		require.NoError(t, bus.Publish(value))
		assert.Equal(t, value, receive(t, other))
	})

	t.Run("close ends all subscriptions", func(t *testing.T) {
		bus := pubsub.NewBus[string]()

		sub := bus.Subscribe(nil)
		bus.Close()
		bus.Close()

		select {
		case <-bus.Done():
		case <-time.After(timeout):
			require.FailNow(t, "timed out")
		}

		requireClosed(t, sub)
		assert.ErrorIs(t, bus.Publish(rand.Str(10)), pubsub.ErrNotRunning)
		requireClosed(t, bus.Subscribe(nil))
		assert.Zero(t, bus.Subscribers())
	})
}
