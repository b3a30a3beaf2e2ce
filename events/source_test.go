package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/axelarnetwork/utils/test"
	"github.com/axelarnetwork/utils/test/rand"

	"github.com/axelarnetwork/tm-rpc/adapter"
	"github.com/axelarnetwork/tm-rpc/events"
	"github.com/axelarnetwork/tm-rpc/events/mock"
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

func TestNotifier_BlockHeights(t *testing.T) {
	var (
		client   *mock.BlockClientMock
		notifier *events.Notifier
		start    int64
		latest   atomic.Int64
		heights  []int64
		cancel   context.CancelFunc
	)

	Given("a block notifier with a start block behind the chain", func() {
		start = rand.I64Between(1, 1000)
		latest.Store(start + rand.I64Between(1, 20))

		client = &mock.BlockClientMock{
			LatestBlockHeightFunc: func(context.Context) (int64, error) {
				return latest.Add(1), nil
			},
		}
		notifier = events.NewBlockNotifier(client, log.TestingLogger(), events.KeepAlive(time.Millisecond)).StartingAt(start)
	}).
		When("the consumer reads the heights", func() {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())

			blocks, _ := notifier.BlockHeights(ctx)
			heights = nil
			for i := 0; i < 30; i++ {
				heights = append(heights, receive(t, blocks))
			}
		}).
		Then("all heights from the start block are delivered without gaps", func(t *testing.T) {
			for i, height := range heights {
				assert.Equal(t, start+int64(i), height)
			}

			cancel()
			select {
			case <-notifier.Done():
			case <-time.After(5 * time.Second):
				require.FailNow(t, "timed out")
			}
		}).Run(t, 10)

	t.Run("WHEN no start block is set THEN notifications start at the latest block", func(t *testing.T) {
		latest := rand.PosI64()
		client := &mock.BlockClientMock{
			LatestBlockHeightFunc: func(context.Context) (int64, error) { return latest, nil },
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		blocks, _ := events.NewBlockNotifier(client, log.TestingLogger()).BlockHeights(ctx)
		assert.Equal(t, latest, receive(t, blocks))
	})

	t.Run("WHEN querying keeps failing THEN the error is returned after all retries", func(t *testing.T) {
		client := &mock.BlockClientMock{
			LatestBlockHeightFunc: func(context.Context) (int64, error) { return 0, fmt.Errorf("connection refused") },
		}
		retries := int(rand.I64Between(0, 5))

		blocks, errs := events.NewBlockNotifier(client, log.TestingLogger(), events.Retries(retries), events.BackOff(time.Millisecond)).
			BlockHeights(context.Background())

		err := receive(t, errs)
		assert.ErrorContains(t, err, "connection refused")
		assert.Len(t, client.LatestBlockHeightCalls(), retries+1)

		for range blocks {
		}
	})

	t.Run("WHEN block headers are subscribed THEN their heights are used too", func(t *testing.T) {
		streamer, subs := newStreamer(true)
		a, err := adapter.New(adapter.Tendermint37)
		require.NoError(t, err)
		headers := events.NewClient(streamer, a, log.TestingLogger())

		client := &mock.BlockClientMock{
			LatestBlockHeightFunc: func(context.Context) (int64, error) { return 10, nil },
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		blocks, _ := events.NewBlockNotifier(client, log.TestingLogger(), events.KeepAlive(time.Hour)).
			WithHeaderSubscriber(headers).
			StartingAt(10).
			BlockHeights(ctx)

		assert.Equal(t, int64(10), receive(t, blocks))

		require.Eventually(t, func() bool { return len(streamer.SubscribeCalls()) == 1 }, 5*time.Second, time.Millisecond)
		(*subs)[0].events <- json.RawMessage(fmt.Sprintf(headerEvent, 12))

		assert.Equal(t, int64(11), receive(t, blocks))
		assert.Equal(t, int64(12), receive(t, blocks))
	})
}

func TestBlockSource_BlockResults(t *testing.T) {
	t.Run("WHEN fetching fails once THEN the block results are retried and delivered in order", func(t *testing.T) {
		heights := make(chan int64)
		notifier := &mock.BlockNotifierMock{
			BlockHeightsFunc: func(context.Context) (<-chan int64, <-chan error) { return heights, nil },
			DoneFunc:         closedDone,
		}

		var failed atomic.Bool
		client := &mock.BlockResultClientMock{
			BlockResultsFunc: func(_ context.Context, height *int64) (types.BlockResults, error) {
				if !failed.Swap(true) {
					return types.BlockResults{}, fmt.Errorf("timeout")
				}
				return types.BlockResults{Height: *height}, nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		source := events.NewBlockSource(client, notifier, log.TestingLogger(), events.Retries(1), events.BackOff(time.Millisecond))
		results, _ := source.BlockResults(ctx)

		start := rand.PosI64() / 2
		go func() {
			for i := int64(0); i < 5; i++ {
				heights <- start + i
			}
		}()

		for i := int64(0); i < 5; i++ {
			assert.Equal(t, start+i, receive(t, results).Height)
		}
		assert.Len(t, client.BlockResultsCalls(), 6)
	})

	t.Run("WHEN the notifier stops THEN the block source reports an error", func(t *testing.T) {
		heights := make(chan int64)
		notifier := &mock.BlockNotifierMock{
			BlockHeightsFunc: func(context.Context) (<-chan int64, <-chan error) { return heights, nil },
			DoneFunc:         closedDone,
		}
		client := &mock.BlockResultClientMock{}

		_, errs := events.NewBlockSource(client, notifier, log.TestingLogger()).BlockResults(context.Background())
		close(heights)

		assert.ErrorContains(t, receive(t, errs), "cannot detect new blocks anymore")
	})

	t.Run("WHEN the notifier fails THEN the error is forwarded", func(t *testing.T) {
		notifyErrs := make(chan error, 1)
		notifier := &mock.BlockNotifierMock{
			BlockHeightsFunc: func(context.Context) (<-chan int64, <-chan error) { return make(chan int64), notifyErrs },
			DoneFunc:         closedDone,
		}
		client := &mock.BlockResultClientMock{}

		results, errs := events.NewBlockSource(client, notifier, log.TestingLogger()).BlockResults(context.Background())
		notifyErrs <- fmt.Errorf("node unreachable")

		assert.ErrorContains(t, receive(t, errs), "node unreachable")
		for range results {
		}
	})
}
