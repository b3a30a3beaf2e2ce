package events

import (
	"context"
	"sync/atomic"

	"github.com/cometbft/cometbft/libs/log"

	"github.com/axelarnetwork/tm-rpc/pubsub"
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

// Bus receives block results from a node and publishes every event in those blocks together with the block height
type Bus struct {
	source BlockSource
	bus    pubsub.Bus[EventWithHeight]
	logger log.Logger
	done   chan struct{}
	latest atomic.Int64
}

// NewEventBus returns a new event bus instance
func NewEventBus(source BlockSource, bus pubsub.Bus[EventWithHeight], logger log.Logger) *Bus {
	return &Bus{
		source: source,
		bus:    bus,
		logger: logger.With("publisher", "events"),
		done:   make(chan struct{}),
	}
}

// FetchEvents asynchronously queries the node for new blocks and publishes all block and tx events in those blocks to the bus's subscribers.
// Any occurring errors are pushed into the returned error channel. The bus shuts down after the first error.
func (b *Bus) FetchEvents(ctx context.Context) <-chan error {
	// the block source and publishing can both fail before the shutdown completes
	errs := make(chan error, 2)

	ctx, shutdown := context.WithCancel(ctx)
	blockResults, blockErrs := b.source.BlockResults(ctx)

	go b.run(ctx, shutdown, blockResults, blockErrs, errs)

	return errs
}

// Subscribe returns the events that match the given predicate
func (b *Bus) Subscribe(predicate func(EventWithHeight) bool) <-chan EventWithHeight {
	return b.bus.Subscribe(predicate)
}

// Unsubscribe closes the given subscription
func (b *Bus) Unsubscribe(sub <-chan EventWithHeight) {
	b.bus.Unsubscribe(sub)
}

// LatestHeight returns the height of the last block whose events were published, or 0 before the first block
func (b *Bus) LatestHeight() int64 {
	return b.latest.Load()
}

// Done returns a channel that gets closed when the Bus is done cleaning up
func (b *Bus) Done() <-chan struct{} {
	return b.done
}

func (b *Bus) run(ctx context.Context, shutdown context.CancelFunc, blockResults <-chan types.BlockResults, blockErrs <-chan error, errs chan<- error) {
	defer close(b.done)
	defer b.logger.Info("shutting down")

	for {
		select {
		case block, ok := <-blockResults:
			if !ok {
				blockResults = nil
				shutdown()
				continue
			}

			if err := b.publish(block); err != nil {
				errs <- err
				shutdown()
			}
		case err := <-blockErrs:
			blockErrs = nil
			errs <- err
			shutdown()
		case <-ctx.Done():
			b.logger.Info("closing all subscriptions")
			b.bus.Close()

			<-b.bus.Done()
			<-b.source.Done()
			return
		}
	}
}

func (b *Bus) publish(block types.BlockResults) error {
	events := block.BlockEvents()
	for _, tx := range block.TxsResults {
		events = append(events, tx.Events...)
	}

	// begin/end block events before 0.38 and finalize block events after come first, then tx events in tx order
	for _, event := range events {
		if err := b.bus.Publish(EventWithHeight{Height: block.Height, Event: event}); err != nil {
			return err
		}
	}

	b.latest.Store(block.Height)
	b.logger.Debug("published block events", "height", block.Height, "events", len(events))
	return nil
}
