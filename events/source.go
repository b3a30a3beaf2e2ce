package events

import (
	"context"
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/libs/log"

	"github.com/axelarnetwork/utils"

	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

//go:generate moq -pkg mock -out ./mock/source.go . BlockSource BlockClient BlockResultClient BlockNotifier HeaderSubscriber

// DefaultPollInterval is the time between two block height queries if no keep alive is set
const DefaultPollInterval = 5 * time.Second

type dialOptions struct {
	timeout   time.Duration
	retries   int
	backOff   time.Duration
	keepAlive time.Duration
}

func newDialOptions(options ...DialOption) dialOptions {
	opts := dialOptions{keepAlive: DefaultPollInterval}
	for _, option := range options {
		opts = option.apply(opts)
	}
	if opts.keepAlive <= 0 {
		opts.keepAlive = DefaultPollInterval
	}
	return opts
}

// DialOption for node calls
type DialOption struct {
	apply func(options dialOptions) dialOptions
}

// Timeout sets the time after which a node call is cancelled
func Timeout(timeout time.Duration) DialOption {
	return DialOption{
		apply: func(options dialOptions) dialOptions {
			options.timeout = timeout
			return options
		},
	}
}

// Retries sets the number of times a node call is retried
func Retries(retries int) DialOption {
	return DialOption{
		apply: func(options dialOptions) dialOptions {
			options.retries = retries
			return options
		},
	}
}

// KeepAlive sets the interval at which the latest block height is queried
func KeepAlive(interval time.Duration) DialOption {
	return DialOption{
		apply: func(options dialOptions) dialOptions {
			options.keepAlive = interval
			return options
		},
	}
}

// BackOff sets the time to wait until retrying a failed call
func BackOff(backOff time.Duration) DialOption {
	return DialOption{
		apply: func(options dialOptions) dialOptions {
			options.backOff = backOff
			return options
		},
	}
}

// BlockHeightClient can query the latest block height
type BlockHeightClient interface {
	LatestBlockHeight(ctx context.Context) (int64, error)
}

// BlockResultClient can query for the block results of a specific block
type BlockResultClient interface {
	BlockResults(ctx context.Context, height *int64) (types.BlockResults, error)
}

// BlockClient is both BlockHeightClient and BlockResultClient
type BlockClient interface {
	BlockHeightClient
	BlockResultClient
}

// HeaderSubscriber streams new block headers
type HeaderSubscriber interface {
	SubscribeToBlockHeaders(ctx context.Context) (*Subscription[types.BlockHeaderEvent], error)
}

// BlockNotifier notifies the caller of new blocks
type BlockNotifier interface {
	BlockHeights(ctx context.Context) (<-chan int64, <-chan error)
	Done() <-chan struct{}
}

var _ BlockNotifier = &Notifier{}

// Notifier can notify a consumer about new blocks. It polls the latest block height and, if a header subscriber
// is set, also follows block header events, which are faster but less reliable.
type Notifier struct {
	logger  log.Logger
	client  BlockHeightClient
	headers HeaderSubscriber
	opts    dialOptions
	start   int64
	done    chan struct{}
}

// NewBlockNotifier returns a new Notifier instance
func NewBlockNotifier(client BlockHeightClient, logger log.Logger, options ...DialOption) *Notifier {
	return &Notifier{
		client: client,
		logger: logger.With("listener", "blocks"),
		opts:   newDialOptions(options...),
		done:   make(chan struct{}),
	}
}

// StartingAt sets the start block from which to receive notifications
func (n *Notifier) StartingAt(block int64) *Notifier {
	if block > 0 {
		n.start = block
	}
	return n
}

// WithHeaderSubscriber lets the notifier learn about new blocks from block header events
func (n *Notifier) WithHeaderSubscriber(headers HeaderSubscriber) *Notifier {
	n.headers = headers
	return n
}

// Done returns a channel that is closed when the Notifier has stopped
func (n *Notifier) Done() <-chan struct{} {
	return n.done
}

// BlockHeights returns a channel with all block heights from the start block on, in order and without gaps.
// Without an explicit start block, notifications start at the latest block.
func (n *Notifier) BlockHeights(ctx context.Context) (<-chan int64, <-chan error) {
	errChan := make(chan error, 1)
	running, shutdown := context.WithCancel(ctx)

	fromQuery, queryErrs := n.pollHeights(running)

	var fromEvents <-chan int64
	var eventErrs <-chan error
	if n.headers != nil {
		fromEvents, eventErrs = n.subscribeHeights(running)
	}

	go n.handleErrors(running, shutdown, eventErrs, queryErrs, errChan)

	if n.start > 0 {
		n.logger.Info(fmt.Sprintf("syncing blocks starting with block %d", n.start))
	}

	blocks := make(chan int64)
	go n.pipeLatestBlock(running, fromQuery, fromEvents, blocks)

	return blocks, errChan
}

func (n *Notifier) handleErrors(running context.Context, shutdown context.CancelFunc, eventErrs <-chan error, queryErrs <-chan error, errChan chan error) {
	defer shutdown()

	for {
		// the query notifier is more reliable but slower, so we still continue on as long as it's available
		select {
		case err := <-queryErrs:
			errChan <- err
			return
		case err := <-eventErrs:
			n.logger.Error(errorsmod.Wrap(err, "cannot receive new blocks from events, falling back on querying actively for blocks").Error())
			eventErrs = nil
		case <-running.Done():
			return
		}
	}
}

func (n *Notifier) pipeLatestBlock(running context.Context, fromQuery <-chan int64, fromEvents <-chan int64, blockHeights chan int64) {
	defer close(n.done)
	defer close(blockHeights)
	defer n.logger.Info("stopped block sync")

	pendingBlockHeight := n.start
	latestBlock := int64(0)
	for {
		select {
		case block, ok := <-fromQuery:
			if !ok {
				fromQuery = nil
				continue
			}
			latestBlock = max(latestBlock, block)
		case block, ok := <-fromEvents:
			if !ok {
				fromEvents = nil
				continue
			}
			latestBlock = max(latestBlock, block)
		case <-running.Done():
			return
		}

		if pendingBlockHeight == 0 {
			pendingBlockHeight = latestBlock
		}

		for pendingBlockHeight <= latestBlock {
			select {
			case blockHeights <- pendingBlockHeight:
				pendingBlockHeight++
			case <-running.Done():
				return
			}
		}
	}
}

func (n *Notifier) pollHeights(ctx context.Context) (<-chan int64, <-chan error) {
	blocks := make(chan int64)
	errChan := make(chan error, 1)

	go func() {
		defer close(blocks)
		defer n.logger.Debug("stopped block query")

		ticker := time.NewTicker(n.opts.keepAlive)
		defer ticker.Stop()

		for {
			latest, err := n.latestBlockHeight(ctx)
			if err != nil {
				if ctx.Err() == nil {
					errChan <- err
				}
				return
			}

			select {
			case blocks <- latest:
			case <-ctx.Done():
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return blocks, errChan
}

func (n *Notifier) latestBlockHeight(ctx context.Context) (int64, error) {
	var height int64
	err := retry(ctx, n.opts, n.logger, "failed to retrieve latest block height", func(ctx context.Context) (err error) {
		height, err = n.client.LatestBlockHeight(ctx)
		return err
	})
	return height, err
}

func (n *Notifier) subscribeHeights(ctx context.Context) (<-chan int64, <-chan error) {
	blocks := make(chan int64)
	errChan := make(chan error, 1)

	go func() {
		defer close(blocks)

		var sub *Subscription[types.BlockHeaderEvent]
		err := retry(ctx, n.opts, n.logger, "failed to subscribe to block headers", func(ctx context.Context) (err error) {
			sub, err = n.headers.SubscribeToBlockHeaders(ctx)
			return err
		})
		if err != nil {
			errChan <- err
			return
		}
		defer sub.Close()

		for header, err := range sub.All(ctx) {
			if err != nil {
				if ctx.Err() == nil {
					errChan <- err
				}
				return
			}

			select {
			case blocks <- header.Header.Height:
			case <-ctx.Done():
				return
			}
		}

		if ctx.Err() == nil {
			errChan <- errorsmod.Wrap(ErrSubscription, "block header subscription closed")
		}
	}()
	return blocks, errChan
}

// BlockSource returns all block results sequentially
type BlockSource interface {
	BlockResults(ctx context.Context) (<-chan types.BlockResults, <-chan error)
	Done() <-chan struct{}
}

type blockSource struct {
	notifier BlockNotifier
	client   BlockResultClient
	logger   log.Logger
	opts     dialOptions
}

// NewBlockSource returns a new BlockSource instance that fetches the results of every block the notifier reports
func NewBlockSource(client BlockResultClient, notifier BlockNotifier, logger log.Logger, options ...DialOption) BlockSource {
	return &blockSource{
		client:   client,
		notifier: notifier,
		logger:   logger,
		opts:     newDialOptions(options...),
	}
}

func (b *blockSource) Done() <-chan struct{} {
	return b.notifier.Done()
}

// BlockResults returns a channel of block results. Blocks are pushed into the channel sequentially as they are discovered
func (b *blockSource) BlockResults(ctx context.Context) (<-chan types.BlockResults, <-chan error) {
	// either the notifier or the block source could push an error at the same time, so we need to make sure we don't block
	errChan := make(chan error, 2)
	// notifier is an external dependency, so its lifetime should be managed by the calling process, i.e. the given context, as well
	blockHeights, notifyErrs := b.notifier.BlockHeights(ctx)

	running, shutdown := context.WithCancel(ctx)
	go func() {
		defer shutdown()

		select {
		case err := <-notifyErrs:
			errChan <- err
		case <-running.Done():
		}
	}()

	blockResults := make(chan types.BlockResults)
	go b.streamBlockResults(running, shutdown, blockHeights, blockResults, errChan)

	return blockResults, errChan
}

func (b *blockSource) streamBlockResults(running context.Context, shutdown context.CancelFunc, blockHeights <-chan int64, blocks chan types.BlockResults, errChan chan error) {
	defer close(blocks)
	defer shutdown()

	for {
		select {
		case height, ok := <-blockHeights:
			if !ok {
				errChan <- fmt.Errorf("cannot detect new blocks anymore")
				return
			}

			result, err := b.fetchBlockResults(running, height)
			if err != nil {
				errChan <- err
				return
			}

			select {
			case blocks <- result:
			case <-running.Done():
				return
			}
		case <-running.Done():
			return
		}
	}
}

func (b *blockSource) fetchBlockResults(ctx context.Context, height int64) (types.BlockResults, error) {
	var res types.BlockResults
	err := retry(ctx, b.opts, b.logger, fmt.Sprintf("failed to fetch results for block height %d", height), func(ctx context.Context) (err error) {
		res, err = b.client.BlockResults(ctx, &height)
		return err
	})
	if err != nil {
		return types.BlockResults{}, err
	}

	b.logger.Debug(fmt.Sprintf("fetched result for block height %d", height))
	return res, nil
}

// retry calls f until it succeeds, with a linearly growing pause between attempts
func retry(ctx context.Context, opts dialOptions, logger log.Logger, msg string, f func(ctx context.Context) error) error {
	backOff := utils.LinearBackOff(opts.backOff)

	var err error
	for i := 0; i <= opts.retries; i++ {
		callCtx, cancel := ctxWithTimeout(ctx, opts.timeout)
		err = f(callCtx)
		cancel()
		if err == nil {
			return nil
		}

		logger.Debug(errorsmod.Wrapf(err, "%s, attempt %d", msg, i+1).Error())
		if i == opts.retries {
			break
		}

		select {
		case <-time.After(backOff(i)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return errorsmod.Wrapf(err, "%s after %d attempts", msg, opts.retries+1)
}

func ctxWithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout == 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
