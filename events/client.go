package events

import (
	"context"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/libs/log"
	tm "github.com/cometbft/cometbft/types"

	"github.com/axelarnetwork/tm-rpc/adapter"
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
	"github.com/axelarnetwork/tm-rpc/transport"
)

type subscriptionKey struct {
	eventType string
	query     string
}

// closer is the untyped view of a Subscription
type closer interface{ Close() }

type entry struct {
	sub closer
}

// Client subscribes to node events over a stream transport.
// At most one subscription can be active per (event type, query) pair.
type Client struct {
	streamer transport.Streamer
	adapter  adapter.Adapter
	logger   log.Logger

	mu     sync.Mutex
	active map[subscriptionKey]*entry
}

// NewClient returns a new event client
func NewClient(streamer transport.Streamer, a adapter.Adapter, logger log.Logger) *Client {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &Client{
		streamer: streamer,
		adapter:  a,
		logger:   logger.With("client", "events"),
		active:   make(map[subscriptionKey]*entry),
	}
}

// SubscribeToNewBlocks streams every committed block
func (c *Client) SubscribeToNewBlocks(ctx context.Context) (*Subscription[types.NewBlockEvent], error) {
	return subscribe(ctx, c, tm.EventNewBlock, "", c.adapter.DecodeNewBlockEvent)
}

// SubscribeToBlockHeaders streams every new block header
func (c *Client) SubscribeToBlockHeaders(ctx context.Context) (*Subscription[types.BlockHeaderEvent], error) {
	return subscribe(ctx, c, tm.EventNewBlockHeader, "", c.adapter.DecodeBlockHeaderEvent)
}

// SubscribeToTxs streams executed transactions. An empty query matches all transactions,
// otherwise the query is sent as is, e.g. built with NewTxEventQuery.
func (c *Client) SubscribeToTxs(ctx context.Context, query string) (*Subscription[types.TxEvent], error) {
	return subscribe(ctx, c, tm.EventTx, query, c.adapter.DecodeTxEvent)
}

// SubscribeToValidatorSetUpdates streams validator set changes
func (c *Client) SubscribeToValidatorSetUpdates(ctx context.Context) (*Subscription[types.ValidatorSetUpdatesEvent], error) {
	return subscribe(ctx, c, tm.EventValidatorSetUpdates, "", c.adapter.DecodeValidatorSetUpdatesEvent)
}

// SubscribeToEvents streams events of any type without decoding their payload.
// An empty query matches all events of the given type.
func (c *Client) SubscribeToEvents(ctx context.Context, eventType string, query string) (*Subscription[RawEvent], error) {
	return subscribe(ctx, c, eventType, query, decodeRawEvent)
}

// IsSubscribed returns true if a subscription for the given event type and query is active
func (c *Client) IsSubscribed(eventType string, query string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.active[keyOf(eventType, query)]
	return ok
}

// UnsubscribeFromAll cancels all subscriptions on the node and ends them locally, even if the node call fails.
// It is a no-op if the transport is not connected.
func (c *Client) UnsubscribeFromAll(ctx context.Context) error {
	if !c.streamer.IsConnected() {
		return nil
	}

	c.mu.Lock()
	var subs []closer
	for _, e := range c.active {
		if e.sub != nil {
			subs = append(subs, e.sub)
		}
	}
	c.active = make(map[subscriptionKey]*entry)
	c.mu.Unlock()

	params, err := c.adapter.EncodeParams(adapter.UnsubscribeAll, nil)
	if err == nil {
		_, err = c.streamer.Call(ctx, string(adapter.UnsubscribeAll), params)
	}

	for _, sub := range subs {
		sub.Close()
	}

	if err != nil {
		return errorsmod.Wrapf(ErrSubscription, "failed to unsubscribe from all events: %v", err)
	}

	c.logger.Info("unsubscribed from all events", "subscriptions", len(subs))
	return nil
}

func subscribe[T any](ctx context.Context, c *Client, eventType string, query string, decode func(raw any) (T, error)) (*Subscription[T], error) {
	if !c.streamer.IsConnected() {
		return nil, errorsmod.Wrapf(transport.ErrConnection, "cannot subscribe to %s: not connected", eventType)
	}

	key := keyOf(eventType, query)
	e := &entry{}
	if err := c.register(key, e); err != nil {
		return nil, err
	}

	params, err := c.adapter.EncodeParams(adapter.Subscribe, types.SubscribeParams{Query: key.query})
	if err != nil {
		c.release(key, e)
		return nil, err
	}

	sub, err := c.streamer.Subscribe(ctx, string(adapter.Subscribe), params)
	if err != nil {
		c.release(key, e)
		return nil, err
	}

	s := &Subscription[T]{
		eventType: eventType,
		query:     key.query,
		sub:       sub,
		decode:    decode,
		release:   func() { c.release(key, e) },
		logger:    c.logger,
	}

	c.mu.Lock()
	cleared := c.active[key] != e
	e.sub = s
	c.mu.Unlock()

	// UnsubscribeFromAll ran while the subscribe call was in flight
	if cleared {
		s.Close()
	}

	c.logger.Debug("subscribed", "event_type", eventType, "query", key.query)
	return s, nil
}

func (c *Client) register(key subscriptionKey, e *entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.active[key]; ok {
		return errorsmod.Wrapf(ErrSubscription, "Already subscribed to %s", key.eventType)
	}
	c.active[key] = e
	return nil
}

func (c *Client) release(key subscriptionKey, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active[key] == e {
		delete(c.active, key)
	}
}

func keyOf(eventType string, query string) subscriptionKey {
	if query == "" {
		query = NewQuery(eventType).String()
	}
	return subscriptionKey{eventType: eventType, query: query}
}
