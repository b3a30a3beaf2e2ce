package events

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/libs/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

// NextEventFunc blocks until the next event arrives or the context is done
type NextEventFunc func(ctx context.Context) (Event, error)

// NextAction subscribes to the bus for events of the given type and module with the given action.
// Every call of the returned function returns the next matching event. The returned cancel function ends the subscription.
func NextAction(bus *Bus, eventType string, module string, action string, logger log.Logger) (NextEventFunc, func()) {
	predicate := QueryEventByAttributes(eventType, module, sdk.NewAttribute(sdk.AttributeKeyAction, action))
	next, cancel := NextFilteredEvent(bus, predicate)

	return func(ctx context.Context) (Event, error) {
		logger.Debug(fmt.Sprintf("waiting for next action %s.%s.action='%s'", module, eventType, action),
			"module", module, "eventType", eventType, "action", action)
		return next(ctx)
	}, cancel
}

// NextFilteredEvent subscribes to the bus for events that match the predicate.
// Events published before the first call are buffered by the bus.
func NextFilteredEvent(bus *Bus, predicate func(EventWithHeight) bool) (NextEventFunc, func()) {
	sub := bus.Subscribe(predicate)

	return func(ctx context.Context) (Event, error) {
		select {
		case e, ok := <-sub:
			if !ok {
				return Event{}, errorsmod.Wrap(ErrSubscription, "subscription closed before event was detected")
			}
			return Parse(e), nil
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}, func() { bus.Unsubscribe(sub) }
}

// WaitAction waits for the first event of the given type and module with the given action, then ends the subscription
func WaitAction(ctx context.Context, bus *Bus, eventType string, module string, action string, logger log.Logger) (Event, error) {
	next, cancel := NextAction(bus, eventType, module, action, logger)
	defer cancel()

	return next(ctx)
}

// WaitFilteredEvent reads events until the filter evaluates to true
func WaitFilteredEvent(ctx context.Context, next NextEventFunc, filter func(Event) bool) (Event, error) {
	for {
		ev, err := next(ctx)
		if err != nil {
			return ev, err
		}

		if filter(ev) {
			return ev, nil
		}
	}
}

// WaitTxEvent subscribes to the node for transactions matching the query and returns the first one the predicate accepts.
// A nil predicate accepts every transaction. The subscription ends when the function returns.
func WaitTxEvent(ctx context.Context, client *Client, query string, predicate func(types.TxEvent) bool) (types.TxEvent, error) {
	sub, err := client.SubscribeToTxs(ctx, query)
	if err != nil {
		return types.TxEvent{}, err
	}
	defer sub.Close()

	for tx, err := range sub.All(ctx) {
		if err != nil {
			return types.TxEvent{}, err
		}

		if predicate == nil || predicate(tx) {
			return tx, nil
		}
	}

	return types.TxEvent{}, errorsmod.Wrap(ErrSubscription, "subscription closed before event was detected")
}

// HasAttributesPredicate returns a predicate for events that carry all the given attribute keys, regardless of their values
func HasAttributesPredicate(keys ...string) func(Event) bool {
	return func(e Event) bool {
		for _, key := range keys {
			if _, ok := e.Attributes[key]; !ok {
				return false
			}
		}
		return true
	}
}
