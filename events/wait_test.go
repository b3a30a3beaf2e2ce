package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/utils/test/rand"

	"github.com/axelarnetwork/tm-rpc/adapter"
	"github.com/axelarnetwork/tm-rpc/events"
	"github.com/axelarnetwork/tm-rpc/events/mock"
	"github.com/axelarnetwork/tm-rpc/pubsub"
	tmtypes "github.com/axelarnetwork/tm-rpc/tendermint/types"
)

func newRunningBus(t *testing.T) (*events.Bus, chan<- tmtypes.BlockResults) {
	results := make(chan tmtypes.BlockResults, 10)
	source := &mock.BlockSourceMock{
		BlockResultsFunc: func(context.Context) (<-chan tmtypes.BlockResults, <-chan error) { return results, nil },
		DoneFunc:         closedDone,
	}
	bus := events.NewEventBus(source, pubsub.NewBus[events.EventWithHeight](), log.TestingLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	bus.FetchEvents(ctx)

	return bus, results
}

func actionEvent(eventType, module, action string, extra ...tmtypes.EventAttribute) tmtypes.Event {
	return tmtypes.Event{
		Type: eventType,
		Attributes: append([]tmtypes.EventAttribute{
			{Key: "module", Value: module},
			{Key: "action", Value: action},
		}, extra...),
	}
}

func TestWaitAction(t *testing.T) {
	bus, results := newRunningBus(t)
	module := rand.Str(5)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	next, unsubscribe := events.NextAction(bus, "vote", module, "confirm", log.TestingLogger())
	defer unsubscribe()

	height := rand.PosI64()
	results <- tmtypes.BlockResults{
		Height: height,
		TxsResults: []tmtypes.TxResult{{Events: []tmtypes.Event{
			actionEvent("vote", module, "reject"),
			actionEvent("vote", rand.Str(6), "confirm"),
			actionEvent("vote", module, "confirm", tmtypes.EventAttribute{Key: "poll", Value: "1"}),
		}}},
	}

	e, err := next(ctx)
	require.NoError(t, err)
	assert.Equal(t, height, e.Height)
	assert.Equal(t, "1", e.Attributes["poll"])

	t.Run("WHEN waiting once THEN the first matching event is returned", func(t *testing.T) {
		done := make(chan struct{})
		defer close(done)

		// keep publishing because the wait may subscribe after any given block
		go func() {
			for i := int64(1); ; i++ {
				select {
				case <-done:
					return
				case results <- tmtypes.BlockResults{
					Height:              height + i,
					FinalizeBlockEvents: []tmtypes.Event{actionEvent("vote", module, "confirm")},
				}:
					time.Sleep(10 * time.Millisecond)
				}
			}
		}()

		e, err := events.WaitAction(ctx, bus, "vote", module, "confirm", log.TestingLogger())
		require.NoError(t, err)
		assert.Greater(t, e.Height, height)
	})

	t.Run("WHEN the context is done THEN waiting stops", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := events.WaitAction(ctx, bus, "vote", rand.Str(7), "confirm", log.TestingLogger())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestWaitFilteredEvent(t *testing.T) {
	bus, results := newRunningBus(t)
	next, unsubscribe := events.NextFilteredEvent(bus, func(e events.EventWithHeight) bool { return e.Type == "transfer" })

	results <- tmtypes.BlockResults{
		Height: 1,
		TxsResults: []tmtypes.TxResult{{Events: []tmtypes.Event{
			{Type: "transfer", Attributes: []tmtypes.EventAttribute{{Key: "sender", Value: "a"}}},
			{Type: "transfer", Attributes: []tmtypes.EventAttribute{{Key: "sender", Value: "b"}, {Key: "amount", Value: "10"}}},
		}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	e, err := events.WaitFilteredEvent(ctx, next, events.HasAttributesPredicate("sender", "amount"))
	require.NoError(t, err)
	assert.Equal(t, "b", e.Attributes["sender"])

	unsubscribe()
	_, err = next(ctx)
	assert.ErrorIs(t, err, events.ErrSubscription)
}

func TestWaitTxEvent(t *testing.T) {
	const txFormat = `{
		"query":"tm.event='Tx'",
		"data":{"type":"tendermint/event/Tx","value":{"TxResult":{"height":"%d","index":0,"tx":"AQID","result":{"code":0}}}},
		"events":{"tm.event":["Tx"]}
	}`

	streamer, subs := newStreamer(true)
	client := newClient(t, streamer, adapter.Tendermint34)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		if !assert.Eventually(t, func() bool { return len(streamer.SubscribeCalls()) == 1 }, 5*time.Second, time.Millisecond) {
			return
		}
		(*subs)[0].events <- json.RawMessage(fmt.Sprintf(txFormat, 3))
		(*subs)[0].events <- json.RawMessage(fmt.Sprintf(txFormat, 4))
	}()

	tx, err := events.WaitTxEvent(ctx, client, "", func(tx tmtypes.TxEvent) bool { return tx.Height > 3 })
	require.NoError(t, err)
	assert.Equal(t, int64(4), tx.Height)
	assert.False(t, client.IsSubscribed("Tx", ""))
}
