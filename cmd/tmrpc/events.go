package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/spf13/cobra"

	"github.com/axelarnetwork/tm-rpc/events"
	"github.com/axelarnetwork/tm-rpc/pubsub"
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

// subscription kinds with a dedicated decoder
const (
	kindNewBlocks  = "new-blocks"
	kindHeaders    = "headers"
	kindTxs        = "txs"
	kindValidators = "validators"
)

// CmdSubscribe returns a cli command to print events pushed by the node
func CmdSubscribe(a *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "subscribe <new-blocks|headers|txs|validators|event type>",
		Short: "Print events as the node pushes them until interrupted",
		Long: "Print events as the node pushes them until interrupted. " +
			"Any other event type, e.g. NewEvidence, is printed undecoded.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			client := a.clients.Events

			switch args[0] {
			case kindNewBlocks:
				sub, err := client.SubscribeToNewBlocks(ctx)
				if err != nil {
					return err
				}
				return untilInterrupted(events.ConsumeSubscription(sub, func(e types.NewBlockEvent) error {
					_, err := fmt.Fprintf(out, "block %d: %d txs\n", e.Block.Header.Height, len(e.Block.Txs))
					return err
				})(ctx))
			case kindHeaders:
				sub, err := client.SubscribeToBlockHeaders(ctx)
				if err != nil {
					return err
				}
				return untilInterrupted(events.ConsumeSubscription(sub, func(e types.BlockHeaderEvent) error {
					return printJSON(out, e)
				})(ctx))
			case kindTxs:
				sub, err := client.SubscribeToTxs(ctx, query)
				if err != nil {
					return err
				}
				return untilInterrupted(events.ConsumeSubscription(sub, func(e types.TxEvent) error {
					return printJSON(out, e)
				})(ctx))
			case kindValidators:
				sub, err := client.SubscribeToValidatorSetUpdates(ctx)
				if err != nil {
					return err
				}
				return untilInterrupted(events.ConsumeSubscription(sub, func(e types.ValidatorSetUpdatesEvent) error {
					return printJSON(out, e)
				})(ctx))
			default:
				sub, err := client.SubscribeToEvents(ctx, args[0], query)
				if err != nil {
					return err
				}
				return untilInterrupted(events.ConsumeSubscription(sub, func(e events.RawEvent) error {
					return printJSON(out, e)
				})(ctx))
			}
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "event query, e.g. \"tm.event='Tx' AND transfer.recipient='addr'\"")
	return cmd
}

// CmdWaitEvent returns a cli command to wait for a specific block or tx event
func CmdWaitEvent(a *app) *cobra.Command {
	var start int64
	cmd := &cobra.Command{
		Use:   "wait-event <event type> <module> [action]",
		Short: "Wait for the next matching event",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventType := args[0]
			module := args[1]

			notifier := events.NewBlockNotifier(a.clients.Query, a.logger).WithHeaderSubscriber(a.clients.Events)
			if start > 0 {
				notifier = notifier.StartingAt(start)
			}
			eventBus := events.NewEventBus(events.NewBlockSource(a.clients.Query, notifier, a.logger), pubsub.NewBus[events.EventWithHeight](), a.logger)

			ctx, shutdownBus := startFetchingEvents(cmd.Context(), eventBus, a.logger)
			defer func() {
				shutdownBus()
				<-eventBus.Done()
			}()

			var (
				e   events.Event
				err error
			)
			if len(args) == 3 {
				e, err = events.WaitAction(ctx, eventBus, eventType, module, args[2], a.logger)
			} else {
				next, cancel := events.NextFilteredEvent(eventBus, events.QueryEventByAttributes(eventType, module))
				defer cancel()
				e, err = next(ctx)
			}
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), e)
		},
	}
	cmd.Flags().Int64Var(&start, "start", 0, "first block to search, defaults to the latest block")
	return cmd
}

// CmdWaitTx returns a cli command to wait for a transaction pushed by the node
func CmdWaitTx(a *app) *cobra.Command {
	var (
		query string
		hash  string
	)
	cmd := &cobra.Command{
		Use:   "wait-tx",
		Short: "Wait for the next transaction matching the query or hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if hash != "" {
				q, err := events.NewQuery("Tx").MatchTxHash(hash).Build()
				if err != nil {
					return err
				}
				query = q
			}

			tx, err := events.WaitTxEvent(cmd.Context(), a.clients.Events, query, nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tx)
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "tx event query")
	cmd.Flags().StringVar(&hash, "hash", "", "hex hash of the transaction, overrides the query")
	return cmd
}

// untilInterrupted treats the end of a subscription by interruption as success
func untilInterrupted(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func startFetchingEvents(ctx context.Context, eventBus *events.Bus, logger log.Logger) (context.Context, context.CancelFunc) {
	ctx, shutdownBus := context.WithCancel(ctx)
	errs := eventBus.FetchEvents(ctx)

	go func() {
		select {
		case err := <-errs:
			logger.Error(err.Error())
			shutdownBus()
		case <-ctx.Done():
			return
		}
	}()
	return ctx, shutdownBus
}
