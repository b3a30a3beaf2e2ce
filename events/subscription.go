package events

import (
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/cometbft/cometbft/libs/log"

	"github.com/axelarnetwork/tm-rpc/codec"
	"github.com/axelarnetwork/tm-rpc/transport"
)

// Subscription is a typed stream of events for one (event type, query) pair.
// The subscription ends on the first error, on context cancellation or on Close, whichever comes first.
// Once ended, the client accepts a new subscription for the same pair.
type Subscription[T any] struct {
	eventType string
	query     string
	sub       transport.Subscription
	decode    func(raw any) (T, error)
	release   func()
	logger    log.Logger
	once      sync.Once
}

// EventType returns the subscribed event type, e.g. NewBlock
func (s *Subscription[T]) EventType() string {
	return s.eventType
}

// Query returns the query sent to the node
func (s *Subscription[T]) Query() string {
	return s.query
}

// Next blocks until the next event arrives. Every error is terminal.
func (s *Subscription[T]) Next(ctx context.Context) (T, error) {
	var zero T

	bz, err := s.sub.Next(ctx)
	if err != nil {
		s.Close()
		return zero, err
	}

	raw, err := codec.Unmarshal(bz)
	if err != nil {
		s.Close()
		return zero, err
	}

	event, err := s.decode(raw)
	if err != nil {
		s.logger.Error("failed to decode event", "event_type", s.eventType, "error", err)
		s.Close()
		return zero, err
	}
	return event, nil
}

// All returns the events as a sequence. The sequence ends without error when the subscription is closed,
// otherwise the terminal error is yielded last. Breaking out of the loop closes the subscription.
func (s *Subscription[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()

		for {
			event, err := s.Next(ctx)
			if errors.Is(err, transport.ErrClosed) {
				return
			}
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

// Close ends the subscription and frees its key. It is safe to call multiple times.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.sub.Close()
		s.release()
		s.logger.Debug("subscription closed", "event_type", s.eventType, "query", s.query)
	})
}
