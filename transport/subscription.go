package transport

import (
	"context"
	"encoding/json"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"github.com/smallnest/chanx"
)

const subscriptionBufferCap = 100

var _ Subscription = (*subscription)(nil)

// subscription buffers the events of one subscription in FIFO order.
// Only the session actor pushes to and ends the buffer.
type subscription struct {
	id     string
	callID string
	sess   *session

	buffer    *chanx.UnboundedChan[json.RawMessage]
	closed    chan struct{}
	closeOnce sync.Once
	endOnce   sync.Once
	// err is written before the buffer is closed
	err error
}

func newSubscription(id string) *subscription {
	return &subscription{
		id:     id,
		buffer: chanx.NewUnboundedChan[json.RawMessage](subscriptionBufferCap),
		closed: make(chan struct{}),
	}
}

// Next returns the next buffered event. Once the subscription has ended and its buffer is drained it returns the reason.
func (s *subscription) Next(ctx context.Context) (json.RawMessage, error) {
	select {
	case <-s.closed:
		return nil, errorsmod.Wrap(ErrClosed, s.id)
	default:
	}

	select {
	case event, ok := <-s.buffer.Out:
		if !ok {
			return nil, s.err
		}
		return event, nil
	case <-s.closed:
		return nil, errorsmod.Wrap(ErrClosed, s.id)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close removes the subscription from the stream. Buffered events are discarded.
func (s *subscription) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.sess == nil {
			s.end(errorsmod.Wrap(ErrClosed, s.id))
			return
		}
		s.sess.unsubscribe(s)
	})
}

func (s *subscription) push(event json.RawMessage) {
	s.buffer.In <- event
}

func (s *subscription) end(err error) {
	s.endOnce.Do(func() {
		s.err = err
		close(s.buffer.In)
	})
}
