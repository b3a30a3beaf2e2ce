package pubsub

import (
	"context"
	"errors"
	"sync"

	"github.com/smallnest/chanx"
)

// ErrNotRunning is the error with message "not running"
var ErrNotRunning = errors.New("not running")

// DefaultBufferCapacity is the initial capacity of the bus and subscriber buffers
const DefaultBufferCapacity = 1000

// Bus provides a general purpose interface for message passing.
// Items are delivered to every subscriber whose filter matches, in the order they were published.
type Bus[T any] interface {
	Publish(T) error
	Subscribe(filter func(T) bool) <-chan T
	Unsubscribe(sub <-chan T)
	Subscribers() int
	Close()
	Done() <-chan struct{}
}

// Option configures a bus
type Option func(*options)

type options struct {
	bufferCap int
}

// WithBufferCapacity sets the initial capacity of the unbounded buffers. Buffers grow beyond it when needed.
func WithBufferCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.bufferCap = capacity
		}
	}
}

type bus[T any] struct {
	subMutex      sync.Mutex
	subscriptions map[<-chan T]*subscriber[T]
	buffer        *chanx.UnboundedChan[T]
	bufferCap     int
	running       context.Context
	closing       context.CancelFunc
	cleanedUp     chan struct{}
	once          sync.Once
}

// NewBus runs a new bus
func NewBus[T any](opts ...Option) Bus[T] {
	o := options{bufferCap: DefaultBufferCapacity}
	for _, opt := range opts {
		opt(&o)
	}

	running, closing := context.WithCancel(context.Background())
	b := &bus[T]{
		bufferCap:     o.bufferCap,
		buffer:        chanx.NewUnboundedChan[T](o.bufferCap),
		subscriptions: make(map[<-chan T]*subscriber[T]),
		running:       running,
		closing:       closing,
		cleanedUp:     make(chan struct{}),
	}

	go b.run()

	return b
}

func (b *bus[T]) Publish(item T) error {
	// hold the lock so Close cannot close the input buffer in between the check and the send
	b.subMutex.Lock()
	defer b.subMutex.Unlock()

	select {
	case <-b.running.Done():
		return ErrNotRunning
	default:
		b.buffer.In <- item
		return nil
	}
}

// Subscribe returns the items that match the filter. A nil filter matches everything.
func (b *bus[T]) Subscribe(filter func(T) bool) <-chan T {
	if filter == nil {
		filter = func(T) bool { return true }
	}

	b.subMutex.Lock()
	defer b.subMutex.Unlock()

	select {
	case <-b.running.Done():
		ch := make(chan T)
		close(ch)
		return ch
	default:
		sub := &subscriber[T]{
			filter: filter,
			buffer: chanx.NewUnboundedChan[T](b.bufferCap),
		}
		b.subscriptions[sub.buffer.Out] = sub

		return sub.buffer.Out
	}
}

// Unsubscribe stops delivery to the given subscription and closes its channel once the buffered items are drained
func (b *bus[T]) Unsubscribe(ch <-chan T) {
	b.subMutex.Lock()
	defer b.subMutex.Unlock()

	sub, ok := b.subscriptions[ch]
	if !ok {
		return
	}
	delete(b.subscriptions, ch)
	close(sub.buffer.In)
}

func (b *bus[T]) Subscribers() int {
	b.subMutex.Lock()
	defer b.subMutex.Unlock()

	return len(b.subscriptions)
}

func (b *bus[T]) Close() {
	b.once.Do(func() {
		b.subMutex.Lock()
		defer b.subMutex.Unlock()

		b.closing()
		close(b.buffer.In)
	})
}

func (b *bus[T]) Done() <-chan struct{} {
	return b.cleanedUp
}

func (b *bus[T]) run() {
	for item := range b.buffer.Out {
		b.subMutex.Lock()
		for _, sub := range b.subscriptions {
			if sub.filter(item) {
				sub.buffer.In <- item
			}
		}
		b.subMutex.Unlock()
	}

	b.subMutex.Lock()
	for ch, sub := range b.subscriptions {
		close(sub.buffer.In)
		delete(b.subscriptions, ch)
	}
	b.subMutex.Unlock()

	close(b.cleanedUp)
}

type subscriber[T any] struct {
	buffer *chanx.UnboundedChan[T]
	filter func(T) bool
}
