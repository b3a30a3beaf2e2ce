package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/libs/log"
)

// State is the connection state of a Stream
type State int32

// stream states
const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// subscriptionIDParam carries the client chosen subscription id to servers that push with the subscription method
const subscriptionIDParam = "subscription_id"

// Stream multiplexes calls and subscriptions over one persistent connection.
// A lost connection is not re-established, callers reconnect explicitly with Connect.
type Stream struct {
	url    string
	cfg    config
	logger log.Logger

	connMu  sync.Mutex
	state   atomic.Int32
	session atomic.Pointer[session]

	nextCallID atomic.Uint64
	nextSubID  atomic.Uint64
}

// NewStream returns a disconnected stream to the given websocket URL
func NewStream(url string, opts ...Option) *Stream {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Stream{
		url:    url,
		cfg:    cfg,
		logger: cfg.logger.With("transport", "stream"),
	}
}

// URL returns the websocket address of the stream
func (s *Stream) URL() string {
	return s.url
}

// State returns the current connection state
func (s *Stream) State() State {
	return State(s.state.Load())
}

// IsConnected returns true if calls and subscriptions can be issued
func (s *Stream) IsConnected() bool {
	return s.State() == Connected
}

// Connect dials the server. It is a no-op if the stream is already connected.
func (s *Stream) Connect(ctx context.Context) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.IsConnected() {
		return nil
	}

	s.state.Store(int32(Connecting))
	conn, err := s.cfg.dialer.DialContext(ctx, s.url, s.cfg.headers)
	if err != nil {
		s.state.Store(int32(Disconnected))
		return errorsmod.Wrapf(ErrConnection, "%s: %v", s.url, err)
	}

	sess := newSession(conn, s.logger, s.cfg.metrics)
	s.session.Store(sess)
	s.state.Store(int32(Connected))

	go sess.run()
	go sess.read()
	go func() {
		<-sess.done
		if s.session.CompareAndSwap(sess, nil) {
			s.state.Store(int32(Disconnected))
			s.logger.Info("connection closed", "url", s.url, "reason", sess.cause)
		}
	}()

	s.logger.Info("connected", "url", s.url)
	return nil
}

// Disconnect closes the connection. Pending calls fail and subscriptions end with ErrConnection.
func (s *Stream) Disconnect() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	sess := s.session.Swap(nil)
	s.state.Store(int32(Disconnected))
	if sess == nil {
		return nil
	}

	return sess.close()
}

// Call sends the request over the connection and waits for the response with the same id
func (s *Stream) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	result, err := s.call(ctx, method, params, nil)
	s.cfg.metrics.observeCall("stream", method, err)
	return result, err
}

// Subscribe issues a subscribe call and returns the events the server pushes for it.
// Events are routed by subscription id, which is injected into map parameters, and by CometBFT's "<id>#event" convention.
func (s *Stream) Subscribe(ctx context.Context, method string, params any) (Subscription, error) {
	subID := "sub_" + strconv.FormatUint(s.nextSubID.Add(1), 10)
	if m, ok := params.(map[string]any); ok {
		withID := make(map[string]any, len(m)+1)
		for key, value := range m {
			withID[key] = value
		}
		withID[subscriptionIDParam] = subID
		params = withID
	}

	sub := newSubscription(subID)
	if _, err := s.call(ctx, method, params, sub); err != nil {
		s.cfg.metrics.observeCall("stream", method, err)
		sub.Close()
		return nil, err
	}

	s.cfg.metrics.observeCall("stream", method, nil)
	return sub, nil
}

func (s *Stream) call(ctx context.Context, method string, params any, sub *subscription) (json.RawMessage, error) {
	sess := s.session.Load()
	if sess == nil {
		return nil, errorsmod.Wrapf(ErrConnection, "cannot call %s: stream is %s", method, s.State())
	}

	id := strconv.FormatUint(s.nextCallID.Add(1), 10)
	bz, err := json.Marshal(newRequest(id, method, params))
	if err != nil {
		return nil, errorsmod.Wrapf(ErrNetwork, "failed to encode %s request: %v", method, err)
	}

	results := make(chan callResult, 1)
	if err := sess.register(ctx, registration{id: id, results: results, sub: sub}); err != nil {
		return nil, err
	}

	if err := sess.conn.Send(bz); err != nil {
		sess.drop(id)
		return nil, errorsmod.Wrapf(ErrNetwork, "failed to send %s request: %v", method, err)
	}

	timeout := time.NewTimer(s.cfg.timeout)
	defer timeout.Stop()

	select {
	case res := <-results:
		return res.result, res.err
	case <-timeout.C:
		sess.drop(id)
		return nil, errorsmod.Wrapf(ErrTimeout, "%s after %s", method, s.cfg.timeout)
	case <-ctx.Done():
		sess.drop(id)
		return nil, ctx.Err()
	}
}

type callResult struct {
	result json.RawMessage
	err    error
}

type registration struct {
	id      string
	results chan<- callResult
	sub     *subscription
	ack     chan struct{}
}

// session is one connection. Its actor goroutine exclusively owns the pending call and subscription tables.
type session struct {
	conn    Connection
	logger  log.Logger
	metrics *Metrics

	registrations chan registration
	drops         chan string
	unsubscribes  chan *subscription
	inbound       chan Response
	readErr       chan error
	quit          chan struct{}
	done          chan struct{}
	closeOnce     sync.Once

	// cause is written by the actor before done is closed
	cause   error
	pending atomic.Int64
}

func newSession(conn Connection, logger log.Logger, metrics *Metrics) *session {
	return &session{
		conn:          conn,
		logger:        logger,
		metrics:       metrics,
		registrations: make(chan registration),
		drops:         make(chan string),
		unsubscribes:  make(chan *subscription),
		inbound:       make(chan Response),
		readErr:       make(chan error, 1),
		quit:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// register hands the pending call to the actor and returns once it is routable
func (s *session) register(ctx context.Context, reg registration) error {
	reg.ack = make(chan struct{})
	if reg.sub != nil {
		reg.sub.sess = s
		reg.sub.callID = reg.id
	}

	select {
	case s.registrations <- reg:
	case <-s.done:
		return errorsmod.Wrap(ErrConnection, "connection closed")
	case <-ctx.Done():
		return ctx.Err()
	}

	<-reg.ack
	return nil
}

func (s *session) drop(id string) {
	select {
	case s.drops <- id:
	case <-s.done:
	}
}

func (s *session) unsubscribe(sub *subscription) {
	select {
	case s.unsubscribes <- sub:
	case <-s.done:
		// the actor is gone and no longer touches the subscription
		sub.end(errorsmod.Wrap(ErrClosed, sub.id))
	}
}

func (s *session) close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.quit)
		err = s.conn.Close()
	})
	<-s.done
	return err
}

func (s *session) read() {
	for {
		bz, err := s.conn.Receive()
		if err != nil {
			select {
			case s.readErr <- err:
			case <-s.done:
			}
			return
		}

		var msg Response
		if err := json.Unmarshal(bz, &msg); err != nil {
			s.logger.Error("dropping malformed message", "error", err)
			continue
		}

		select {
		case s.inbound <- msg:
		case <-s.done:
			return
		}
	}
}

func (s *session) run() {
	defer close(s.done)

	pending := make(map[string]chan<- callResult)
	subs := make(map[string]*subscription)

	for {
		select {
		case reg := <-s.registrations:
			pending[reg.id] = reg.results
			if reg.sub != nil {
				subs[reg.sub.id] = reg.sub
				subs[reg.sub.callID] = reg.sub
			}
			close(reg.ack)
		case id := <-s.drops:
			delete(pending, id)
		case sub := <-s.unsubscribes:
			if subs[sub.id] == sub {
				delete(subs, sub.id)
				delete(subs, sub.callID)
			}
			sub.end(errorsmod.Wrap(ErrClosed, sub.id))
		case msg := <-s.inbound:
			s.route(msg, pending, subs)
		case err := <-s.readErr:
			_ = s.conn.Close()
			s.cause = errorsmod.Wrapf(ErrConnection, "connection lost: %v", err)
			s.failAll(pending, subs)
			return
		case <-s.quit:
			s.cause = errorsmod.Wrap(ErrConnection, "disconnected")
			s.failAll(pending, subs)
			return
		}

		s.pending.Store(int64(len(pending)))
		s.metrics.setPending("stream", len(pending))
	}
}

func (s *session) route(msg Response, pending map[string]chan<- callResult, subs map[string]*subscription) {
	if msg.IsPush() {
		subID, event, err := msg.push()
		if err != nil {
			s.logger.Error("dropping malformed subscription message", "error", err)
			return
		}

		sub, ok := subs[subID]
		if !ok {
			s.logger.Debug("dropping event for unknown subscription", "subscription", subID)
			return
		}

		if msg.Error != nil {
			delete(subs, sub.id)
			delete(subs, sub.callID)
			sub.end(msg.Error)
			return
		}

		sub.push(event)
		s.metrics.observeEvent("stream")
		return
	}

	id := msg.CorrelationID()
	results, ok := pending[id]
	if !ok {
		s.logger.Debug("dropping response without pending call", "id", id)
		return
	}
	delete(pending, id)

	if msg.Error != nil {
		results <- callResult{err: msg.Error}
		return
	}
	results <- callResult{result: msg.Result}
}

// failAll fails every pending call and ends every subscription with the session's cause
func (s *session) failAll(pending map[string]chan<- callResult, subs map[string]*subscription) {
	for id, results := range pending {
		results <- callResult{err: s.cause}
		delete(pending, id)
	}
	for key, sub := range subs {
		sub.end(s.cause)
		delete(subs, key)
	}

	s.pending.Store(0)
	s.metrics.setPending("stream", 0)
}
