package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cometbft/cometbft/libs/log"
)

//go:generate moq -out ./mock/transport.go -pkg mock . Caller Streamer Subscription Dialer Connection

// DefaultTimeout is the deadline of a single call
const DefaultTimeout = 30 * time.Second

// Caller issues RPC calls and returns the raw result
type Caller interface {
	Call(ctx context.Context, method string, params any) (json.RawMessage, error)
}

// Streamer is a Caller over a persistent connection that also supports subscriptions
type Streamer interface {
	Caller
	IsConnected() bool
	Subscribe(ctx context.Context, method string, params any) (Subscription, error)
}

// Subscription is a pull-driven sequence of events pushed by the server
type Subscription interface {
	// Next blocks until the next event arrives, the subscription ends or ctx is done
	Next(ctx context.Context) (json.RawMessage, error)
	// Close ends the subscription and releases its buffer
	Close()
}

var (
	_ Caller   = (*HTTP)(nil)
	_ Streamer = (*Stream)(nil)
)

type config struct {
	timeout    time.Duration
	headers    http.Header
	httpClient *http.Client
	dialer     Dialer
	logger     log.Logger
	metrics    *Metrics
}

func defaultConfig() config {
	return config{
		timeout:    DefaultTimeout,
		headers:    http.Header{},
		httpClient: http.DefaultClient,
		dialer:     NewWebsocketDialer(),
		logger:     log.NewNopLogger(),
	}
}

// Option configures a transport
type Option func(*config)

// WithTimeout sets the deadline of every call. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHeader adds a header to every HTTP request and to the websocket handshake
func WithHeader(key, value string) Option {
	return func(c *config) { c.headers.Add(key, value) }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithDialer replaces the websocket dialer of a stream
func WithDialer(dialer Dialer) Option {
	return func(c *config) {
		if dialer != nil {
			c.dialer = dialer
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records calls and events in the given metrics
func WithMetrics(metrics *Metrics) Option {
	return func(c *config) { c.metrics = metrics }
}
