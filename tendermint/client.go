package tendermint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/libs/log"
	"go.uber.org/multierr"

	"github.com/axelarnetwork/tm-rpc/adapter"
	"github.com/axelarnetwork/tm-rpc/events"
	"github.com/axelarnetwork/tm-rpc/query"
	"github.com/axelarnetwork/tm-rpc/transport"
)

// default client parameters
const (
	DefaultWSEndpoint = "/websocket"
	DefaultAddress    = "http://localhost:26657"
	DefaultTimeout    = transport.DefaultTimeout
)

// Config describes how to reach a node
type Config struct {
	// Address is the http(s) address of the node's RPC server
	Address string
	// Endpoint is the websocket path on the RPC server
	Endpoint string
	// Version is the protocol version of the node. Empty means it is detected from the node's status.
	Version adapter.ProtocolVersion
	Timeout time.Duration
	Headers map[string]string
	// Reconnect wraps the event stream in a RobustStream. Without it, calls on a lost connection fail with transport.ErrConnection.
	Reconnect bool
}

// DefaultConfig returns the configuration of a local node with version detection
func DefaultConfig() Config {
	return Config{
		Address:  DefaultAddress,
		Endpoint: DefaultWSEndpoint,
		Timeout:  DefaultTimeout,
	}
}

func (c Config) transportOptions(logger log.Logger, opts []transport.Option) []transport.Option {
	options := []transport.Option{transport.WithLogger(logger)}
	if c.Timeout > 0 {
		options = append(options, transport.WithTimeout(c.Timeout))
	}
	for key, value := range c.Headers {
		options = append(options, transport.WithHeader(key, value))
	}
	return append(options, opts...)
}

// WebsocketURL turns the http(s) address of a node into the ws(s) URL of the given endpoint
func WebsocketURL(address string, endpoint string) (string, error) {
	if !validEndpoint(endpoint) {
		return "", fmt.Errorf("invalid endpoint %q", endpoint)
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", address, err)
	}

	switch u.Scheme {
	case "http", "ws", "tcp":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme in address %q", address)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + endpoint
	return u.String(), nil
}

// HTTPURL turns a node address into the http(s) URL of its RPC server
func HTTPURL(address string) (string, error) {
	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", address, err)
	}

	switch u.Scheme {
	case "http", "ws", "tcp":
		u.Scheme = "http"
	case "https", "wss":
		u.Scheme = "https"
	default:
		return "", fmt.Errorf("unsupported scheme in address %q", address)
	}
	return u.String(), nil
}

func validEndpoint(ep string) bool {
	return strings.HasPrefix(ep, "/")
}

// DetectVersion asks the node for its software version and maps it to a protocol version.
// Unknown versions map to Tendermint 0.34.
func DetectVersion(ctx context.Context, caller transport.Caller) (adapter.ProtocolVersion, error) {
	// the status shape is the same for every version
	a, err := adapter.New(adapter.Tendermint34)
	if err != nil {
		return "", err
	}

	status, err := query.NewClient(caller, a).Status(ctx)
	if err != nil {
		return "", errorsmod.Wrap(err, "failed to detect the node's protocol version")
	}

	return adapter.VersionFromNodeVersion(status.NodeInfo.Version), nil
}

// NewQueryClient returns a query client over HTTP. Without a configured version, the version is detected first.
func NewQueryClient(ctx context.Context, cfg Config, logger log.Logger, opts ...transport.Option) (*query.Client, error) {
	httpURL, err := HTTPURL(cfg.Address)
	if err != nil {
		return nil, err
	}

	caller := transport.NewHTTP(httpURL, cfg.transportOptions(logger, opts)...)
	a, err := resolveAdapter(ctx, cfg.Version, caller, logger)
	if err != nil {
		return nil, err
	}

	return query.NewClient(caller, a, query.WithLogger(logger)), nil
}

// NewEventClient connects a stream to the node's websocket endpoint and returns an event client over it.
// The stream is only re-dialed after connection loss if cfg.Reconnect is set.
func NewEventClient(ctx context.Context, cfg Config, a adapter.Adapter, logger log.Logger, opts ...transport.Option) (*events.Client, Dialable, error) {
	wsURL, err := WebsocketURL(cfg.Address, cfg.Endpoint)
	if err != nil {
		return nil, nil, err
	}

	var stream Dialable = transport.NewStream(wsURL, cfg.transportOptions(logger, opts)...)
	if cfg.Reconnect {
		stream = NewRobustStream(stream, logger)
	}
	if err := stream.Connect(ctx); err != nil {
		return nil, nil, err
	}

	return events.NewClient(stream, a, logger), stream, nil
}

// Clients bundles a query client and an event client that speak the same protocol version
type Clients struct {
	Query  *query.Client
	Events *events.Client
	Stream Dialable
}

// Close ends all event subscriptions and disconnects the event stream.
// Subscriptions are only ended on the node if the connection is still up.
func (c Clients) Close(ctx context.Context) error {
	var err error
	if c.Events != nil && online(c.Stream) {
		err = multierr.Append(err, c.Events.UnsubscribeFromAll(ctx))
	}
	if c.Stream != nil {
		err = multierr.Append(err, c.Stream.Disconnect())
	}
	return err
}

func online(stream Dialable) bool {
	switch s := stream.(type) {
	case nil:
		return false
	case *RobustStream:
		return s.Online()
	default:
		return s.IsConnected()
	}
}

// NewClients returns a query client and an event client for the node. The protocol version is always detected,
// a configured version that disagrees with the node is logged and overridden.
func NewClients(ctx context.Context, cfg Config, logger log.Logger, opts ...transport.Option) (Clients, error) {
	httpURL, err := HTTPURL(cfg.Address)
	if err != nil {
		return Clients{}, err
	}

	caller := transport.NewHTTP(httpURL, cfg.transportOptions(logger, opts)...)
	detected, err := DetectVersion(ctx, caller)
	if err != nil {
		return Clients{}, err
	}

	if cfg.Version != "" && cfg.Version != detected {
		logger.Info(fmt.Sprintf("configured protocol version %s does not match the node, using %s", cfg.Version, detected),
			"configured", cfg.Version, "detected", detected)
	}

	a, err := adapter.New(detected)
	if err != nil {
		return Clients{}, err
	}

	eventClient, stream, err := NewEventClient(ctx, cfg, a, logger, opts...)
	if err != nil {
		return Clients{}, err
	}

	return Clients{
		Query:  query.NewClient(caller, a, query.WithLogger(logger)),
		Events: eventClient,
		Stream: stream,
	}, nil
}

func resolveAdapter(ctx context.Context, version adapter.ProtocolVersion, caller transport.Caller, logger log.Logger) (adapter.Adapter, error) {
	if version == "" {
		var err error
		if version, err = DetectVersion(ctx, caller); err != nil {
			return nil, err
		}
		logger.Debug("detected protocol version", "version", version)
	}

	return adapter.New(version)
}

//go:generate moq -pkg mock -out ./mock/stream.go . Dialable

// Dialable is a stream that can be (re)connected
type Dialable interface {
	transport.Streamer
	Connect(ctx context.Context) error
	Disconnect() error
}

// RobustStream re-dials a disconnected stream once on the next call. It does not retry in a loop.
type RobustStream struct {
	stream    Dialable
	logger    log.Logger
	closed    chan struct{}
	closeOnce sync.Once
}

var _ Dialable = &RobustStream{}

// NewRobustStream returns a new RobustStream instance
func NewRobustStream(stream Dialable, logger log.Logger) *RobustStream {
	return &RobustStream{stream: stream, logger: logger.With("transport", "robust"), closed: make(chan struct{})}
}

// Connect dials the stream if it is not connected
func (r *RobustStream) Connect(ctx context.Context) error {
	select {
	case <-r.closed:
		return errorsmod.Wrap(transport.ErrClosed, "stream was closed")
	default:
		return r.stream.Connect(ctx)
	}
}

// IsConnected reports true until the stream is closed, because calls re-dial on demand
func (r *RobustStream) IsConnected() bool {
	select {
	case <-r.closed:
		return false
	default:
		return true
	}
}

// Online reports whether the wrapped stream currently has a live connection
func (r *RobustStream) Online() bool {
	return r.IsConnected() && r.stream.IsConnected()
}

// Call sends a request, re-dialing first if the connection was lost
func (r *RobustStream) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if err := r.resetIfDisconnected(ctx); err != nil {
		return nil, err
	}
	return r.stream.Call(ctx, method, params)
}

// Subscribe subscribes, re-dialing first if the connection was lost
func (r *RobustStream) Subscribe(ctx context.Context, method string, params any) (transport.Subscription, error) {
	if err := r.resetIfDisconnected(ctx); err != nil {
		return nil, err
	}
	return r.stream.Subscribe(ctx, method, params)
}

// Close disconnects the stream for good
func (r *RobustStream) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.closed)
		err = r.stream.Disconnect()
	})
	return err
}

// Disconnect is Close, a RobustStream cannot be reused afterwards
func (r *RobustStream) Disconnect() error {
	return r.Close()
}

func (r *RobustStream) resetIfDisconnected(ctx context.Context) error {
	if r.stream.IsConnected() {
		return nil
	}

	r.logger.Info("stream disconnected, reconnecting")
	if err := r.Connect(ctx); err != nil {
		return errorsmod.Wrap(err, "failed to reconnect")
	}
	return nil
}
