package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 10 * time.Second
)

// Connection is a framed, bidirectional connection to the RPC server
type Connection interface {
	// Receive blocks until a message is received or the connection fails
	Receive() ([]byte, error)
	// Send writes one message. It is safe to call concurrently.
	Send(msg []byte) error
	Close() error
}

// Dialer opens connections
type Dialer interface {
	DialContext(ctx context.Context, url string, header http.Header) (Connection, error)
}

type websocketDialer struct {
	dialer *websocket.Dialer
}

// NewWebsocketDialer returns a Dialer backed by gorilla websockets
func NewWebsocketDialer() Dialer {
	return &websocketDialer{
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
	}
}

func (d *websocketDialer) DialContext(ctx context.Context, url string, header http.Header) (Connection, error) {
	conn, resp, err := d.dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, errorsmod.Wrapf(ErrConnection, "websocket handshake with %s failed with status %d: %v", url, resp.StatusCode, err)
		}
		return nil, errorsmod.Wrapf(ErrConnection, "failed to dial %s: %v", url, err)
	}

	return &websocketConn{conn: conn}, nil
}

type websocketConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *websocketConn) Receive() ([]byte, error) {
	_, msg, err := c.conn.ReadMessage()
	return msg, err
}

func (c *websocketConn) Send(msg []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

func (c *websocketConn) Close() error {
	c.writeMu.Lock()
	// best effort, the server may already be gone
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()

	return c.conn.Close()
}
