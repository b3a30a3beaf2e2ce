package fake

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/axelarnetwork/tm-rpc/transport"
)

// Handler serves one RPC method. Returning a *transport.RPCError controls the error code sent to the client.
type Handler func(params json.RawMessage) (any, error)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type response struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      json.RawMessage     `json:"id"`
	Result  any                 `json:"result"`
	Error   *transport.RPCError `json:"error,omitempty"`
}

// Node is an in-process RPC server that speaks the node's JSON-RPC dialect over HTTP and websockets
type Node struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu       sync.Mutex
	handlers map[string]Handler
	conns    map[*conn]struct{}
}

// NewNode starts a node that reports the given software version in its status, e.g. "0.37.5"
func NewNode(version string) *Node {
	n := &Node{
		handlers: make(map[string]Handler),
		conns:    make(map[*conn]struct{}),
	}

	n.Handle("status", func(json.RawMessage) (any, error) {
		return map[string]any{
			"node_info": map[string]any{"id": "fake", "network": "fake-chain", "version": version, "moniker": "fake"},
			"sync_info": map[string]any{"latest_block_height": "1", "latest_block_time": "2024-01-01T00:00:00Z"},
		}, nil
	})
	n.Handle("health", func(json.RawMessage) (any, error) { return map[string]any{}, nil })

	mux := http.NewServeMux()
	mux.HandleFunc("/websocket", n.serveWebsocket)
	mux.HandleFunc("/", n.serveHTTP)
	n.server = httptest.NewServer(mux)

	return n
}

// URL returns the http address of the node
func (n *Node) URL() string {
	return n.server.URL
}

// WebsocketURL returns the websocket address of the node
func (n *Node) WebsocketURL() string {
	return "ws" + strings.TrimPrefix(n.server.URL, "http") + "/websocket"
}

// Handle registers the handler for the method, replacing any previous one
func (n *Node) Handle(method string, h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.handlers[method] = h
}

// Subscriptions returns the number of active subscriptions over all connections
func (n *Node) Subscriptions() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	count := 0
	for c := range n.conns {
		count += c.subscriptions()
	}
	return count
}

// Publish pushes an event to every subscription with exactly the given query and returns the number of receivers
func (n *Node) Publish(query string, eventType string, value any, events map[string][]string) int {
	result := map[string]any{
		"query":  query,
		"data":   map[string]any{"type": "tendermint/event/" + eventType, "value": value},
		"events": events,
	}

	n.mu.Lock()
	conns := make([]*conn, 0, len(n.conns))
	for c := range n.conns {
		conns = append(conns, c)
	}
	n.mu.Unlock()

	count := 0
	for _, c := range conns {
		count += c.publish(query, result)
	}
	return count
}

// DropConnections closes all websocket connections without a close handshake
func (n *Node) DropConnections() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for c := range n.conns {
		_ = c.ws.Close()
	}
}

// Close shuts the node down
func (n *Node) Close() {
	n.DropConnections()
	n.server.Close()
}

func (n *Node) handle(req request) response {
	resp := response{JSONRPC: "2.0", ID: req.ID}

	n.mu.Lock()
	h, ok := n.handlers[req.Method]
	n.mu.Unlock()

	if !ok {
		resp.Error = &transport.RPCError{Code: -32601, Message: "Method not found", Data: req.Method}
		return resp
	}

	result, err := h(req.Params)
	if err != nil {
		var rpcErr *transport.RPCError
		if !errors.As(err, &rpcErr) {
			rpcErr = &transport.RPCError{Code: -32603, Message: "Internal error", Data: err.Error()}
		}
		resp.Error = rpcErr
		return resp
	}

	resp.Result = result
	return resp
}

func (n *Node) serveHTTP(w http.ResponseWriter, r *http.Request) {
	bz, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req request
	if err := json.Unmarshal(bz, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n.handle(req))
}

func (n *Node) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := n.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &conn{ws: ws, subs: make(map[string]string)}
	n.mu.Lock()
	n.conns[c] = struct{}{}
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		delete(n.conns, c)
		n.mu.Unlock()
		_ = ws.Close()
	}()

	for {
		_, bz, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var req request
		if err := json.Unmarshal(bz, &req); err != nil {
			continue
		}

		switch req.Method {
		case "subscribe":
			c.subscribe(req)
		case "unsubscribe":
			c.unsubscribe(req)
		case "unsubscribe_all":
			c.unsubscribeAll(req)
		default:
			c.write(n.handle(req))
		}
	}
}

type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex

	mu sync.Mutex
	// call id of the subscribe request by query
	subs map[string]string
}

func (c *conn) write(v any) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.ws.WriteJSON(v)
}

func (c *conn) subscriptions() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.subs)
}

func queryOf(params json.RawMessage) (string, error) {
	var p struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return "", err
	}
	if p.Query == "" {
		return "", fmt.Errorf("missing query")
	}
	return p.Query, nil
}

func (c *conn) subscribe(req request) {
	resp := response{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{}}

	query, err := queryOf(req.Params)
	c.mu.Lock()
	switch {
	case err != nil:
		resp.Result = nil
		resp.Error = &transport.RPCError{Code: -32602, Message: "Invalid params", Data: err.Error()}
	case c.subs[query] != "":
		resp.Result = nil
		resp.Error = &transport.RPCError{Code: -32603, Message: "Internal error", Data: "already subscribed"}
	default:
		c.subs[query] = unquote(req.ID)
	}
	c.mu.Unlock()

	c.write(resp)
}

func (c *conn) unsubscribe(req request) {
	query, _ := queryOf(req.Params)

	c.mu.Lock()
	delete(c.subs, query)
	c.mu.Unlock()

	c.write(response{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{}})
}

func (c *conn) unsubscribeAll(req request) {
	c.mu.Lock()
	c.subs = make(map[string]string)
	c.mu.Unlock()

	c.write(response{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{}})
}

func (c *conn) publish(query string, result any) int {
	c.mu.Lock()
	id, ok := c.subs[query]
	c.mu.Unlock()

	if !ok {
		return 0
	}

	eventID, _ := json.Marshal(id + "#event")
	c.write(response{JSONRPC: "2.0", ID: eventID, Result: result})
	return 1
}

func unquote(id json.RawMessage) string {
	var s string
	if err := json.Unmarshal(id, &s); err == nil {
		return s
	}
	return string(id)
}
