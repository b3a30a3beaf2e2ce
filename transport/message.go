package transport

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	jsonRPCVersion = "2.0"
	// subscriptionMethod is the method of messages pushed for a subscription
	subscriptionMethod = "subscription"
	// eventIDSuffix marks CometBFT's native event messages, which reuse the id of the subscribe request
	eventIDSuffix = "#event"
)

// Request is the JSON-RPC request envelope
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

func newRequest(id, method string, params any) Request {
	if params == nil {
		params = map[string]any{}
	}
	return Request{JSONRPC: jsonRPCVersion, ID: id, Method: method, Params: params}
}

// Response is the JSON-RPC envelope of responses and pushed messages
type Response struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// CorrelationID returns the id of the response, which servers may echo as a string or a number
func (r Response) CorrelationID() string {
	raw := bytes.TrimSpace(r.ID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	if s, err := strconv.Unquote(string(raw)); err == nil {
		return s
	}
	return string(raw)
}

// IsPush returns true if the message is a subscription push rather than the response to a call
func (r Response) IsPush() bool {
	return r.Method == subscriptionMethod || strings.HasSuffix(r.CorrelationID(), eventIDSuffix)
}

type pushParams struct {
	SubscriptionID string          `json:"subscription_id"`
	Result         json.RawMessage `json:"result"`
}

// push extracts the subscription id and the event of a pushed message
func (r Response) push() (subscriptionID string, event json.RawMessage, err error) {
	if r.Method == subscriptionMethod {
		var params pushParams
		if err := json.Unmarshal(r.Params, &params); err != nil {
			return "", nil, err
		}
		return params.SubscriptionID, params.Result, nil
	}

	return strings.TrimSuffix(r.CorrelationID(), eventIDSuffix), r.Result, nil
}
