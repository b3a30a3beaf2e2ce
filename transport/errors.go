package transport

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

const codespace = "transport"

var (
	// ErrConnection is returned when the transport is not connected or the connection fails
	ErrConnection = errorsmod.Register(codespace, 1, "connection error")
	// ErrTimeout is returned when a call does not receive its response before the deadline
	ErrTimeout = errorsmod.Register(codespace, 2, "request timed out")
	// ErrNetwork is returned when a request cannot be delivered or the server rejects it
	ErrNetwork = errorsmod.Register(codespace, 3, "network error")
	// ErrClosed is returned by a subscription that was closed by its consumer
	ErrClosed = errorsmod.Register(codespace, 4, "subscription closed")
)

// RPCError is an error reported by the RPC server in a response envelope
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if e.Data == "" {
		return fmt.Sprintf("%s: RPC error %d: %s", ErrNetwork.Error(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: RPC error %d: %s: %s", ErrNetwork.Error(), e.Code, e.Message, e.Data)
}

// Unwrap makes errors.Is(err, ErrNetwork) hold
func (e *RPCError) Unwrap() error {
	return ErrNetwork
}
