package events

import (
	"github.com/axelarnetwork/tm-rpc/codec"
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

// RawEvent is a pushed event whose payload is left undecoded
type RawEvent struct {
	Query string
	// Type is the payload type, e.g. tendermint/event/NewBlock
	Type  string
	Value any
	// Events holds the composite event keys that matched, e.g. "tx.hash"
	Events map[string][]string
}

var rawEventCodec = codec.New("RawEvent",
	codec.Optional("query", codec.ToString, func(e *RawEvent) *string { return &e.Query }),
	codec.Optional("data", payloadType, func(e *RawEvent) *string { return &e.Type }),
	codec.Optional("data", payloadValue, func(e *RawEvent) *any { return &e.Value }),
	codec.Optional("events", types.CompositeEvents, func(e *RawEvent) *map[string][]string { return &e.Events }),
)

func decodeRawEvent(raw any) (RawEvent, error) {
	return rawEventCodec.Create(raw)
}

func payloadType(raw any) (string, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return "", nil
	}
	return codec.ToString(data["type"])
}

func payloadValue(raw any) (any, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return raw, nil
	}
	return data["value"], nil
}

// EventWithHeight adds the height of the block that emitted it to an event
type EventWithHeight struct {
	Height int64
	types.Event
}

// Event is an event with its attributes flattened into a map
type Event struct {
	Type       string
	Attributes map[string]string
	Height     int64
}

// Parse flattens the attributes of the event. Attributes with empty keys are dropped.
func Parse(event EventWithHeight) Event {
	return Event{Type: event.Type, Attributes: event.AttributeMap(), Height: event.Height}
}
