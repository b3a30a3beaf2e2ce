package types

import (
	abci "github.com/cometbft/cometbft/abci/types"

	"github.com/axelarnetwork/tm-rpc/codec"
)

// AttributeEncoding describes how event attribute keys and values travel on the wire
type AttributeEncoding int

const (
	// PlainAttributes are sent as UTF-8 strings (Tendermint 0.37 and later)
	PlainAttributes AttributeEncoding = iota
	// Base64Attributes are sent as base64 encoded bytes (Tendermint 0.34)
	Base64Attributes
)

// EventAttribute is a single key/value pair of an ABCI event
type EventAttribute struct {
	Key   string
	Value string
	Index bool
}

// Event is an ABCI event emitted during block or transaction execution
type Event struct {
	Type       string
	Attributes []EventAttribute
}

// ToABCI converts the event into its ABCI representation
func (e Event) ToABCI() abci.Event {
	attributes := make([]abci.EventAttribute, 0, len(e.Attributes))
	for _, attribute := range e.Attributes {
		attributes = append(attributes, abci.EventAttribute{Key: attribute.Key, Value: attribute.Value, Index: attribute.Index})
	}
	return abci.Event{Type: e.Type, Attributes: attributes}
}

// AttributeMap flattens the attributes into a map. Attributes with empty keys are dropped, later keys win.
func (e Event) AttributeMap() map[string]string {
	m := make(map[string]string, len(e.Attributes))
	for _, attribute := range e.Attributes {
		if attribute.Key == "" {
			continue
		}
		m[attribute.Key] = attribute.Value
	}
	return m
}

// EventCodec returns the codec for events whose attributes are encoded as given
func EventCodec(encoding AttributeEncoding) codec.Codec[Event] {
	attribute := codec.ToString
	if encoding == Base64Attributes {
		attribute = legacyAttribute
	}

	attributeCodec := codec.New("EventAttribute",
		codec.Optional("key", attribute, func(a *EventAttribute) *string { return &a.Key }),
		codec.Optional("value", attribute, func(a *EventAttribute) *string { return &a.Value }),
		codec.Optional("index", codec.ToBool, func(a *EventAttribute) *bool { return &a.Index }),
	)

	return codec.New("Event",
		codec.Optional("type", codec.ToString, func(e *Event) *string { return &e.Type }),
		codec.Optional("attributes", codec.Array(codec.Nested(attributeCodec)), func(e *Event) *[]EventAttribute { return &e.Attributes }),
	)
}

// legacyAttribute decodes base64 attribute bytes. Values that are not base64 are kept verbatim.
func legacyAttribute(raw any) (string, error) {
	s, _ := codec.ToString(raw)
	bz, err := codec.EnsureBytesFromBase64(s)
	if err != nil {
		return s, nil
	}
	return string(bz), nil
}
