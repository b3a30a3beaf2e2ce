package types

import (
	"github.com/axelarnetwork/tm-rpc/codec"
)

// NewBlockEvent is pushed for every committed block
type NewBlockEvent struct {
	Block               Block
	BlockID             BlockID
	BeginBlockEvents    []Event
	EndBlockEvents      []Event
	FinalizeBlockEvents []Event
}

// BlockHeaderEvent is pushed for every new block header
type BlockHeaderEvent struct {
	Header BlockHeader
	NumTxs int64
}

// TxEvent is pushed for every executed transaction matching a subscription query
type TxEvent struct {
	Height int64
	Index  uint32
	Tx     []byte
	Result TxResult
	// Events holds the composite event keys of the transaction, e.g. "tx.hash" or "transfer.recipient"
	Events map[string][]string
}

// ValidatorSetUpdatesEvent is pushed when the validator set changes
type ValidatorSetUpdatesEvent struct {
	ValidatorUpdates []Validator
}

type abciEvents struct{ Events []Event }

// NewBlockEventCodec decodes the value of new block events
func NewBlockEventCodec(events codec.Codec[Event], layout BlockResultsLayout) codec.Codec[NewBlockEvent] {
	wrapper := codec.New("ResponseEvents",
		codec.Optional("events", codec.Array(codec.Nested(events)), func(e *abciEvents) *[]Event { return &e.Events }),
	)
	responseEvents := func(raw any) ([]Event, error) {
		wrapped, err := wrapper.Create(raw)
		return wrapped.Events, err
	}

	fields := []codec.Field[NewBlockEvent]{
		codec.Required("block", codec.Nested(BlockCodec), func(e *NewBlockEvent) *Block { return &e.Block }),
		codec.Optional("blockID", codec.Nested(BlockIDCodec), func(e *NewBlockEvent) *BlockID { return &e.BlockID }).From("block_id"),
	}

	switch layout {
	case FinalizeBlockLayout:
		fields = append(fields,
			codec.Optional("finalizeBlockEvents", responseEvents, func(e *NewBlockEvent) *[]Event { return &e.FinalizeBlockEvents }).From("result_finalize_block"),
		)
	default:
		fields = append(fields,
			codec.Optional("beginBlockEvents", responseEvents, func(e *NewBlockEvent) *[]Event { return &e.BeginBlockEvents }).From("result_begin_block"),
			codec.Optional("endBlockEvents", responseEvents, func(e *NewBlockEvent) *[]Event { return &e.EndBlockEvents }).From("result_end_block"),
		)
	}

	return codec.New("NewBlockEvent", fields...)
}

// BlockHeaderEventCodec decodes the value of new block header events
var BlockHeaderEventCodec = codec.New("BlockHeaderEvent",
	codec.Required("header", codec.Nested(BlockHeaderCodec), func(e *BlockHeaderEvent) *BlockHeader { return &e.Header }),
	codec.Optional("numTxs", codec.ToInt64, func(e *BlockHeaderEvent) *int64 { return &e.NumTxs }),
)

// TxEventCodec decodes the TxResult value of tx events with the given event codec
func TxEventCodec(events codec.Codec[Event]) codec.Codec[TxEvent] {
	return codec.New("TxEvent",
		codec.Required("height", codec.EnsureInt64, func(e *TxEvent) *int64 { return &e.Height }),
		codec.Optional("index", uint32Conv, func(e *TxEvent) *uint32 { return &e.Index }),
		codec.Optional("tx", codec.ToBytesFromBase64, func(e *TxEvent) *[]byte { return &e.Tx }),
		codec.Optional("result", codec.Nested(TxResultCodec(events)), func(e *TxEvent) *TxResult { return &e.Result }),
	)
}

// ValidatorSetUpdatesEventCodec decodes the value of validator set update events
var ValidatorSetUpdatesEventCodec = codec.New("ValidatorSetUpdatesEvent",
	codec.Optional("validatorUpdates", codec.Array(codec.Nested(ValidatorCodec)), func(e *ValidatorSetUpdatesEvent) *[]Validator { return &e.ValidatorUpdates }),
)

// CompositeEvents decodes the events map that accompanies every pushed event
func CompositeEvents(raw any) (map[string][]string, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return map[string][]string{}, nil
	}

	out := make(map[string][]string, len(obj))
	for key, values := range obj {
		list, err := codec.Array(codec.ToString)(values)
		if err != nil {
			return nil, err
		}
		out[key] = list
	}
	return out, nil
}
