package adapter

import (
	"github.com/axelarnetwork/tm-rpc/codec"
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

// tendermintAdapter speaks Tendermint 0.34 and 0.37. Blocks are executed in BeginBlock/DeliverTx/EndBlock,
// so block results and new block events carry begin and end block events.
type tendermintAdapter struct {
	*base
	legacyBlockResults codec.Codec[types.BlockResults]
	legacyNewBlock     codec.Codec[types.NewBlockEvent]
}

func newTendermintAdapter(version ProtocolVersion, attributes types.AttributeEncoding) *tendermintAdapter {
	events := types.EventCodec(attributes)

	a := &tendermintAdapter{
		base:               newBase(version, attributes),
		legacyBlockResults: types.BlockResultsCodec(events, types.BeginEndBlockLayout),
		legacyNewBlock:     types.NewBlockEventCodec(events, types.BeginEndBlockLayout),
	}
	a.bind(a)
	return a
}

func (a *tendermintAdapter) DecodeBlockResults(raw any) (types.BlockResults, error) {
	return a.legacyBlockResults.Create(unwrap(raw, "result"))
}

// DecodeBroadcastTxAsync is identical to DecodeBroadcastTxSync, both return the CheckTx outcome
func (a *tendermintAdapter) DecodeBroadcastTxAsync(raw any) (types.BroadcastTxResult, error) {
	return a.DecodeBroadcastTxSync(raw)
}

func (a *tendermintAdapter) DecodeNewBlockEvent(raw any) (types.NewBlockEvent, error) {
	value, _ := eventValue(raw)
	return a.legacyNewBlock.Create(value)
}
