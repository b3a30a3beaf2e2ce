package types

import (
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/axelarnetwork/tm-rpc/codec"
)

// TxResult is the outcome of executing or checking a transaction
type TxResult struct {
	Code      uint32
	Data      []byte
	Log       string
	Info      string
	GasWanted sdkmath.Int
	GasUsed   sdkmath.Int
	Events    []Event
	Codespace string
}

// BlockParams limits the size of blocks
type BlockParams struct {
	MaxBytes int64
	MaxGas   int64
}

// EvidenceParams limits the age and size of evidence
type EvidenceParams struct {
	MaxAgeNumBlocks int64
	MaxAgeDuration  time.Duration
	MaxBytes        int64
}

// ValidatorParams restricts the key types validators may use
type ValidatorParams struct {
	PubKeyTypes []string
}

// VersionParams holds the app version
type VersionParams struct {
	App uint64
}

// AbciParams holds ABCI specific consensus parameters
type AbciParams struct {
	VoteExtensionsEnableHeight int64
}

// ConsensusParams are the consensus critical parameters of a chain
type ConsensusParams struct {
	Block     BlockParams
	Evidence  EvidenceParams
	Validator ValidatorParams
	Version   VersionParams
	Abci      AbciParams
}

// BlockResults is the response of the block_results method.
// Engines before 0.38 fill BeginBlockEvents and EndBlockEvents, later engines fill FinalizeBlockEvents and AppHash.
type BlockResults struct {
	Height                int64
	TxsResults            []TxResult
	BeginBlockEvents      []Event
	EndBlockEvents        []Event
	FinalizeBlockEvents   []Event
	ValidatorUpdates      []ValidatorUpdate
	ConsensusParamUpdates *ConsensusParams
	AppHash               []byte
}

// BlockEvents returns all block level events in execution order, independent of the engine version
func (r BlockResults) BlockEvents() []Event {
	events := make([]Event, 0, len(r.BeginBlockEvents)+len(r.EndBlockEvents)+len(r.FinalizeBlockEvents))
	events = append(events, r.BeginBlockEvents...)
	events = append(events, r.EndBlockEvents...)
	return append(events, r.FinalizeBlockEvents...)
}

// BlockResultsLayout selects the shape of block results
type BlockResultsLayout int

const (
	// BeginEndBlockLayout is used by Tendermint 0.34 and 0.37
	BeginEndBlockLayout BlockResultsLayout = iota
	// FinalizeBlockLayout is used from CometBFT 0.38 on
	FinalizeBlockLayout
)

var blockParamsCodec = codec.New("BlockParams",
	codec.Optional("maxBytes", codec.ToInt64, func(p *BlockParams) *int64 { return &p.MaxBytes }),
	codec.Optional("maxGas", codec.ToInt64, func(p *BlockParams) *int64 { return &p.MaxGas }),
)

var evidenceParamsCodec = codec.New("EvidenceParams",
	codec.Optional("maxAgeNumBlocks", codec.ToInt64, func(p *EvidenceParams) *int64 { return &p.MaxAgeNumBlocks }),
	codec.Optional("maxAgeDuration", duration, func(p *EvidenceParams) *time.Duration { return &p.MaxAgeDuration }),
	codec.Optional("maxBytes", codec.ToInt64, func(p *EvidenceParams) *int64 { return &p.MaxBytes }),
)

var validatorParamsCodec = codec.New("ValidatorParams",
	codec.Optional("pubKeyTypes", codec.Array(codec.EnsureString), func(p *ValidatorParams) *[]string { return &p.PubKeyTypes }),
)

var versionParamsCodec = codec.New("VersionParams",
	codec.Optional("app", uint64Conv, func(p *VersionParams) *uint64 { return &p.App }),
)

var abciParamsCodec = codec.New("AbciParams",
	codec.Optional("voteExtensionsEnableHeight", codec.ToInt64, func(p *AbciParams) *int64 { return &p.VoteExtensionsEnableHeight }),
)

// ConsensusParamsCodec decodes consensus parameters
var ConsensusParamsCodec = codec.New("ConsensusParams",
	codec.Optional("block", codec.Nested(blockParamsCodec), func(p *ConsensusParams) *BlockParams { return &p.Block }),
	codec.Optional("evidence", codec.Nested(evidenceParamsCodec), func(p *ConsensusParams) *EvidenceParams { return &p.Evidence }),
	codec.Optional("validator", codec.Nested(validatorParamsCodec), func(p *ConsensusParams) *ValidatorParams { return &p.Validator }),
	codec.Optional("version", codec.Nested(versionParamsCodec), func(p *ConsensusParams) *VersionParams { return &p.Version }),
	codec.Optional("abci", codec.Nested(abciParamsCodec), func(p *ConsensusParams) *AbciParams { return &p.Abci }),
)

// duration decodes nanosecond counts, which is how the consensus engine encodes durations in JSON
func duration(raw any) (time.Duration, error) {
	if s, ok := raw.(string); ok {
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
	}
	ns, _ := codec.ToInt64(raw)
	return time.Duration(ns), nil
}

// TxResultCodec decodes transaction execution results with the given event codec
func TxResultCodec(events codec.Codec[Event]) codec.Codec[TxResult] {
	return codec.New("TxResult",
		codec.Optional("code", uint32Conv, func(r *TxResult) *uint32 { return &r.Code }),
		codec.Optional("data", codec.ToBytesFromBase64, func(r *TxResult) *[]byte { return &r.Data }),
		codec.Optional("log", codec.ToString, func(r *TxResult) *string { return &r.Log }),
		codec.Optional("info", codec.ToString, func(r *TxResult) *string { return &r.Info }),
		codec.Optional("gasWanted", codec.ToBigInt, func(r *TxResult) *sdkmath.Int { return &r.GasWanted }),
		codec.Optional("gasUsed", codec.ToBigInt, func(r *TxResult) *sdkmath.Int { return &r.GasUsed }),
		codec.Optional("events", codec.Array(codec.Nested(events)), func(r *TxResult) *[]Event { return &r.Events }),
		codec.Optional("codespace", codec.ToString, func(r *TxResult) *string { return &r.Codespace }),
	)
}

// BlockResultsCodec decodes block results of the given layout
func BlockResultsCodec(events codec.Codec[Event], layout BlockResultsLayout) codec.Codec[BlockResults] {
	eventList := codec.Array(codec.Nested(events))

	fields := []codec.Field[BlockResults]{
		codec.Required("height", codec.EnsureInt64, func(r *BlockResults) *int64 { return &r.Height }),
		codec.Optional("txsResults", codec.Array(codec.Nested(TxResultCodec(events))), func(r *BlockResults) *[]TxResult { return &r.TxsResults }),
		codec.Optional("validatorUpdates", codec.Array(codec.Nested(ValidatorUpdateCodec)), func(r *BlockResults) *[]ValidatorUpdate { return &r.ValidatorUpdates }),
		codec.Optional("consensusParamUpdates", codec.Ptr(codec.Nested(ConsensusParamsCodec)), func(r *BlockResults) **ConsensusParams { return &r.ConsensusParamUpdates }),
	}

	switch layout {
	case FinalizeBlockLayout:
		fields = append(fields,
			codec.Optional("finalizeBlockEvents", eventList, func(r *BlockResults) *[]Event { return &r.FinalizeBlockEvents }),
			codec.Optional("appHash", codec.ToBytesFromBase64, func(r *BlockResults) *[]byte { return &r.AppHash }),
		)
	default:
		fields = append(fields,
			codec.Optional("beginBlockEvents", eventList, func(r *BlockResults) *[]Event { return &r.BeginBlockEvents }),
			codec.Optional("endBlockEvents", eventList, func(r *BlockResults) *[]Event { return &r.EndBlockEvents }),
		)
	}

	return codec.New("BlockResults", fields...)
}
