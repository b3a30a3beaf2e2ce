package adapter

import (
	"fmt"
	"slices"

	"github.com/axelarnetwork/tm-rpc/codec"
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
)

// Adapter translates between the stable domain records and the wire shapes of one protocol version.
// Adapters are immutable after construction and safe for concurrent use.
type Adapter interface {
	Version() ProtocolVersion
	Info() ProtocolInfo
	SupportedMethods() []Method
	Supports(method Method) bool
	Capabilities() Capabilities

	// EncodeParams turns typed parameter records or generic maps into wire parameters
	EncodeParams(method Method, params any) (any, error)
	// DecodeResponse decodes a result into the domain record of the method. Results of unknown methods are returned unchanged.
	DecodeResponse(method Method, response any) (any, error)

	ParamsEncoder
	ResponseDecoder
	EventDecoder
}

// ParamsEncoder encodes typed request parameters
type ParamsEncoder interface {
	EncodeAbciQuery(params types.AbciQueryParams) (any, error)
	EncodeBlock(params types.HeightParams) (any, error)
	EncodeBlockByHash(params types.HashParams) (any, error)
	EncodeBlockResults(params types.HeightParams) (any, error)
	EncodeBlockSearch(params types.BlockSearchParams) (any, error)
	EncodeBlockchain(params types.BlockchainParams) (any, error)
	EncodeBroadcastTx(params types.BroadcastTxParams) (any, error)
	EncodeCommit(params types.HeightParams) (any, error)
	EncodeConsensusParams(params types.HeightParams) (any, error)
	EncodeGenesisChunked(params types.GenesisChunkedParams) (any, error)
	EncodeHeader(params types.HeightParams) (any, error)
	EncodeHeaderByHash(params types.HashParams) (any, error)
	EncodeTx(params types.TxParams) (any, error)
	EncodeTxSearch(params types.TxSearchParams) (any, error)
	EncodeUnconfirmedTxs(params types.UnconfirmedTxsParams) (any, error)
	EncodeValidators(params types.ValidatorsParams) (any, error)
	EncodeSubscribe(params types.SubscribeParams) (any, error)
}

// ResponseDecoder decodes method results
type ResponseDecoder interface {
	DecodeStatus(raw any) (types.Status, error)
	DecodeAbciInfo(raw any) (types.AbciInfo, error)
	DecodeAbciQuery(raw any) (types.AbciQuery, error)
	DecodeHealth(raw any) (types.Health, error)
	DecodeNetInfo(raw any) (types.NetInfo, error)
	DecodeBlock(raw any) (types.BlockResponse, error)
	DecodeBlockResults(raw any) (types.BlockResults, error)
	DecodeBlockSearch(raw any) (types.BlockSearch, error)
	DecodeBlockchain(raw any) (types.Blockchain, error)
	DecodeHeader(raw any) (types.HeaderResponse, error)
	DecodeCommit(raw any) (types.CommitResponse, error)
	DecodeTx(raw any) (types.TxResponse, error)
	DecodeTxSearch(raw any) (types.TxSearch, error)
	DecodeCheckTx(raw any) (types.TxResult, error)
	DecodeUnconfirmedTxs(raw any) (types.UnconfirmedTxs, error)
	DecodeBroadcastTxSync(raw any) (types.BroadcastTxResult, error)
	DecodeBroadcastTxAsync(raw any) (types.BroadcastTxResult, error)
	DecodeBroadcastTxCommit(raw any) (types.BroadcastTxCommit, error)
	DecodeValidators(raw any) (types.Validators, error)
	DecodeConsensusParams(raw any) (types.ConsensusParamsResponse, error)
	DecodeConsensusState(raw any) (types.ConsensusState, error)
	DecodeDumpConsensusState(raw any) (types.DumpConsensusState, error)
	DecodeGenesis(raw any) (types.Genesis, error)
	DecodeGenesisChunked(raw any) (types.GenesisChunk, error)
}

// EventDecoder decodes the results pushed for subscriptions
type EventDecoder interface {
	DecodeNewBlockEvent(raw any) (types.NewBlockEvent, error)
	DecodeBlockHeaderEvent(raw any) (types.BlockHeaderEvent, error)
	DecodeTxEvent(raw any) (types.TxEvent, error)
	DecodeValidatorSetUpdatesEvent(raw any) (types.ValidatorSetUpdatesEvent, error)
}

// New returns the adapter for the given protocol version
func New(version ProtocolVersion) (Adapter, error) {
	switch version {
	case Tendermint34:
		return newTendermintAdapter(version, types.Base64Attributes), nil
	case Tendermint37:
		return newTendermintAdapter(version, types.PlainAttributes), nil
	case Comet38, Comet100:
		return newCometAdapter(version), nil
	default:
		return nil, fmt.Errorf("unsupported protocol version %q", version)
	}
}

type (
	decodeFunc func(raw any) (any, error)
	encodeFunc func(params any) (any, error)
)

// base implements the behaviour all protocol versions share. Version specific adapters embed it,
// override what differs and bind the dispatch tables to themselves so DecodeResponse and EncodeParams
// reach the overrides.
type base struct {
	version ProtocolVersion
	caps    Capabilities
	methods []Method

	txResult        codec.Codec[types.TxResult]
	txResponse      codec.Codec[types.TxResponse]
	txSearch        codec.Codec[types.TxSearch]
	broadcastSync   codec.Codec[types.BroadcastTxResult]
	broadcastCommit codec.Codec[types.BroadcastTxCommit]
	blockResults    codec.Codec[types.BlockResults]
	newBlock        codec.Codec[types.NewBlockEvent]
	txEvent         codec.Codec[types.TxEvent]

	decoders map[Method]decodeFunc
	encoders map[Method]encodeFunc
}

func newBase(version ProtocolVersion, attributes types.AttributeEncoding) *base {
	events := types.EventCodec(attributes)
	caps := capabilitiesOf(version)

	return &base{
		version:         version,
		caps:            caps,
		methods:         methodsOf(caps),
		txResult:        types.TxResultCodec(events),
		txResponse:      types.TxResponseCodec(events),
		txSearch:        types.TxSearchCodec(events),
		broadcastSync:   types.BroadcastTxCodec(events),
		broadcastCommit: types.BroadcastTxCommitCodec(events),
		blockResults:    types.BlockResultsCodec(events, types.FinalizeBlockLayout),
		newBlock:        types.NewBlockEventCodec(events, types.FinalizeBlockLayout),
		txEvent:         types.TxEventCodec(events),
	}
}

// bind builds the dispatch tables from the outermost adapter
func (b *base) bind(self Adapter) {
	b.decoders = map[Method]decodeFunc{
		Status:             decoder(self.DecodeStatus),
		AbciInfo:           decoder(self.DecodeAbciInfo),
		Health:             decoder(self.DecodeHealth),
		NetInfo:            decoder(self.DecodeNetInfo),
		Block:              decoder(self.DecodeBlock),
		BlockByHash:        decoder(self.DecodeBlock),
		BlockResults:       decoder(self.DecodeBlockResults),
		BlockSearch:        decoder(self.DecodeBlockSearch),
		Blockchain:         decoder(self.DecodeBlockchain),
		Header:             decoder(self.DecodeHeader),
		HeaderByHash:       decoder(self.DecodeHeader),
		Commit:             decoder(self.DecodeCommit),
		Tx:                 decoder(self.DecodeTx),
		TxSearch:           decoder(self.DecodeTxSearch),
		CheckTx:            decoder(self.DecodeCheckTx),
		UnconfirmedTxs:     decoder(self.DecodeUnconfirmedTxs),
		NumUnconfirmedTxs:  decoder(self.DecodeUnconfirmedTxs),
		BroadcastTxSync:    decoder(self.DecodeBroadcastTxSync),
		BroadcastTxAsync:   decoder(self.DecodeBroadcastTxAsync),
		BroadcastTxCommit:  decoder(self.DecodeBroadcastTxCommit),
		Validators:         decoder(self.DecodeValidators),
		ConsensusParams:    decoder(self.DecodeConsensusParams),
		ConsensusState:     decoder(self.DecodeConsensusState),
		DumpConsensusState: decoder(self.DecodeDumpConsensusState),
		Genesis:            decoder(self.DecodeGenesis),
		GenesisChunked:     decoder(self.DecodeGenesisChunked),
		AbciQuery:          decoder(self.DecodeAbciQuery),
	}

	b.encoders = map[Method]encodeFunc{
		AbciQuery:         encoder(types.AbciQueryParamsCodec, self.EncodeAbciQuery),
		Block:             encoder(types.HeightParamsCodec, self.EncodeBlock),
		BlockByHash:       encoder(types.HashParamsCodec, self.EncodeBlockByHash),
		BlockResults:      encoder(types.HeightParamsCodec, self.EncodeBlockResults),
		BlockSearch:       encoder(types.BlockSearchParamsCodec, self.EncodeBlockSearch),
		Blockchain:        encoder(types.BlockchainParamsCodec, self.EncodeBlockchain),
		BroadcastTxSync:   encoder(types.BroadcastTxParamsCodec, self.EncodeBroadcastTx),
		BroadcastTxAsync:  encoder(types.BroadcastTxParamsCodec, self.EncodeBroadcastTx),
		BroadcastTxCommit: encoder(types.BroadcastTxParamsCodec, self.EncodeBroadcastTx),
		CheckTx:           encoder(types.BroadcastTxParamsCodec, self.EncodeBroadcastTx),
		Commit:            encoder(types.HeightParamsCodec, self.EncodeCommit),
		ConsensusParams:   encoder(types.HeightParamsCodec, self.EncodeConsensusParams),
		GenesisChunked:    encoder(types.GenesisChunkedParamsCodec, self.EncodeGenesisChunked),
		Header:            encoder(types.HeightParamsCodec, self.EncodeHeader),
		HeaderByHash:      encoder(types.HashParamsCodec, self.EncodeHeaderByHash),
		Tx:                encoder(types.TxParamsCodec, self.EncodeTx),
		TxSearch:          encoder(types.TxSearchParamsCodec, self.EncodeTxSearch),
		UnconfirmedTxs:    encoder(types.UnconfirmedTxsParamsCodec, self.EncodeUnconfirmedTxs),
		Validators:        encoder(types.ValidatorsParamsCodec, self.EncodeValidators),
		Subscribe:         encoder(types.SubscribeParamsCodec, self.EncodeSubscribe),
		Unsubscribe:       encoder(types.SubscribeParamsCodec, self.EncodeSubscribe),
	}
}

// methods whose generic maps are routed through the typed parameter codec, because their wire shape differs between versions
var dedicated = map[Method]bool{
	AbciQuery:         true,
	Blockchain:        true,
	BlockResults:      true,
	BroadcastTxSync:   true,
	BroadcastTxAsync:  true,
	BroadcastTxCommit: true,
	Commit:            true,
	ConsensusState:    true,
	Tx:                true,
	TxSearch:          true,
	Validators:        true,
}

func (b *base) Version() ProtocolVersion { return b.version }

func (b *base) Capabilities() Capabilities { return b.caps }

func (b *base) SupportedMethods() []Method { return slices.Clone(b.methods) }

func (b *base) Supports(method Method) bool { return slices.Contains(b.methods, method) }

func (b *base) Info() ProtocolInfo {
	return ProtocolInfo{Version: b.version, SupportedMethods: b.SupportedMethods(), Capabilities: b.caps}
}

func (b *base) EncodeParams(method Method, params any) (any, error) {
	if params == nil {
		return map[string]any{}, nil
	}

	if m, ok := params.(map[string]any); ok && !dedicated[method] {
		return encodeGeneric(m)
	}

	encode, ok := b.encoders[method]
	if !ok {
		if m, ok := params.(map[string]any); ok {
			return encodeGeneric(m)
		}
		return nil, &codec.EncodingError{Value: params, Reason: fmt.Sprintf("method %s takes no typed parameters", method)}
	}
	return encode(params)
}

func (b *base) DecodeResponse(method Method, response any) (any, error) {
	decode, ok := b.decoders[method]
	if !ok {
		return response, nil
	}
	return decode(response)
}

func (b *base) EncodeAbciQuery(params types.AbciQueryParams) (any, error) {
	return types.AbciQueryParamsCodec.Encode(params)
}

func (b *base) EncodeBlock(params types.HeightParams) (any, error) {
	return types.HeightParamsCodec.Encode(params)
}

func (b *base) EncodeBlockByHash(params types.HashParams) (any, error) {
	return types.HashParamsCodec.Encode(params)
}

func (b *base) EncodeBlockResults(params types.HeightParams) (any, error) {
	return types.HeightParamsCodec.Encode(params)
}

func (b *base) EncodeBlockSearch(params types.BlockSearchParams) (any, error) {
	return types.BlockSearchParamsCodec.Encode(params)
}

// EncodeBlockchain sends the height range positionally if both bounds are given, which every version accepts
func (b *base) EncodeBlockchain(params types.BlockchainParams) (any, error) {
	wire, err := types.BlockchainParamsCodec.Encode(params)
	if err != nil {
		return nil, err
	}

	if params.MinHeight != nil && params.MaxHeight != nil {
		return []any{wire["minHeight"], wire["maxHeight"]}, nil
	}
	return wire, nil
}

func (b *base) EncodeBroadcastTx(params types.BroadcastTxParams) (any, error) {
	return types.BroadcastTxParamsCodec.Encode(params)
}

func (b *base) EncodeCommit(params types.HeightParams) (any, error) {
	return types.HeightParamsCodec.Encode(params)
}

func (b *base) EncodeConsensusParams(params types.HeightParams) (any, error) {
	return types.HeightParamsCodec.Encode(params)
}

func (b *base) EncodeGenesisChunked(params types.GenesisChunkedParams) (any, error) {
	return types.GenesisChunkedParamsCodec.Encode(params)
}

func (b *base) EncodeHeader(params types.HeightParams) (any, error) {
	return types.HeightParamsCodec.Encode(params)
}

func (b *base) EncodeHeaderByHash(params types.HashParams) (any, error) {
	return types.HashParamsCodec.Encode(params)
}

func (b *base) EncodeTx(params types.TxParams) (any, error) {
	return types.TxParamsCodec.Encode(params)
}

func (b *base) EncodeTxSearch(params types.TxSearchParams) (any, error) {
	return types.TxSearchParamsCodec.Encode(params)
}

func (b *base) EncodeUnconfirmedTxs(params types.UnconfirmedTxsParams) (any, error) {
	return types.UnconfirmedTxsParamsCodec.Encode(params)
}

func (b *base) EncodeValidators(params types.ValidatorsParams) (any, error) {
	return types.ValidatorsParamsCodec.Encode(params)
}

func (b *base) EncodeSubscribe(params types.SubscribeParams) (any, error) {
	return types.SubscribeParamsCodec.Encode(params)
}

func (b *base) DecodeStatus(raw any) (types.Status, error) {
	return types.StatusCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeAbciInfo(raw any) (types.AbciInfo, error) {
	return types.AbciInfoCodec.Create(unwrap(raw, "response"))
}

func (b *base) DecodeAbciQuery(raw any) (types.AbciQuery, error) {
	return types.AbciQueryCodec.Create(unwrap(raw, "response"))
}

func (b *base) DecodeHealth(raw any) (types.Health, error) {
	return types.HealthCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeNetInfo(raw any) (types.NetInfo, error) {
	return types.NetInfoCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeBlock(raw any) (types.BlockResponse, error) {
	return types.BlockResponseCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeBlockResults(raw any) (types.BlockResults, error) {
	return b.blockResults.Create(unwrap(raw, "result"))
}

func (b *base) DecodeBlockSearch(raw any) (types.BlockSearch, error) {
	return types.BlockSearchCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeBlockchain(raw any) (types.Blockchain, error) {
	return types.BlockchainCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeHeader(raw any) (types.HeaderResponse, error) {
	return types.HeaderResponseCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeCommit(raw any) (types.CommitResponse, error) {
	return types.CommitResponseCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeTx(raw any) (types.TxResponse, error) {
	return b.txResponse.Create(unwrap(raw, "result"))
}

func (b *base) DecodeTxSearch(raw any) (types.TxSearch, error) {
	return b.txSearch.Create(unwrap(raw, "result"))
}

func (b *base) DecodeCheckTx(raw any) (types.TxResult, error) {
	return b.txResult.Create(unwrap(raw, "result"))
}

func (b *base) DecodeUnconfirmedTxs(raw any) (types.UnconfirmedTxs, error) {
	return types.UnconfirmedTxsCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeBroadcastTxSync(raw any) (types.BroadcastTxResult, error) {
	return b.broadcastSync.Create(unwrap(raw, "result"))
}

func (b *base) DecodeBroadcastTxAsync(raw any) (types.BroadcastTxResult, error) {
	return types.BroadcastTxAsyncCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeBroadcastTxCommit(raw any) (types.BroadcastTxCommit, error) {
	return b.broadcastCommit.Create(unwrap(raw, "result"))
}

func (b *base) DecodeValidators(raw any) (types.Validators, error) {
	return types.ValidatorsCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeConsensusParams(raw any) (types.ConsensusParamsResponse, error) {
	return types.ConsensusParamsResponseCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeConsensusState(raw any) (types.ConsensusState, error) {
	return types.ConsensusStateCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeDumpConsensusState(raw any) (types.DumpConsensusState, error) {
	return types.DumpConsensusStateCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeGenesis(raw any) (types.Genesis, error) {
	return types.GenesisCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeGenesisChunked(raw any) (types.GenesisChunk, error) {
	return types.GenesisChunkCodec.Create(unwrap(raw, "result"))
}

func (b *base) DecodeNewBlockEvent(raw any) (types.NewBlockEvent, error) {
	value, _ := eventValue(raw)
	return b.newBlock.Create(value)
}

func (b *base) DecodeBlockHeaderEvent(raw any) (types.BlockHeaderEvent, error) {
	value, _ := eventValue(raw)
	return types.BlockHeaderEventCodec.Create(value)
}

func (b *base) DecodeTxEvent(raw any) (types.TxEvent, error) {
	value, composite := eventValue(raw)

	event, err := b.txEvent.Create(unwrap(value, "TxResult"))
	if err != nil {
		return types.TxEvent{}, err
	}

	event.Events, err = types.CompositeEvents(composite)
	if err != nil {
		return types.TxEvent{}, err
	}
	return event, nil
}

func (b *base) DecodeValidatorSetUpdatesEvent(raw any) (types.ValidatorSetUpdatesEvent, error) {
	value, _ := eventValue(raw)
	return types.ValidatorSetUpdatesEventCodec.Create(value)
}
