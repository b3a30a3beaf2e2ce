package query

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/libs/log"

	"github.com/axelarnetwork/tm-rpc/adapter"
	"github.com/axelarnetwork/tm-rpc/codec"
	"github.com/axelarnetwork/tm-rpc/tendermint/types"
	"github.com/axelarnetwork/tm-rpc/transport"
)

const codespace = "query"

// ErrUnsupported is returned for methods the protocol version of the node does not offer
var ErrUnsupported = errorsmod.Register(codespace, 1, "method not supported by protocol version")

// Client offers one typed method per RPC. Each call encodes its parameters with the adapter,
// issues exactly one transport call and decodes the result with the adapter. It neither retries nor caches.
type Client struct {
	caller   transport.Caller
	adapter  adapter.Adapter
	messages MessageCodec
	logger   log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithMessageCodec sets the codec BroadcastMessage uses to turn messages into transaction bytes
func WithMessageCodec(messages MessageCodec) Option {
	return func(c *Client) { c.messages = messages }
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient returns a query client that talks to the node through caller
func NewClient(caller transport.Caller, a adapter.Adapter, opts ...Option) *Client {
	c := &Client{
		caller:   caller,
		adapter:  a,
		messages: ProtoMessageCodec{},
		logger:   log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("client", "query", "protocol", a.Version())

	return c
}

func call[R any](ctx context.Context, c *Client, method adapter.Method, params any, decode func(raw any) (R, error)) (R, error) {
	var zero R

	if !c.adapter.Supports(method) {
		return zero, errorsmod.Wrapf(ErrUnsupported, "%s on %s", method, c.adapter.Version())
	}

	wire, err := c.adapter.EncodeParams(method, params)
	if err != nil {
		return zero, err
	}

	result, err := c.caller.Call(ctx, method.String(), wire)
	if err != nil {
		c.logger.Debug("call failed", "method", method, "error", err)
		return zero, err
	}

	var raw any
	if len(result) > 0 {
		if raw, err = codec.Unmarshal(result); err != nil {
			return zero, err
		}
	}

	return decode(raw)
}

// ProtocolInfo describes the protocol version the client speaks
func (c *Client) ProtocolInfo() adapter.ProtocolInfo {
	return c.adapter.Info()
}

// Status returns the node's status
func (c *Client) Status(ctx context.Context) (types.Status, error) {
	return call(ctx, c, adapter.Status, nil, c.adapter.DecodeStatus)
}

// LatestBlockHeight returns the height of the latest block the node has committed
func (c *Client) LatestBlockHeight(ctx context.Context) (int64, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return 0, err
	}
	return status.SyncInfo.LatestBlockHeight, nil
}

// AbciInfo returns information about the application
func (c *Client) AbciInfo(ctx context.Context) (types.AbciInfo, error) {
	return call(ctx, c, adapter.AbciInfo, nil, c.adapter.DecodeAbciInfo)
}

// AbciQuery queries the application directly
func (c *Client) AbciQuery(ctx context.Context, params types.AbciQueryParams) (types.AbciQuery, error) {
	return call(ctx, c, adapter.AbciQuery, params, c.adapter.DecodeAbciQuery)
}

// Health returns an error if the node is unhealthy
func (c *Client) Health(ctx context.Context) (types.Health, error) {
	return call(ctx, c, adapter.Health, nil, c.adapter.DecodeHealth)
}

// NetInfo returns the node's network information
func (c *Client) NetInfo(ctx context.Context) (types.NetInfo, error) {
	return call(ctx, c, adapter.NetInfo, nil, c.adapter.DecodeNetInfo)
}

// Block returns the block at the given height, or the latest block if height is nil
func (c *Client) Block(ctx context.Context, height *int64) (types.BlockResponse, error) {
	return call(ctx, c, adapter.Block, types.HeightParams{Height: height}, c.adapter.DecodeBlock)
}

// BlockByHash returns the block with the given hash (base64 or 0x-prefixed hex)
func (c *Client) BlockByHash(ctx context.Context, hash string) (types.BlockResponse, error) {
	return call(ctx, c, adapter.BlockByHash, types.HashParams{Hash: hash}, c.adapter.DecodeBlock)
}

// BlockResults returns the execution results of the block at the given height, or of the latest block if height is nil
func (c *Client) BlockResults(ctx context.Context, height *int64) (types.BlockResults, error) {
	return call(ctx, c, adapter.BlockResults, types.HeightParams{Height: height}, c.adapter.DecodeBlockResults)
}

// SearchBlocks searches blocks by their events
func (c *Client) SearchBlocks(ctx context.Context, params types.BlockSearchParams) (types.BlockSearch, error) {
	return call(ctx, c, adapter.BlockSearch, params, c.adapter.DecodeBlockSearch)
}

// Blockchain returns the block metas in the given height range
func (c *Client) Blockchain(ctx context.Context, minHeight, maxHeight *int64) (types.Blockchain, error) {
	return call(ctx, c, adapter.Blockchain, types.BlockchainParams{MinHeight: minHeight, MaxHeight: maxHeight}, c.adapter.DecodeBlockchain)
}

// Header returns the header of the block at the given height
func (c *Client) Header(ctx context.Context, height *int64) (types.HeaderResponse, error) {
	return call(ctx, c, adapter.Header, types.HeightParams{Height: height}, c.adapter.DecodeHeader)
}

// HeaderByHash returns the header of the block with the given hash
func (c *Client) HeaderByHash(ctx context.Context, hash string) (types.HeaderResponse, error) {
	return call(ctx, c, adapter.HeaderByHash, types.HashParams{Hash: hash}, c.adapter.DecodeHeader)
}

// Commit returns the signed header of the block at the given height
func (c *Client) Commit(ctx context.Context, height *int64) (types.CommitResponse, error) {
	return call(ctx, c, adapter.Commit, types.HeightParams{Height: height}, c.adapter.DecodeCommit)
}

// Tx returns the transaction with the given hash
func (c *Client) Tx(ctx context.Context, hash string, prove bool) (types.TxResponse, error) {
	return call(ctx, c, adapter.Tx, types.TxParams{Hash: hash, Prove: prove}, c.adapter.DecodeTx)
}

// SearchTxs searches transactions by their events
func (c *Client) SearchTxs(ctx context.Context, params types.TxSearchParams) (types.TxSearch, error) {
	return call(ctx, c, adapter.TxSearch, params, c.adapter.DecodeTxSearch)
}

// CheckTx runs CheckTx on the transaction without adding it to the mempool
func (c *Client) CheckTx(ctx context.Context, tx []byte) (types.TxResult, error) {
	return call(ctx, c, adapter.CheckTx, types.BroadcastTxParams{Tx: tx}, c.adapter.DecodeCheckTx)
}

// UnconfirmedTxs returns up to limit transactions of the mempool
func (c *Client) UnconfirmedTxs(ctx context.Context, limit *int) (types.UnconfirmedTxs, error) {
	return call(ctx, c, adapter.UnconfirmedTxs, types.UnconfirmedTxsParams{Limit: limit}, c.adapter.DecodeUnconfirmedTxs)
}

// NumUnconfirmedTxs returns the size of the mempool
func (c *Client) NumUnconfirmedTxs(ctx context.Context) (types.UnconfirmedTxs, error) {
	return call(ctx, c, adapter.NumUnconfirmedTxs, nil, c.adapter.DecodeUnconfirmedTxs)
}

// BroadcastTxSync broadcasts the transaction and returns the CheckTx result
func (c *Client) BroadcastTxSync(ctx context.Context, tx []byte) (types.BroadcastTxResult, error) {
	return call(ctx, c, adapter.BroadcastTxSync, types.BroadcastTxParams{Tx: tx}, c.adapter.DecodeBroadcastTxSync)
}

// BroadcastTxAsync broadcasts the transaction without waiting for CheckTx
func (c *Client) BroadcastTxAsync(ctx context.Context, tx []byte) (types.BroadcastTxResult, error) {
	return call(ctx, c, adapter.BroadcastTxAsync, types.BroadcastTxParams{Tx: tx}, c.adapter.DecodeBroadcastTxAsync)
}

// BroadcastTxCommit broadcasts the transaction and waits until it is committed in a block
func (c *Client) BroadcastTxCommit(ctx context.Context, tx []byte) (types.BroadcastTxCommit, error) {
	return call(ctx, c, adapter.BroadcastTxCommit, types.BroadcastTxParams{Tx: tx}, c.adapter.DecodeBroadcastTxCommit)
}

// BroadcastMessage encodes msg with the client's message codec and broadcasts it synchronously
func (c *Client) BroadcastMessage(ctx context.Context, msg any) (types.BroadcastTxResult, error) {
	tx, err := c.messages.Encode(msg)
	if err != nil {
		return types.BroadcastTxResult{}, err
	}
	return c.BroadcastTxSync(ctx, tx)
}

// Validators returns a page of the validator set at the given height
func (c *Client) Validators(ctx context.Context, params types.ValidatorsParams) (types.Validators, error) {
	return call(ctx, c, adapter.Validators, params, c.adapter.DecodeValidators)
}

// ConsensusParams returns the consensus parameters at the given height
func (c *Client) ConsensusParams(ctx context.Context, height *int64) (types.ConsensusParamsResponse, error) {
	return call(ctx, c, adapter.ConsensusParams, types.HeightParams{Height: height}, c.adapter.DecodeConsensusParams)
}

// ConsensusState returns a summary of the current consensus round
func (c *Client) ConsensusState(ctx context.Context) (types.ConsensusState, error) {
	return call(ctx, c, adapter.ConsensusState, nil, c.adapter.DecodeConsensusState)
}

// DumpConsensusState returns the full consensus state including peer states
func (c *Client) DumpConsensusState(ctx context.Context) (types.DumpConsensusState, error) {
	return call(ctx, c, adapter.DumpConsensusState, nil, c.adapter.DecodeDumpConsensusState)
}

// Genesis returns the genesis document
func (c *Client) Genesis(ctx context.Context) (types.Genesis, error) {
	return call(ctx, c, adapter.Genesis, nil, c.adapter.DecodeGenesis)
}

// GenesisChunked returns one chunk of a genesis document that is too large for Genesis
func (c *Client) GenesisChunked(ctx context.Context, chunk int) (types.GenesisChunk, error) {
	return call(ctx, c, adapter.GenesisChunked, types.GenesisChunkedParams{Chunk: chunk}, c.adapter.DecodeGenesisChunked)
}
