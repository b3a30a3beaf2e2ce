package types

import (
	"github.com/axelarnetwork/tm-rpc/codec"
)

// HeightParams select a block by height. A nil height means the latest block.
type HeightParams struct {
	Height *int64
}

// HashParams select a block by its hash, given as base64 or 0x-prefixed hex.
// Hex hashes are normalised to base64 when encoded or decoded.
type HashParams struct {
	Hash string
}

// BlockchainParams select a range of block metas
type BlockchainParams struct {
	MinHeight *int64
	MaxHeight *int64
}

// TxParams select a transaction by its hash, given as base64 or 0x-prefixed hex.
// Hex hashes are normalised to base64 when encoded or decoded.
type TxParams struct {
	Hash  string
	Prove bool
}

// TxSearchParams search transactions by event query
type TxSearchParams struct {
	Query   string
	Prove   bool
	Page    *int
	PerPage *int
	OrderBy string
}

// BlockSearchParams search blocks by event query
type BlockSearchParams struct {
	Query   string
	Page    *int
	PerPage *int
	OrderBy string
}

// BroadcastTxParams carry raw transaction bytes
type BroadcastTxParams struct {
	Tx []byte
}

// UnconfirmedTxsParams limit the number of returned mempool transactions
type UnconfirmedTxsParams struct {
	Limit *int
}

// ValidatorsParams select a page of the validator set at a height
type ValidatorsParams struct {
	Height  *int64
	Page    *int
	PerPage *int
}

// GenesisChunkedParams select a chunk of the genesis file
type GenesisChunkedParams struct {
	Chunk int
}

// AbciQueryParams query the application directly
type AbciQueryParams struct {
	Path   string
	Data   []byte
	Height *int64
	Prove  bool
}

// SubscribeParams carry an event query
type SubscribeParams struct {
	Query string
}

var (
	optionalHeight = codec.EncodeOptional(codec.EncodeInt64)
	optionalInt    = codec.EncodeOptional(codec.EncodeInt)
)

// HeightParamsCodec encodes block, block_results, commit, consensus_params and header parameters
var HeightParamsCodec = codec.New("HeightParams",
	codec.Param("height", codec.Ptr(codec.EnsureInt64), optionalHeight, func(p *HeightParams) **int64 { return &p.Height }),
)

// HashParamsCodec encodes block_by_hash and header_by_hash parameters
var HashParamsCodec = codec.New("HashParams",
	codec.RequiredParam("hash", codec.EnsureHash, codec.EncodeHash, func(p *HashParams) *string { return &p.Hash }),
)

// BlockchainParamsCodec encodes blockchain parameters. The server names them in camelCase.
var BlockchainParamsCodec = codec.New("BlockchainParams",
	codec.Param("minHeight", codec.Ptr(codec.EnsureInt64), optionalHeight, func(p *BlockchainParams) **int64 { return &p.MinHeight }).From("minHeight"),
	codec.Param("maxHeight", codec.Ptr(codec.EnsureInt64), optionalHeight, func(p *BlockchainParams) **int64 { return &p.MaxHeight }).From("maxHeight"),
)

// TxParamsCodec encodes tx parameters
var TxParamsCodec = codec.New("TxParams",
	codec.RequiredParam("hash", codec.EnsureHash, codec.EncodeHash, func(p *TxParams) *string { return &p.Hash }),
	codec.Param("prove", codec.ToBool, codec.EncodeBool, func(p *TxParams) *bool { return &p.Prove }),
)

// TxSearchParamsCodec encodes tx_search parameters
var TxSearchParamsCodec = codec.New("TxSearchParams",
	codec.RequiredParam("query", codec.EnsureString, codec.EncodeString, func(p *TxSearchParams) *string { return &p.Query }),
	codec.Param("prove", codec.ToBool, codec.EncodeBool, func(p *TxSearchParams) *bool { return &p.Prove }),
	codec.Param("page", codec.Ptr(codec.EnsureInt), optionalInt, func(p *TxSearchParams) **int { return &p.Page }),
	codec.Param("perPage", codec.Ptr(codec.EnsureInt), optionalInt, func(p *TxSearchParams) **int { return &p.PerPage }),
	codec.Param("orderBy", codec.ToString, codec.EncodeString, func(p *TxSearchParams) *string { return &p.OrderBy }),
)

// BlockSearchParamsCodec encodes block_search parameters
var BlockSearchParamsCodec = codec.New("BlockSearchParams",
	codec.RequiredParam("query", codec.EnsureString, codec.EncodeString, func(p *BlockSearchParams) *string { return &p.Query }),
	codec.Param("page", codec.Ptr(codec.EnsureInt), optionalInt, func(p *BlockSearchParams) **int { return &p.Page }),
	codec.Param("perPage", codec.Ptr(codec.EnsureInt), optionalInt, func(p *BlockSearchParams) **int { return &p.PerPage }),
	codec.Param("orderBy", codec.ToString, codec.EncodeString, func(p *BlockSearchParams) *string { return &p.OrderBy }),
)

// BroadcastTxParamsCodec encodes broadcast_tx_* and check_tx parameters. Transactions travel as base64.
var BroadcastTxParamsCodec = codec.New("BroadcastTxParams",
	codec.RequiredParam("tx", codec.EnsureBytesFromBase64, codec.EncodeBase64, func(p *BroadcastTxParams) *[]byte { return &p.Tx }),
)

// UnconfirmedTxsParamsCodec encodes unconfirmed_txs parameters
var UnconfirmedTxsParamsCodec = codec.New("UnconfirmedTxsParams",
	codec.Param("limit", codec.Ptr(codec.EnsureInt), optionalInt, func(p *UnconfirmedTxsParams) **int { return &p.Limit }),
)

// ValidatorsParamsCodec encodes validators parameters
var ValidatorsParamsCodec = codec.New("ValidatorsParams",
	codec.Param("height", codec.Ptr(codec.EnsureInt64), optionalHeight, func(p *ValidatorsParams) **int64 { return &p.Height }),
	codec.Param("page", codec.Ptr(codec.EnsureInt), optionalInt, func(p *ValidatorsParams) **int { return &p.Page }),
	codec.Param("perPage", codec.Ptr(codec.EnsureInt), optionalInt, func(p *ValidatorsParams) **int { return &p.PerPage }),
)

// GenesisChunkedParamsCodec encodes genesis_chunked parameters
var GenesisChunkedParamsCodec = codec.New("GenesisChunkedParams",
	codec.Param("chunk", codec.ToInt, codec.EncodeInt, func(p *GenesisChunkedParams) *int { return &p.Chunk }),
)

// AbciQueryParamsCodec encodes abci_query parameters. Query data travels as hex.
var AbciQueryParamsCodec = codec.New("AbciQueryParams",
	codec.RequiredParam("path", codec.EnsureString, codec.EncodeString, func(p *AbciQueryParams) *string { return &p.Path }),
	codec.Param("data", codec.EnsureBytesFromHex, codec.EncodeHex, func(p *AbciQueryParams) *[]byte { return &p.Data }),
	codec.Param("height", codec.Ptr(codec.EnsureInt64), optionalHeight, func(p *AbciQueryParams) **int64 { return &p.Height }),
	codec.Param("prove", codec.ToBool, codec.EncodeBool, func(p *AbciQueryParams) *bool { return &p.Prove }),
)

// SubscribeParamsCodec encodes subscribe and unsubscribe parameters
var SubscribeParamsCodec = codec.New("SubscribeParams",
	codec.RequiredParam("query", codec.EnsureString, codec.EncodeString, func(p *SubscribeParams) *string { return &p.Query }),
)
