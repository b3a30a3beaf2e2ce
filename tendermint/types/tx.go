package types

import (
	sdkmath "cosmossdk.io/math"

	"github.com/axelarnetwork/tm-rpc/codec"
)

// MerkleProof proves the inclusion of a leaf in a merkle tree
type MerkleProof struct {
	Total    int64
	Index    int64
	LeafHash []byte
	Aunts    [][]byte
}

// TxProof proves the inclusion of a transaction in a block
type TxProof struct {
	RootHash []byte
	Data     []byte
	Proof    MerkleProof
}

// TxResponse is the response of the tx method and an entry of tx_search
type TxResponse struct {
	Hash     []byte
	Height   int64
	Index    uint32
	TxResult TxResult
	Tx       []byte
	Proof    *TxProof
}

// TxSearch is the response of the tx_search method
type TxSearch struct {
	Txs        []TxResponse
	TotalCount int
}

// BroadcastTxResult is the response of broadcast_tx_sync and broadcast_tx_async
type BroadcastTxResult struct {
	Code      uint32
	Data      []byte
	Log       string
	Info      string
	GasWanted sdkmath.Int
	GasUsed   sdkmath.Int
	Events    []Event
	Codespace string
	Hash      []byte
}

// BroadcastTxCommit is the response of broadcast_tx_commit.
// DeliverTx and TxResult hold the same result, engines before 0.38 call it deliver_tx and later ones tx_result.
type BroadcastTxCommit struct {
	CheckTx   TxResult
	DeliverTx *TxResult
	TxResult  *TxResult
	Hash      []byte
	Height    int64
}

// ExecResult returns the execution result regardless of the engine version that produced it
func (b BroadcastTxCommit) ExecResult() (TxResult, bool) {
	switch {
	case b.TxResult != nil:
		return *b.TxResult, true
	case b.DeliverTx != nil:
		return *b.DeliverTx, true
	default:
		return TxResult{}, false
	}
}

// UnconfirmedTxs is the response of unconfirmed_txs and num_unconfirmed_txs
type UnconfirmedTxs struct {
	Count      int
	Total      int
	TotalBytes int64
	Txs        [][]byte
}

var merkleProofCodec = codec.New("MerkleProof",
	codec.Optional("total", codec.ToInt64, func(p *MerkleProof) *int64 { return &p.Total }),
	codec.Optional("index", codec.ToInt64, func(p *MerkleProof) *int64 { return &p.Index }),
	codec.Optional("leafHash", codec.ToBytesFromBase64, func(p *MerkleProof) *[]byte { return &p.LeafHash }),
	codec.Optional("aunts", codec.Array(codec.ToBytesFromBase64), func(p *MerkleProof) *[][]byte { return &p.Aunts }),
)

var txProofCodec = codec.New("TxProof",
	codec.Optional("rootHash", codec.ToBytesFromHex, func(p *TxProof) *[]byte { return &p.RootHash }),
	codec.Optional("data", codec.ToBytesFromBase64, func(p *TxProof) *[]byte { return &p.Data }),
	codec.Optional("proof", codec.Nested(merkleProofCodec), func(p *TxProof) *MerkleProof { return &p.Proof }),
)

// TxResponseCodec decodes tx responses with the given event codec
func TxResponseCodec(events codec.Codec[Event]) codec.Codec[TxResponse] {
	return codec.New("TxResponse",
		codec.Required("hash", codec.EnsureBytesFromHex, func(r *TxResponse) *[]byte { return &r.Hash }),
		codec.Required("height", codec.EnsureInt64, func(r *TxResponse) *int64 { return &r.Height }),
		codec.Optional("index", uint32Conv, func(r *TxResponse) *uint32 { return &r.Index }),
		codec.Optional("txResult", codec.Nested(TxResultCodec(events)), func(r *TxResponse) *TxResult { return &r.TxResult }),
		codec.Optional("tx", codec.ToBytesFromBase64, func(r *TxResponse) *[]byte { return &r.Tx }),
		codec.Optional("proof", codec.Ptr(codec.Nested(txProofCodec)), func(r *TxResponse) **TxProof { return &r.Proof }),
	)
}

// TxSearchCodec decodes tx_search responses with the given event codec
func TxSearchCodec(events codec.Codec[Event]) codec.Codec[TxSearch] {
	return codec.New("TxSearch",
		codec.Optional("txs", codec.Array(codec.Nested(TxResponseCodec(events))), func(s *TxSearch) *[]TxResponse { return &s.Txs }),
		codec.Optional("totalCount", codec.ToInt, func(s *TxSearch) *int { return &s.TotalCount }),
	)
}

// BroadcastTxCodec decodes the full broadcast_tx_sync response
func BroadcastTxCodec(events codec.Codec[Event]) codec.Codec[BroadcastTxResult] {
	return codec.New("BroadcastTxResult",
		codec.Optional("code", uint32Conv, func(r *BroadcastTxResult) *uint32 { return &r.Code }),
		codec.Optional("data", codec.ToBytesFromBase64, func(r *BroadcastTxResult) *[]byte { return &r.Data }),
		codec.Optional("log", codec.ToString, func(r *BroadcastTxResult) *string { return &r.Log }),
		codec.Optional("info", codec.ToString, func(r *BroadcastTxResult) *string { return &r.Info }),
		codec.Optional("gasWanted", codec.ToBigInt, func(r *BroadcastTxResult) *sdkmath.Int { return &r.GasWanted }),
		codec.Optional("gasUsed", codec.ToBigInt, func(r *BroadcastTxResult) *sdkmath.Int { return &r.GasUsed }),
		codec.Optional("events", codec.Array(codec.Nested(events)), func(r *BroadcastTxResult) *[]Event { return &r.Events }),
		codec.Optional("codespace", codec.ToString, func(r *BroadcastTxResult) *string { return &r.Codespace }),
		codec.Required("hash", codec.EnsureBytesFromHex, func(r *BroadcastTxResult) *[]byte { return &r.Hash }),
	)
}

// BroadcastTxAsyncCodec decodes broadcast_tx_async responses of engines that only report the mempool admission
var BroadcastTxAsyncCodec = codec.New("BroadcastTxAsyncResult",
	codec.Optional("code", uint32Conv, func(r *BroadcastTxResult) *uint32 { return &r.Code }),
	codec.Optional("data", codec.ToBytesFromBase64, func(r *BroadcastTxResult) *[]byte { return &r.Data }),
	codec.Optional("log", codec.ToString, func(r *BroadcastTxResult) *string { return &r.Log }),
	codec.Optional("codespace", codec.ToString, func(r *BroadcastTxResult) *string { return &r.Codespace }),
	codec.Required("hash", codec.EnsureBytesFromHex, func(r *BroadcastTxResult) *[]byte { return &r.Hash }),
)

// BroadcastTxCommitCodec decodes broadcast_tx_commit responses with the given event codec
func BroadcastTxCommitCodec(events codec.Codec[Event]) codec.Codec[BroadcastTxCommit] {
	result := codec.Ptr(codec.Nested(TxResultCodec(events)))

	return codec.New("BroadcastTxCommit",
		codec.Optional("checkTx", codec.Nested(TxResultCodec(events)), func(r *BroadcastTxCommit) *TxResult { return &r.CheckTx }),
		codec.Optional("deliverTx", result, func(r *BroadcastTxCommit) **TxResult { return &r.DeliverTx }),
		codec.Optional("txResult", result, func(r *BroadcastTxCommit) **TxResult { return &r.TxResult }),
		codec.Required("hash", codec.EnsureBytesFromHex, func(r *BroadcastTxCommit) *[]byte { return &r.Hash }),
		codec.Optional("height", codec.ToInt64, func(r *BroadcastTxCommit) *int64 { return &r.Height }),
	)
}

// UnconfirmedTxsCodec decodes unconfirmed_txs and num_unconfirmed_txs responses
var UnconfirmedTxsCodec = codec.New("UnconfirmedTxs",
	codec.Optional("count", codec.ToInt, func(u *UnconfirmedTxs) *int { return &u.Count }).From("n_txs"),
	codec.Optional("total", codec.ToInt, func(u *UnconfirmedTxs) *int { return &u.Total }),
	codec.Optional("totalBytes", codec.ToInt64, func(u *UnconfirmedTxs) *int64 { return &u.TotalBytes }),
	codec.Optional("txs", codec.Array(codec.ToBytesFromBase64), func(u *UnconfirmedTxs) *[][]byte { return &u.Txs }),
)
