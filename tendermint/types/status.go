package types

import (
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/axelarnetwork/tm-rpc/codec"
)

// ProtocolVersions lists the protocol versions a node speaks
type ProtocolVersions struct {
	P2P   uint64
	Block uint64
	App   uint64
}

// NodeInfoOther holds auxiliary node settings
type NodeInfoOther struct {
	TxIndex    string
	RPCAddress string
}

// NodeInfo describes a node of the p2p network
type NodeInfo struct {
	ProtocolVersion ProtocolVersions
	ID              string
	ListenAddr      string
	Network         string
	Version         string
	Channels        []byte
	Moniker         string
	Other           NodeInfoOther
}

// SyncInfo describes how far a node has synced the chain
type SyncInfo struct {
	LatestBlockHash     []byte
	LatestAppHash       []byte
	LatestBlockHeight   int64
	LatestBlockTime     time.Time
	EarliestBlockHash   []byte
	EarliestAppHash     []byte
	EarliestBlockHeight int64
	EarliestBlockTime   time.Time
	CatchingUp          bool
}

// ValidatorInfo describes the validator key of a node
type ValidatorInfo struct {
	Address     []byte
	PubKey      PubKey
	VotingPower sdkmath.Int
}

// Status is the response of the status method
type Status struct {
	NodeInfo      NodeInfo
	SyncInfo      SyncInfo
	ValidatorInfo ValidatorInfo
}

// AbciInfo is the response of the abci_info method
type AbciInfo struct {
	Data             string
	Version          string
	AppVersion       uint64
	LastBlockHeight  int64
	LastBlockAppHash []byte
}

// Health is the (empty) response of the health method
type Health struct{}

var protocolVersionsCodec = codec.New("ProtocolVersions",
	codec.Optional("p2p", uint64Conv, func(p *ProtocolVersions) *uint64 { return &p.P2P }),
	codec.Optional("block", uint64Conv, func(p *ProtocolVersions) *uint64 { return &p.Block }),
	codec.Optional("app", uint64Conv, func(p *ProtocolVersions) *uint64 { return &p.App }),
)

var nodeInfoOtherCodec = codec.New("NodeInfoOther",
	codec.Optional("txIndex", codec.ToString, func(o *NodeInfoOther) *string { return &o.TxIndex }),
	codec.Optional("rpcAddress", codec.ToString, func(o *NodeInfoOther) *string { return &o.RPCAddress }),
)

// NodeInfoCodec decodes p2p node information
var NodeInfoCodec = codec.New("NodeInfo",
	codec.Optional("protocolVersion", codec.Nested(protocolVersionsCodec), func(n *NodeInfo) *ProtocolVersions { return &n.ProtocolVersion }),
	codec.Required("id", codec.EnsureString, func(n *NodeInfo) *string { return &n.ID }),
	codec.Optional("listenAddr", codec.ToString, func(n *NodeInfo) *string { return &n.ListenAddr }),
	codec.Required("network", codec.EnsureString, func(n *NodeInfo) *string { return &n.Network }),
	codec.Required("version", codec.EnsureString, func(n *NodeInfo) *string { return &n.Version }),
	codec.Optional("channels", codec.ToBytesFromHex, func(n *NodeInfo) *[]byte { return &n.Channels }),
	codec.Optional("moniker", codec.ToString, func(n *NodeInfo) *string { return &n.Moniker }),
	codec.Optional("other", codec.Nested(nodeInfoOtherCodec), func(n *NodeInfo) *NodeInfoOther { return &n.Other }),
)

var syncInfoCodec = codec.New("SyncInfo",
	codec.Optional("latestBlockHash", codec.ToBytesFromHex, func(s *SyncInfo) *[]byte { return &s.LatestBlockHash }),
	codec.Optional("latestAppHash", codec.ToBytesFromHex, func(s *SyncInfo) *[]byte { return &s.LatestAppHash }),
	codec.Required("latestBlockHeight", codec.EnsureInt64, func(s *SyncInfo) *int64 { return &s.LatestBlockHeight }),
	codec.Required("latestBlockTime", codec.Time, func(s *SyncInfo) *time.Time { return &s.LatestBlockTime }),
	codec.Optional("earliestBlockHash", codec.ToBytesFromHex, func(s *SyncInfo) *[]byte { return &s.EarliestBlockHash }),
	codec.Optional("earliestAppHash", codec.ToBytesFromHex, func(s *SyncInfo) *[]byte { return &s.EarliestAppHash }),
	codec.Optional("earliestBlockHeight", codec.ToInt64, func(s *SyncInfo) *int64 { return &s.EarliestBlockHeight }),
	codec.Optional("earliestBlockTime", codec.MaybeTime, func(s *SyncInfo) *time.Time { return &s.EarliestBlockTime }),
	codec.Optional("catchingUp", codec.ToBool, func(s *SyncInfo) *bool { return &s.CatchingUp }),
)

var validatorInfoCodec = codec.New("ValidatorInfo",
	codec.Optional("address", codec.ToBytesFromHex, func(v *ValidatorInfo) *[]byte { return &v.Address }),
	codec.Optional("pubKey", codec.Nested(PubKeyCodec), func(v *ValidatorInfo) *PubKey { return &v.PubKey }),
	codec.Optional("votingPower", codec.ToBigInt, func(v *ValidatorInfo) *sdkmath.Int { return &v.VotingPower }),
)

// StatusCodec decodes status responses
var StatusCodec = codec.New("Status",
	codec.Required("nodeInfo", codec.Nested(NodeInfoCodec), func(s *Status) *NodeInfo { return &s.NodeInfo }),
	codec.Required("syncInfo", codec.Nested(syncInfoCodec), func(s *Status) *SyncInfo { return &s.SyncInfo }),
	codec.Optional("validatorInfo", codec.Nested(validatorInfoCodec), func(s *Status) *ValidatorInfo { return &s.ValidatorInfo }),
)

// AbciInfoCodec decodes the application info wrapped in the response field of abci_info
var AbciInfoCodec = codec.New("AbciInfo",
	codec.Optional("data", codec.ToString, func(a *AbciInfo) *string { return &a.Data }),
	codec.Optional("version", codec.ToString, func(a *AbciInfo) *string { return &a.Version }),
	codec.Optional("appVersion", uint64Conv, func(a *AbciInfo) *uint64 { return &a.AppVersion }),
	codec.Optional("lastBlockHeight", codec.ToInt64, func(a *AbciInfo) *int64 { return &a.LastBlockHeight }),
	codec.Optional("lastBlockAppHash", codec.ToBytesFromBase64, func(a *AbciInfo) *[]byte { return &a.LastBlockAppHash }),
)

// HealthCodec decodes the empty health response
var HealthCodec = codec.New[Health]("Health")

func uint64Conv(raw any) (uint64, error) {
	i, err := codec.ToBigInt(raw)
	if err != nil || i.IsNegative() || !i.IsUint64() {
		return 0, nil
	}
	return i.Uint64(), nil
}
