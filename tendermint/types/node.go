package types

import (
	"encoding/json"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/axelarnetwork/tm-rpc/codec"
)

// Validators is the response of the validators method.
// Count and Total are nil if the node did not report pagination.
type Validators struct {
	BlockHeight int64
	Validators  []Validator
	Count       *int
	Total       *int
}

// ConsensusParamsResponse is the response of the consensus_params method
type ConsensusParamsResponse struct {
	BlockHeight     int64
	ConsensusParams ConsensusParams
}

// RoundState is the summary of the consensus state machine returned by consensus_state
type RoundState struct {
	HeightRoundStep   string
	StartTime         time.Time
	ProposalBlockHash []byte
	LockedBlockHash   []byte
	ValidBlockHash    []byte
	HeightVoteSet     json.RawMessage
}

// ConsensusState is the response of the consensus_state method
type ConsensusState struct {
	RoundState RoundState
}

// PeerState is the consensus state of one peer
type PeerState struct {
	NodeAddress string
	PeerState   json.RawMessage
}

// DumpConsensusState is the response of the dump_consensus_state method
type DumpConsensusState struct {
	RoundState json.RawMessage
	Peers      []PeerState
}

// Peer is a connected peer of the node
type Peer struct {
	NodeInfo         NodeInfo
	IsOutbound       bool
	ConnectionStatus json.RawMessage
	RemoteIP         string
}

// NetInfo is the response of the net_info method
type NetInfo struct {
	Listening bool
	Listeners []string
	NPeers    int
	Peers     []Peer
}

// GenesisValidator is a validator of the genesis file
type GenesisValidator struct {
	Address []byte
	PubKey  PubKey
	Power   sdkmath.Int
	Name    string
}

// GenesisDoc is the genesis file of a chain
type GenesisDoc struct {
	GenesisTime     time.Time
	ChainID         string
	InitialHeight   int64
	ConsensusParams *ConsensusParams
	Validators      []GenesisValidator
	AppHash         []byte
	AppState        json.RawMessage
}

// Genesis is the response of the genesis method
type Genesis struct {
	Genesis GenesisDoc
}

// GenesisChunk is the response of the genesis_chunked method
type GenesisChunk struct {
	Chunk int
	Total int
	Data  []byte
}

// ProofOp is a single operation of a merkle proof
type ProofOp struct {
	Type string
	Key  []byte
	Data []byte
}

// AbciQuery is the response of the abci_query method
type AbciQuery struct {
	Code      uint32
	Log       string
	Info      string
	Index     int64
	Key       []byte
	Value     []byte
	ProofOps  []ProofOp
	Height    int64
	Codespace string
}

// ValidatorsCodec decodes validators responses
var ValidatorsCodec = codec.New("Validators",
	codec.Required("blockHeight", codec.EnsureInt64, func(v *Validators) *int64 { return &v.BlockHeight }),
	codec.Optional("validators", codec.Array(codec.Nested(ValidatorCodec)), func(v *Validators) *[]Validator { return &v.Validators }),
	codec.Optional("count", maybeInt, func(v *Validators) **int { return &v.Count }),
	codec.Optional("total", maybeInt, func(v *Validators) **int { return &v.Total }),
)

// ConsensusParamsResponseCodec decodes consensus_params responses
var ConsensusParamsResponseCodec = codec.New("ConsensusParamsResponse",
	codec.Required("blockHeight", codec.EnsureInt64, func(c *ConsensusParamsResponse) *int64 { return &c.BlockHeight }),
	codec.Required("consensusParams", codec.Nested(ConsensusParamsCodec), func(c *ConsensusParamsResponse) *ConsensusParams { return &c.ConsensusParams }),
)

var roundStateCodec = codec.New("RoundState",
	codec.Optional("heightRoundStep", codec.ToString, func(r *RoundState) *string { return &r.HeightRoundStep }).From("height/round/step"),
	codec.Optional("startTime", codec.MaybeTime, func(r *RoundState) *time.Time { return &r.StartTime }),
	codec.Optional("proposalBlockHash", codec.ToBytesFromHex, func(r *RoundState) *[]byte { return &r.ProposalBlockHash }),
	codec.Optional("lockedBlockHash", codec.ToBytesFromHex, func(r *RoundState) *[]byte { return &r.LockedBlockHash }),
	codec.Optional("validBlockHash", codec.ToBytesFromHex, func(r *RoundState) *[]byte { return &r.ValidBlockHash }),
	codec.Optional("heightVoteSet", codec.RawJSON, func(r *RoundState) *json.RawMessage { return &r.HeightVoteSet }).From("height_vote_set"),
)

// ConsensusStateCodec decodes consensus_state responses
var ConsensusStateCodec = codec.New("ConsensusState",
	codec.Required("roundState", codec.Nested(roundStateCodec), func(c *ConsensusState) *RoundState { return &c.RoundState }),
)

var peerStateCodec = codec.New("PeerState",
	codec.Optional("nodeAddress", codec.ToString, func(p *PeerState) *string { return &p.NodeAddress }),
	codec.Optional("peerState", codec.RawJSON, func(p *PeerState) *json.RawMessage { return &p.PeerState }),
)

// DumpConsensusStateCodec decodes dump_consensus_state responses
var DumpConsensusStateCodec = codec.New("DumpConsensusState",
	codec.Required("roundState", codec.RawJSON, func(d *DumpConsensusState) *json.RawMessage { return &d.RoundState }),
	codec.Optional("peers", codec.Array(codec.Nested(peerStateCodec)), func(d *DumpConsensusState) *[]PeerState { return &d.Peers }),
)

var peerCodec = codec.New("Peer",
	codec.Required("nodeInfo", codec.Nested(NodeInfoCodec), func(p *Peer) *NodeInfo { return &p.NodeInfo }),
	codec.Optional("isOutbound", codec.ToBool, func(p *Peer) *bool { return &p.IsOutbound }),
	codec.Optional("connectionStatus", codec.RawJSON, func(p *Peer) *json.RawMessage { return &p.ConnectionStatus }),
	codec.Optional("remoteIP", codec.ToString, func(p *Peer) *string { return &p.RemoteIP }).From("remote_ip"),
)

// NetInfoCodec decodes net_info responses
var NetInfoCodec = codec.New("NetInfo",
	codec.Optional("listening", codec.ToBool, func(n *NetInfo) *bool { return &n.Listening }),
	codec.Optional("listeners", codec.Array(codec.EnsureString), func(n *NetInfo) *[]string { return &n.Listeners }),
	codec.Optional("nPeers", codec.ToInt, func(n *NetInfo) *int { return &n.NPeers }).From("n_peers"),
	codec.Optional("peers", codec.Array(codec.Nested(peerCodec)), func(n *NetInfo) *[]Peer { return &n.Peers }),
)

var genesisValidatorCodec = codec.New("GenesisValidator",
	codec.Optional("address", codec.ToBytesFromHex, func(v *GenesisValidator) *[]byte { return &v.Address }),
	codec.Optional("pubKey", codec.Nested(PubKeyCodec), func(v *GenesisValidator) *PubKey { return &v.PubKey }),
	codec.Optional("power", codec.ToBigInt, func(v *GenesisValidator) *sdkmath.Int { return &v.Power }),
	codec.Optional("name", codec.ToString, func(v *GenesisValidator) *string { return &v.Name }),
)

var genesisDocCodec = codec.New("GenesisDoc",
	codec.Required("genesisTime", codec.Time, func(g *GenesisDoc) *time.Time { return &g.GenesisTime }),
	codec.Required("chainID", codec.EnsureString, func(g *GenesisDoc) *string { return &g.ChainID }).From("chain_id"),
	codec.Optional("initialHeight", codec.ToInt64, func(g *GenesisDoc) *int64 { return &g.InitialHeight }),
	codec.Optional("consensusParams", codec.Ptr(codec.Nested(ConsensusParamsCodec)), func(g *GenesisDoc) **ConsensusParams { return &g.ConsensusParams }),
	codec.Optional("validators", codec.Array(codec.Nested(genesisValidatorCodec)), func(g *GenesisDoc) *[]GenesisValidator { return &g.Validators }),
	codec.Optional("appHash", codec.ToBytesFromHex, func(g *GenesisDoc) *[]byte { return &g.AppHash }),
	codec.Optional("appState", codec.RawJSON, func(g *GenesisDoc) *json.RawMessage { return &g.AppState }),
)

// GenesisCodec decodes genesis responses
var GenesisCodec = codec.New("Genesis",
	codec.Required("genesis", codec.Nested(genesisDocCodec), func(g *Genesis) *GenesisDoc { return &g.Genesis }),
)

// GenesisChunkCodec decodes genesis_chunked responses
var GenesisChunkCodec = codec.New("GenesisChunk",
	codec.Optional("chunk", codec.ToInt, func(g *GenesisChunk) *int { return &g.Chunk }),
	codec.Optional("total", codec.ToInt, func(g *GenesisChunk) *int { return &g.Total }),
	codec.Required("data", codec.EnsureBytesFromBase64, func(g *GenesisChunk) *[]byte { return &g.Data }),
)

var proofOpCodec = codec.New("ProofOp",
	codec.Optional("type", codec.ToString, func(p *ProofOp) *string { return &p.Type }),
	codec.Optional("key", codec.ToBytesFromBase64, func(p *ProofOp) *[]byte { return &p.Key }),
	codec.Optional("data", codec.ToBytesFromBase64, func(p *ProofOp) *[]byte { return &p.Data }),
)

type proofOps struct{ Ops []ProofOp }

var proofOpsCodec = codec.New("ProofOps",
	codec.Optional("ops", codec.Array(codec.Nested(proofOpCodec)), func(p *proofOps) *[]ProofOp { return &p.Ops }),
)

// AbciQueryCodec decodes the query result wrapped in the response field of abci_query
var AbciQueryCodec = codec.New("AbciQuery",
	codec.Optional("code", uint32Conv, func(q *AbciQuery) *uint32 { return &q.Code }),
	codec.Optional("log", codec.ToString, func(q *AbciQuery) *string { return &q.Log }),
	codec.Optional("info", codec.ToString, func(q *AbciQuery) *string { return &q.Info }),
	codec.Optional("index", codec.ToInt64, func(q *AbciQuery) *int64 { return &q.Index }),
	codec.Optional("key", codec.ToBytesFromBase64, func(q *AbciQuery) *[]byte { return &q.Key }),
	codec.Optional("value", codec.ToBytesFromBase64, func(q *AbciQuery) *[]byte { return &q.Value }),
	codec.Optional("proofOps", proofOpList, func(q *AbciQuery) *[]ProofOp { return &q.ProofOps }),
	codec.Optional("height", codec.ToInt64, func(q *AbciQuery) *int64 { return &q.Height }),
	codec.Optional("codespace", codec.ToString, func(q *AbciQuery) *string { return &q.Codespace }),
)

func proofOpList(raw any) ([]ProofOp, error) {
	ops, err := proofOpsCodec.Create(raw)
	return ops.Ops, err
}

func maybeInt(raw any) (*int, error) {
	i, err := codec.EnsureInt(raw)
	if err != nil {
		return nil, nil
	}
	return &i, nil
}
