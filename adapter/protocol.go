package adapter

import (
	"fmt"
	"strings"
)

// ProtocolVersion identifies a generation of the Tendermint/CometBFT RPC protocol
type ProtocolVersion string

// supported protocol versions
const (
	Tendermint34 ProtocolVersion = "tendermint-0.34"
	Tendermint37 ProtocolVersion = "tendermint-0.37"
	Comet38      ProtocolVersion = "comet-0.38"
	Comet100     ProtocolVersion = "comet-1.0"
)

// Versions lists all supported protocol versions from oldest to newest
var Versions = []ProtocolVersion{Tendermint34, Tendermint37, Comet38, Comet100}

func (v ProtocolVersion) String() string { return string(v) }

// ParseVersion parses the wire name of a protocol version
func ParseVersion(s string) (ProtocolVersion, error) {
	for _, v := range Versions {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown protocol version %q", s)
}

// VersionFromNodeVersion maps the software version a node reports in its status (e.g. "0.37.5") to a protocol version.
// Unrecognized versions fall back to Tendermint34, the most widely deployed protocol.
func VersionFromNodeVersion(nodeVersion string) ProtocolVersion {
	v := strings.TrimPrefix(strings.TrimSpace(nodeVersion), "v")
	switch {
	case strings.HasPrefix(v, "0.34."):
		return Tendermint34
	case strings.HasPrefix(v, "0.37."):
		return Tendermint37
	case strings.HasPrefix(v, "0.38."):
		return Comet38
	case strings.HasPrefix(v, "1."):
		return Comet100
	default:
		return Tendermint34
	}
}

// Method is the name of an RPC method
type Method string

// RPC methods
const (
	Status             Method = "status"
	AbciInfo           Method = "abci_info"
	Health             Method = "health"
	NetInfo            Method = "net_info"
	Block              Method = "block"
	BlockByHash        Method = "block_by_hash"
	BlockResults       Method = "block_results"
	BlockSearch        Method = "block_search"
	Blockchain         Method = "blockchain"
	Header             Method = "header"
	HeaderByHash       Method = "header_by_hash"
	Commit             Method = "commit"
	Tx                 Method = "tx"
	TxSearch           Method = "tx_search"
	CheckTx            Method = "check_tx"
	UnconfirmedTxs     Method = "unconfirmed_txs"
	NumUnconfirmedTxs  Method = "num_unconfirmed_txs"
	BroadcastTxSync    Method = "broadcast_tx_sync"
	BroadcastTxAsync   Method = "broadcast_tx_async"
	BroadcastTxCommit  Method = "broadcast_tx_commit"
	Validators         Method = "validators"
	ConsensusParams    Method = "consensus_params"
	ConsensusState     Method = "consensus_state"
	DumpConsensusState Method = "dump_consensus_state"
	Genesis            Method = "genesis"
	GenesisChunked     Method = "genesis_chunked"
	AbciQuery          Method = "abci_query"
	Subscribe          Method = "subscribe"
	Unsubscribe        Method = "unsubscribe"
	UnsubscribeAll     Method = "unsubscribe_all"
)

// Methods lists every RPC method known to the adapters
var Methods = []Method{
	Status, AbciInfo, Health, NetInfo,
	Block, BlockByHash, BlockResults, BlockSearch, Blockchain, Header, HeaderByHash, Commit,
	Tx, TxSearch, CheckTx, UnconfirmedTxs, NumUnconfirmedTxs,
	BroadcastTxSync, BroadcastTxAsync, BroadcastTxCommit,
	Validators, ConsensusParams, ConsensusState, DumpConsensusState,
	Genesis, GenesisChunked, AbciQuery,
	Subscribe, Unsubscribe, UnsubscribeAll,
}

func (m Method) String() string { return string(m) }

// Capabilities lets callers feature-detect what a protocol version offers
type Capabilities struct {
	Streaming        bool
	Subscriptions    bool
	BlockByHash      bool
	HeaderQueries    bool
	ConsensusQueries bool
}

// ProtocolInfo summarizes an adapter
type ProtocolInfo struct {
	Version          ProtocolVersion
	SupportedMethods []Method
	Capabilities     Capabilities
}

func capabilitiesOf(version ProtocolVersion) Capabilities {
	modern := version == Comet38 || version == Comet100
	return Capabilities{
		Streaming:        true,
		Subscriptions:    true,
		BlockByHash:      modern,
		HeaderQueries:    modern,
		ConsensusQueries: true,
	}
}

func methodsOf(caps Capabilities) []Method {
	methods := make([]Method, 0, len(Methods))
	for _, m := range Methods {
		switch {
		case m == BlockByHash && !caps.BlockByHash:
			continue
		case (m == Header || m == HeaderByHash) && !caps.HeaderQueries:
			continue
		}
		methods = append(methods, m)
	}
	return methods
}
