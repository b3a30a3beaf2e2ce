package types

import (
	"time"

	"github.com/axelarnetwork/tm-rpc/codec"
)

// BlockIDFlag indicates whether a validator signed the block
type BlockIDFlag int32

// block id flags as defined by the consensus engine
const (
	BlockIDFlagUnknown BlockIDFlag = iota
	BlockIDFlagAbsent
	BlockIDFlagCommit
	BlockIDFlagNil
)

// Version is the block and app protocol version of a header
type Version struct {
	Block uint64
	App   uint64
}

// BlockHeader is the header of a block
type BlockHeader struct {
	Version            Version
	ChainID            string
	Height             int64
	Time               time.Time
	LastBlockID        BlockID
	LastCommitHash     []byte
	DataHash           []byte
	ValidatorsHash     []byte
	NextValidatorsHash []byte
	ConsensusHash      []byte
	AppHash            []byte
	LastResultsHash    []byte
	EvidenceHash       []byte
	ProposerAddress    []byte
}

// CommitSig is the signature of one validator on a block
type CommitSig struct {
	BlockIDFlag      BlockIDFlag
	ValidatorAddress []byte
	Timestamp        time.Time
	Signature        []byte
}

// Commit is the set of signatures that committed a block
type Commit struct {
	Height     int64
	Round      int32
	BlockID    BlockID
	Signatures []CommitSig
}

// Block is a full block with transactions and the commit of its predecessor
type Block struct {
	Header     BlockHeader
	Txs        [][]byte
	Evidence   []any
	LastCommit *Commit
}

// BlockResponse is the response of the block and block_by_hash methods
type BlockResponse struct {
	BlockID BlockID
	Block   Block
}

// BlockSearch is the response of the block_search method
type BlockSearch struct {
	Blocks     []BlockResponse
	TotalCount int
}

// BlockMeta summarizes a block for the blockchain method
type BlockMeta struct {
	BlockID   BlockID
	BlockSize int
	Header    BlockHeader
	NumTxs    int
}

// Blockchain is the response of the blockchain method
type Blockchain struct {
	LastHeight int64
	BlockMetas []BlockMeta
}

// HeaderResponse is the response of the header and header_by_hash methods
type HeaderResponse struct {
	Header BlockHeader
}

// SignedHeader is a header together with the commit that signed it
type SignedHeader struct {
	Header BlockHeader
	Commit Commit
}

// CommitResponse is the response of the commit method
type CommitResponse struct {
	SignedHeader SignedHeader
	Canonical    bool
}

var blockIDFlag = codec.Enum(map[string]BlockIDFlag{
	"1":                    BlockIDFlagAbsent,
	"2":                    BlockIDFlagCommit,
	"3":                    BlockIDFlagNil,
	"BLOCK_ID_FLAG_ABSENT": BlockIDFlagAbsent,
	"BLOCK_ID_FLAG_COMMIT": BlockIDFlagCommit,
	"BLOCK_ID_FLAG_NIL":    BlockIDFlagNil,
})

var versionCodec = codec.New("Version",
	codec.Optional("block", uint64Conv, func(v *Version) *uint64 { return &v.Block }),
	codec.Optional("app", uint64Conv, func(v *Version) *uint64 { return &v.App }),
)

// BlockHeaderCodec decodes block headers
var BlockHeaderCodec = codec.New("BlockHeader",
	codec.Optional("version", codec.Nested(versionCodec), func(h *BlockHeader) *Version { return &h.Version }),
	codec.Required("chainID", codec.EnsureString, func(h *BlockHeader) *string { return &h.ChainID }).From("chain_id"),
	codec.Required("height", codec.EnsureInt64, func(h *BlockHeader) *int64 { return &h.Height }),
	codec.Required("time", codec.Time, func(h *BlockHeader) *time.Time { return &h.Time }),
	codec.Optional("lastBlockID", codec.Nested(BlockIDCodec), func(h *BlockHeader) *BlockID { return &h.LastBlockID }).From("last_block_id"),
	codec.Optional("lastCommitHash", codec.ToBytesFromHex, func(h *BlockHeader) *[]byte { return &h.LastCommitHash }),
	codec.Optional("dataHash", codec.ToBytesFromHex, func(h *BlockHeader) *[]byte { return &h.DataHash }),
	codec.Optional("validatorsHash", codec.ToBytesFromHex, func(h *BlockHeader) *[]byte { return &h.ValidatorsHash }),
	codec.Optional("nextValidatorsHash", codec.ToBytesFromHex, func(h *BlockHeader) *[]byte { return &h.NextValidatorsHash }),
	codec.Optional("consensusHash", codec.ToBytesFromHex, func(h *BlockHeader) *[]byte { return &h.ConsensusHash }),
	codec.Optional("appHash", codec.ToBytesFromHex, func(h *BlockHeader) *[]byte { return &h.AppHash }),
	codec.Optional("lastResultsHash", codec.ToBytesFromHex, func(h *BlockHeader) *[]byte { return &h.LastResultsHash }),
	codec.Optional("evidenceHash", codec.ToBytesFromHex, func(h *BlockHeader) *[]byte { return &h.EvidenceHash }),
	codec.Optional("proposerAddress", codec.ToBytesFromHex, func(h *BlockHeader) *[]byte { return &h.ProposerAddress }),
)

var commitSigCodec = codec.New("CommitSig",
	codec.Optional("blockIDFlag", blockIDFlag, func(c *CommitSig) *BlockIDFlag { return &c.BlockIDFlag }).From("block_id_flag"),
	codec.Optional("validatorAddress", codec.ToBytesFromHex, func(c *CommitSig) *[]byte { return &c.ValidatorAddress }),
	codec.Optional("timestamp", codec.MaybeTime, func(c *CommitSig) *time.Time { return &c.Timestamp }),
	codec.Optional("signature", codec.EnsureBytesFromBase64, func(c *CommitSig) *[]byte { return &c.Signature }),
)

// CommitCodec decodes block commits
var CommitCodec = codec.New("Commit",
	codec.Required("height", codec.EnsureInt64, func(c *Commit) *int64 { return &c.Height }),
	codec.Optional("round", int32Conv, func(c *Commit) *int32 { return &c.Round }),
	codec.Optional("blockID", codec.Nested(BlockIDCodec), func(c *Commit) *BlockID { return &c.BlockID }).From("block_id"),
	codec.Optional("signatures", codec.Array(codec.Nested(commitSigCodec)), func(c *Commit) *[]CommitSig { return &c.Signatures }),
)

type blockData struct{ Txs [][]byte }

type evidenceList struct{ Evidence []any }

var blockDataCodec = codec.New("BlockData",
	codec.Optional("txs", codec.Array(codec.EnsureBytesFromBase64), func(d *blockData) *[][]byte { return &d.Txs }),
)

var evidenceCodec = codec.New("EvidenceList",
	codec.Optional("evidence", codec.Array(codec.Any), func(e *evidenceList) *[]any { return &e.Evidence }),
)

// BlockCodec decodes full blocks
var BlockCodec = codec.New("Block",
	codec.Required("header", codec.Nested(BlockHeaderCodec), func(b *Block) *BlockHeader { return &b.Header }),
	codec.Optional("txs", blockTxs, func(b *Block) *[][]byte { return &b.Txs }).From("data"),
	codec.Optional("evidence", blockEvidence, func(b *Block) *[]any { return &b.Evidence }),
	codec.Optional("lastCommit", codec.Ptr(codec.Nested(CommitCodec)), func(b *Block) **Commit { return &b.LastCommit }),
)

func blockTxs(raw any) ([][]byte, error) {
	data, err := blockDataCodec.Create(raw)
	return data.Txs, err
}

func blockEvidence(raw any) ([]any, error) {
	list, err := evidenceCodec.Create(raw)
	return list.Evidence, err
}

// BlockResponseCodec decodes responses of block and block_by_hash
var BlockResponseCodec = codec.New("BlockResponse",
	codec.Required("blockID", codec.Nested(BlockIDCodec), func(b *BlockResponse) *BlockID { return &b.BlockID }).From("block_id"),
	codec.Required("block", codec.Nested(BlockCodec), func(b *BlockResponse) *Block { return &b.Block }),
)

// BlockSearchCodec decodes block_search responses
var BlockSearchCodec = codec.New("BlockSearch",
	codec.Optional("blocks", codec.Array(codec.Nested(BlockResponseCodec)), func(b *BlockSearch) *[]BlockResponse { return &b.Blocks }),
	codec.Optional("totalCount", codec.ToInt, func(b *BlockSearch) *int { return &b.TotalCount }),
)

var blockMetaCodec = codec.New("BlockMeta",
	codec.Optional("blockID", codec.Nested(BlockIDCodec), func(m *BlockMeta) *BlockID { return &m.BlockID }).From("block_id"),
	codec.Optional("blockSize", codec.ToInt, func(m *BlockMeta) *int { return &m.BlockSize }),
	codec.Required("header", codec.Nested(BlockHeaderCodec), func(m *BlockMeta) *BlockHeader { return &m.Header }),
	codec.Optional("numTxs", codec.ToInt, func(m *BlockMeta) *int { return &m.NumTxs }),
)

// BlockchainCodec decodes blockchain responses
var BlockchainCodec = codec.New("Blockchain",
	codec.Required("lastHeight", codec.EnsureInt64, func(b *Blockchain) *int64 { return &b.LastHeight }),
	codec.Optional("blockMetas", codec.Array(codec.Nested(blockMetaCodec)), func(b *Blockchain) *[]BlockMeta { return &b.BlockMetas }),
)

// HeaderResponseCodec decodes header and header_by_hash responses
var HeaderResponseCodec = codec.New("HeaderResponse",
	codec.Required("header", codec.Nested(BlockHeaderCodec), func(h *HeaderResponse) *BlockHeader { return &h.Header }),
)

var signedHeaderCodec = codec.New("SignedHeader",
	codec.Required("header", codec.Nested(BlockHeaderCodec), func(s *SignedHeader) *BlockHeader { return &s.Header }),
	codec.Required("commit", codec.Nested(CommitCodec), func(s *SignedHeader) *Commit { return &s.Commit }),
)

// CommitResponseCodec decodes commit responses
var CommitResponseCodec = codec.New("CommitResponse",
	codec.Required("signedHeader", codec.Nested(signedHeaderCodec), func(c *CommitResponse) *SignedHeader { return &c.SignedHeader }),
	codec.Optional("canonical", codec.ToBool, func(c *CommitResponse) *bool { return &c.Canonical }),
)
