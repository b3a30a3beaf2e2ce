package types

import (
	sdkmath "cosmossdk.io/math"

	"github.com/axelarnetwork/tm-rpc/codec"
)

// PartSetHeader identifies the parts a block was gossiped in
type PartSetHeader struct {
	Total uint32
	Hash  []byte
}

// BlockID identifies a block by its hash and part set header
type BlockID struct {
	Hash          []byte
	PartSetHeader PartSetHeader
}

// PubKey is a typed public key, e.g. tendermint/PubKeyEd25519
type PubKey struct {
	Type  string
	Value []byte
}

// Validator is an entry of a validator set
type Validator struct {
	Address          []byte
	PubKey           PubKey
	VotingPower      sdkmath.Int
	ProposerPriority sdkmath.Int
}

// ValidatorUpdate changes the voting power of a validator
type ValidatorUpdate struct {
	PubKey PubKey
	Power  sdkmath.Int
}

var partSetHeaderCodec = codec.New("PartSetHeader",
	codec.Optional("total", uint32Conv, func(p *PartSetHeader) *uint32 { return &p.Total }),
	codec.Optional("hash", codec.ToBytesFromHex, func(p *PartSetHeader) *[]byte { return &p.Hash }),
)

// BlockIDCodec decodes block identifiers
var BlockIDCodec = codec.New("BlockID",
	codec.Optional("hash", codec.ToBytesFromHex, func(b *BlockID) *[]byte { return &b.Hash }),
	codec.Optional("partSetHeader", codec.Nested(partSetHeaderCodec), func(b *BlockID) *PartSetHeader { return &b.PartSetHeader }).From("parts"),
)

// PubKeyCodec decodes amino JSON public keys ({"type": ..., "value": <base64>})
var PubKeyCodec = codec.New("PubKey",
	codec.Optional("type", codec.ToString, func(p *PubKey) *string { return &p.Type }),
	codec.Optional("value", codec.ToBytesFromBase64, func(p *PubKey) *[]byte { return &p.Value }),
)

// ValidatorCodec decodes validator set entries
var ValidatorCodec = codec.New("Validator",
	codec.Required("address", codec.EnsureBytesFromHex, func(v *Validator) *[]byte { return &v.Address }),
	codec.Optional("pubKey", codec.Nested(PubKeyCodec), func(v *Validator) *PubKey { return &v.PubKey }),
	codec.Optional("votingPower", codec.ToBigInt, func(v *Validator) *sdkmath.Int { return &v.VotingPower }),
	codec.Optional("proposerPriority", codec.ToBigInt, func(v *Validator) *sdkmath.Int { return &v.ProposerPriority }),
)

// ValidatorUpdateCodec decodes validator updates of block results and events
var ValidatorUpdateCodec = codec.New("ValidatorUpdate",
	codec.Optional("pubKey", validatorUpdateKey, func(v *ValidatorUpdate) *PubKey { return &v.PubKey }),
	codec.Optional("power", codec.ToBigInt, func(v *ValidatorUpdate) *sdkmath.Int { return &v.Power }),
)

// validatorUpdateKey accepts both the amino shape and the protobuf oneof shape ({"Sum": {"ed25519": ...}})
func validatorUpdateKey(raw any) (PubKey, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return PubKey{}, nil
	}

	sum, ok := obj["Sum"].(map[string]any)
	if !ok {
		return PubKeyCodec.Create(obj)
	}

	if value, ok := sum["value"].(map[string]any); ok {
		sum = value
	}
	for keyType, value := range sum {
		bz, _ := codec.ToBytesFromBase64(value)
		return PubKey{Type: keyType, Value: bz}, nil
	}
	return PubKey{}, nil
}

func uint32Conv(raw any) (uint32, error) {
	i, _ := codec.ToInt64(raw)
	if i < 0 || i > 1<<32-1 {
		return 0, nil
	}
	return uint32(i), nil
}

func int32Conv(raw any) (int32, error) {
	i, _ := codec.ToInt64(raw)
	if i < -1<<31 || i > 1<<31-1 {
		return 0, nil
	}
	return int32(i), nil
}
