package query

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/gogo/protobuf/proto"

	"github.com/axelarnetwork/tm-rpc/codec"
)

//go:generate moq -out ./mock/message.go -pkg mock . MessageCodec

// MessageCodec turns an application message, e.g. a signed transaction, into the bytes that are broadcast
type MessageCodec interface {
	Encode(msg any) ([]byte, error)
}

// ProtoMessageCodec encodes protobuf messages
type ProtoMessageCodec struct{}

// Encode marshals msg, which must be a proto.Message
func (ProtoMessageCodec) Encode(msg any) ([]byte, error) {
	m, ok := msg.(proto.Message)
	if !ok {
		return nil, &codec.EncodingError{Field: "tx", Value: msg, Reason: fmt.Sprintf("expected a proto message, got %T", msg)}
	}

	bz, err := proto.Marshal(m)
	if err != nil {
		return nil, errorsmod.Wrapf(codec.ErrEncoding, "failed to marshal %s: %v", proto.MessageName(m), err)
	}
	return bz, nil
}
