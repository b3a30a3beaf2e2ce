package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/tm-rpc/codec"
)

type version struct {
	Block int64
	App   int64
}

type header struct {
	ChainID string
	Height  int64
	Version version
	AppHash []byte
	Missing []byte
}

var versionCodec = codec.New("Version",
	codec.Optional("block", codec.ToInt64, func(v *version) *int64 { return &v.Block }),
	codec.Optional("app", codec.ToInt64, func(v *version) *int64 { return &v.App }),
)

var headerCodec = codec.New("Header",
	codec.Required("chainID", codec.EnsureString, func(h *header) *string { return &h.ChainID }).From("chain_id"),
	codec.Required("height", codec.EnsureInt64, func(h *header) *int64 { return &h.Height }),
	codec.Optional("version", codec.Nested(versionCodec), func(h *header) *version { return &h.Version }),
	codec.Optional("appHash", codec.ToBytesFromHex, func(h *header) *[]byte { return &h.AppHash }),
	codec.Optional("missing", codec.EnsureBytesFromHex, func(h *header) *[]byte { return &h.Missing }),
)

type params struct {
	Height *int64
	Hash   string
	Prove  bool
	Page   int
}

var paramsCodec = codec.New("Params",
	codec.Param("height", codec.Ptr(codec.EnsureInt64), codec.EncodeOptional(codec.EncodeInt64), func(p *params) **int64 { return &p.Height }),
	codec.RequiredParam("hash", codec.EnsureString, codec.EncodeString, func(p *params) *string { return &p.Hash }),
	codec.Param("prove", codec.ToBool, codec.EncodeBool, func(p *params) *bool { return &p.Prove }),
	codec.Param("page", codec.ToInt, codec.EncodeInt, func(p *params) *int { return &p.Page }),
)

func TestCodec_Create(t *testing.T) {
	t.Run("WHEN all fields are present THEN they are converted", func(t *testing.T) {
		h, err := headerCodec.Decode([]byte(`{"chain_id":"axelar","height":"42","version":{"block":"11","app":"1"},"app_hash":"ABCD"}`))

		assert.NoError(t, err)
		assert.Equal(t, header{ChainID: "axelar", Height: 42, Version: version{Block: 11, App: 1}, AppHash: []byte{0xab, 0xcd}}, h)
	})

	t.Run("WHEN optional fields are absent THEN the converter default or the zero value is used", func(t *testing.T) {
		h, err := headerCodec.Create(map[string]any{"chain_id": "axelar", "height": "1"})

		assert.NoError(t, err)
		assert.Equal(t, version{}, h.Version)
		assert.Equal(t, []byte{}, h.AppHash)
		assert.Nil(t, h.Missing)
	})

	t.Run("WHEN an optional field is absent and its converter rejects nil THEN the converter is not called on decode", func(t *testing.T) {
		var calls int
		strict := func(raw any) (string, error) {
			calls++
			return codec.EnsureString(raw)
		}
		c := codec.New("Strict", codec.Optional("moniker", strict, func(h *header) *string { return &h.ChainID }))
		declared := calls

		h, err := c.Create(map[string]any{})

		assert.NoError(t, err)
		assert.Empty(t, h.ChainID)
		assert.Equal(t, declared, calls)
	})

	t.Run("WHEN a required field is absent THEN an InvalidFieldError names it", func(t *testing.T) {
		_, err := headerCodec.Create(map[string]any{"chain_id": "axelar"})

		var fieldErr *codec.InvalidFieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "height", fieldErr.Field)
		assert.ErrorIs(t, err, codec.ErrInvalidField)
	})

	t.Run("WHEN a nested value is malformed THEN the error carries the full path", func(t *testing.T) {
		nested := codec.New("Outer",
			codec.Required("header", codec.Nested(headerCodec), func(h *header) *header { return h }),
		)

		_, err := nested.Decode([]byte(`{"header":{"chain_id":"axelar","height":"abc"}}`))

		var fieldErr *codec.InvalidFieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "header.height", fieldErr.Field)
		assert.Equal(t, "abc", fieldErr.Raw)
	})

	t.Run("WHEN the value is not an object THEN decoding fails", func(t *testing.T) {
		_, err := headerCodec.Create([]any{1, 2})
		assert.ErrorIs(t, err, codec.ErrInvalidField)
	})

	t.Run("WHEN the JSON is malformed THEN decoding fails", func(t *testing.T) {
		_, err := headerCodec.Decode([]byte(`{"chain_id":`))
		assert.ErrorIs(t, err, codec.ErrInvalidField)
	})
}

func TestCodec_Encode(t *testing.T) {
	t.Run("WHEN parameters are encoded and decoded again THEN the value is unchanged", func(t *testing.T) {
		height := int64(1024)
		expected := params{Height: &height, Hash: "AQIDBAU=", Prove: true, Page: 3}

		wire, err := paramsCodec.Encode(expected)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"height": "1024", "hash": "AQIDBAU=", "prove": true, "page": "3"}, wire)

		actual, err := paramsCodec.Create(wire)
		assert.NoError(t, err)
		assert.Equal(t, expected, actual)
	})

	t.Run("WHEN an optional parameter is nil THEN it is omitted", func(t *testing.T) {
		wire, err := paramsCodec.Encode(params{Hash: "abc"})

		assert.NoError(t, err)
		assert.NotContains(t, wire, "height")
	})

	t.Run("WHEN a required parameter is empty THEN an EncodingError is returned", func(t *testing.T) {
		_, err := paramsCodec.Encode(params{})

		var encErr *codec.EncodingError
		require.True(t, errors.As(err, &encErr))
		assert.Equal(t, "hash", encErr.Field)
		assert.ErrorIs(t, err, codec.ErrEncoding)
	})

	t.Run("WHEN the codec has no encoders THEN nothing is emitted", func(t *testing.T) {
		wire, err := headerCodec.Encode(header{ChainID: "axelar"})
		assert.NoError(t, err)
		assert.Empty(t, wire)
	})
}
