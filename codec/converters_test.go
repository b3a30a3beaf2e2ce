package codec_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/tm-rpc/codec"
	"github.com/axelarnetwork/utils/test/rand"
)

func TestEnsureInt64(t *testing.T) {
	t.Run("WHEN the value is a decimal string or a number THEN it converts exactly", func(t *testing.T) {
		expected := rand.PosI64()

		for _, raw := range []any{json.Number(sdkmath.NewInt(expected).String()), sdkmath.NewInt(expected).String(), expected, int(expected)} {
			actual, err := codec.EnsureInt64(raw)
			assert.NoError(t, err)
			assert.Equal(t, expected, actual)
		}
	})

	t.Run("WHEN the value is malformed THEN the strict converter fails and the lenient one falls back", func(t *testing.T) {
		for _, raw := range []any{"12a", nil, true, 1.5, map[string]any{}} {
			_, err := codec.EnsureInt64(raw)
			assert.ErrorIs(t, err, codec.ErrInvalidField)

			i, err := codec.ToInt64(raw)
			assert.NoError(t, err)
			assert.Zero(t, i)

			ptr, err := codec.MaybeInt64(raw)
			assert.NoError(t, err)
			assert.Nil(t, ptr)
		}
	})
}

func TestEnsureBigInt(t *testing.T) {
	t.Run("WHEN the value exceeds 64 bits THEN it is not truncated", func(t *testing.T) {
		raw := json.Number("123456789012345678901234567890")

		i, err := codec.EnsureBigInt(raw)
		assert.NoError(t, err)
		assert.Equal(t, "123456789012345678901234567890", i.String())
	})

	t.Run("WHEN the value is absent THEN the lenient converter returns zero", func(t *testing.T) {
		i, err := codec.ToBigInt(nil)
		assert.NoError(t, err)
		assert.True(t, i.IsZero())

		_, err = codec.EnsureBigInt("not a number")
		assert.ErrorIs(t, err, codec.ErrInvalidField)
	})
}

func TestBytes(t *testing.T) {
	t.Run("WHEN decoding hex THEN case and prefix do not matter", func(t *testing.T) {
		expected := []byte{0xab, 0xcd, 0xef, 0x12, 0x34, 0x56, 0x78, 0x90}

		for _, raw := range []any{"ABCDEF1234567890", "abcdef1234567890", "0xABCDEF1234567890"} {
			actual, err := codec.EnsureBytesFromHex(raw)
			assert.NoError(t, err)
			assert.Equal(t, expected, actual)
		}
	})

	t.Run("WHEN decoding base64 without padding THEN it decodes like the padded form", func(t *testing.T) {
		padded, err := codec.EnsureBytesFromBase64("AQIDBAU=")
		require.NoError(t, err)
		unpadded, err := codec.EnsureBytesFromBase64("AQIDBAU")
		require.NoError(t, err)

		assert.Equal(t, []byte{1, 2, 3, 4, 5}, padded)
		assert.Equal(t, padded, unpadded)
	})

	t.Run("WHEN the input cannot be parsed THEN lenient converters return empty bytes", func(t *testing.T) {
		bz, err := codec.ToBytesFromHex("xyz")
		assert.NoError(t, err)
		assert.Empty(t, bz)

		bz, err = codec.ToBytesFromBase64("!!!")
		assert.NoError(t, err)
		assert.Empty(t, bz)

		_, err = codec.EnsureBytesFromHex("xyz")
		assert.ErrorIs(t, err, codec.ErrInvalidField)
	})

	t.Run("WHEN bytes are encoded THEN hex is upper case and base64 is padded", func(t *testing.T) {
		wire, ok, err := codec.EncodeBase64([]byte{1, 2, 3, 4, 5})
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "AQIDBAU=", wire)

		wire, ok, err = codec.EncodeHex([]byte{0xab, 0xcd})
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "ABCD", wire)

		_, ok, _ = codec.EncodeHex(nil)
		assert.False(t, ok)
	})
}

func TestHexToBase64(t *testing.T) {
	s, err := codec.HexToBase64("0x0102030405")
	assert.NoError(t, err)
	assert.Equal(t, "AQIDBAU=", s)

	s, err = codec.HexToBase64("AQIDBAU=")
	assert.NoError(t, err)
	assert.Equal(t, "AQIDBAU=", s)

	_, err = codec.HexToBase64("0xzz")
	assert.ErrorIs(t, err, codec.ErrEncoding)
}

func TestEnsureHash(t *testing.T) {
	hash, err := codec.EnsureHash("0xABCD")
	assert.NoError(t, err)
	assert.Equal(t, "q80=", hash)

	hash, err = codec.EnsureHash("q80=")
	assert.NoError(t, err)
	assert.Equal(t, "q80=", hash)

	_, err = codec.EnsureHash("0xzz")
	assert.ErrorIs(t, err, codec.ErrInvalidField)

	_, err = codec.EnsureHash(nil)
	assert.ErrorIs(t, err, codec.ErrInvalidField)
}

func TestTime(t *testing.T) {
	t.Run("WHEN the timestamp has nanosecond precision THEN it is kept", func(t *testing.T) {
		actual, err := codec.Time("2023-10-01T12:00:00.123456789Z")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2023, 10, 1, 12, 0, 0, 123456789, time.UTC), actual.UTC())
	})

	t.Run("WHEN the timestamp is invalid THEN decoding fails", func(t *testing.T) {
		_, err := codec.Time("yesterday")

		var fieldErr *codec.InvalidFieldError
		assert.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "yesterday", fieldErr.Raw)

		zero, err := codec.MaybeTime("yesterday")
		assert.NoError(t, err)
		assert.True(t, zero.IsZero())
	})
}

func TestBool(t *testing.T) {
	for raw, expected := range map[any]bool{true: true, "true": true, "false": false, json.Number("1"): true} {
		actual, err := codec.EnsureBool(raw)
		assert.NoError(t, err)
		assert.Equal(t, expected, actual)
	}

	b, err := codec.ToBool("maybe")
	assert.NoError(t, err)
	assert.False(t, b)
}

func TestEnum(t *testing.T) {
	type flag int
	conv := codec.Enum(map[string]flag{"1": 1, "2": 2, "BLOCK_ID_FLAG_COMMIT": 2})

	for raw, expected := range map[any]flag{json.Number("2"): 2, "BLOCK_ID_FLAG_COMMIT": 2, "1": 1, "99": 0, nil: 0} {
		actual, err := conv(raw)
		assert.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}

func TestArray(t *testing.T) {
	t.Run("WHEN the value is not an array THEN an empty slice is returned", func(t *testing.T) {
		for _, raw := range []any{nil, "abc", map[string]any{}} {
			actual, err := codec.Array(codec.EnsureInt64)(raw)
			assert.NoError(t, err)
			assert.NotNil(t, actual)
			assert.Empty(t, actual)
		}
	})

	t.Run("WHEN an element is invalid THEN the error names its index", func(t *testing.T) {
		_, err := codec.Array(codec.EnsureInt64)([]any{"1", "x"})

		var fieldErr *codec.InvalidFieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "[1]", fieldErr.Field)
	})
}

func TestCase(t *testing.T) {
	for camel, snake := range map[string]string{
		"height":           "height",
		"lastBlockAppHash": "last_block_app_hash",
		"blockID":          "block_id",
		"perPage":          "per_page",
		"HTTPServer":       "http_server",
	} {
		assert.Equal(t, snake, codec.SnakeCase(camel))
	}

	assert.Equal(t, "perPage", codec.CamelCase("per_page"))
	assert.Equal(t, "lastBlockAppHash", codec.CamelCase("last_block_app_hash"))
}
