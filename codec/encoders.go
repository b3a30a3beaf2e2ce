package codec

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// EncodeInt64 renders integers as decimal strings, which is how the RPC server expects 64-bit values
func EncodeInt64(v int64) (any, bool, error) {
	return strconv.FormatInt(v, 10), true, nil
}

// EncodeInt renders integers as decimal strings
func EncodeInt(v int) (any, bool, error) {
	return strconv.Itoa(v), true, nil
}

// EncodeBigInt renders arbitrary-precision integers as decimal strings, nil values are omitted
func EncodeBigInt(v sdkmath.Int) (any, bool, error) {
	if v.IsNil() {
		return nil, false, nil
	}
	return v.String(), true, nil
}

// EncodeString omits empty strings
func EncodeString(v string) (any, bool, error) {
	return v, v != "", nil
}

// EncodeBool always sends the flag
func EncodeBool(v bool) (any, bool, error) {
	return v, true, nil
}

// EncodeHex renders bytes as upper case hex, empty values are omitted
func EncodeHex(v []byte) (any, bool, error) {
	if len(v) == 0 {
		return nil, false, nil
	}
	return strings.ToUpper(hex.EncodeToString(v)), true, nil
}

// EncodeBase64 renders bytes as padded standard base64, empty values are omitted
func EncodeBase64(v []byte) (any, bool, error) {
	if len(v) == 0 {
		return nil, false, nil
	}
	return base64.StdEncoding.EncodeToString(v), true, nil
}

// EncodeOptional omits nil pointers and encodes everything else with enc
func EncodeOptional[V any](enc Encoder[V]) Encoder[*V] {
	return func(v *V) (any, bool, error) {
		if v == nil {
			return nil, false, nil
		}
		return enc(*v)
	}
}

// HexToBase64 converts 0x-prefixed hex strings to base64. Any other value is returned unchanged.
func HexToBase64(s string) (string, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return s, nil
	}

	bz, err := hex.DecodeString(s[2:])
	if err != nil {
		return "", &EncodingError{Value: s, Reason: "malformed hex string"}
	}
	return base64.StdEncoding.EncodeToString(bz), nil
}

// EncodeHash sends transaction and block hashes the way the RPC server decodes them, i.e. as base64
func EncodeHash(v string) (any, bool, error) {
	if v == "" {
		return nil, false, nil
	}
	s, err := HexToBase64(v)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}
