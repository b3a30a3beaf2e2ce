package codec

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
)

// Converter coerces a loosely typed decoded JSON value into a domain value.
// Lenient converters (To*, Maybe*) never fail and fall back to an empty value,
// strict converters (Ensure*) return an *InvalidFieldError instead.
type Converter[V any] func(raw any) (V, error)

// Encoder maps a domain value to its wire representation. ok is false if the value should be omitted.
type Encoder[V any] func(v V) (wire any, ok bool, err error)

// EnsureInt64 converts decimal strings and JSON numbers to an int64
func EnsureInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, invalid(raw, "missing integer")
	case json.Number:
		return parseInt64(v.String())
	case string:
		return parseInt64(v)
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, invalid(raw, "not an integer")
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, invalid(raw, "integer overflows int64")
		}
		return int64(v), nil
	default:
		return 0, invalid(raw, "expected an integer, got %T", raw)
	}
}

func parseInt64(s string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, invalid(s, "not a decimal integer")
	}
	return i, nil
}

// ToInt64 is the lenient version of EnsureInt64, returning 0 for absent or malformed values
func ToInt64(raw any) (int64, error) {
	i, err := EnsureInt64(raw)
	if err != nil {
		return 0, nil
	}
	return i, nil
}

// MaybeInt64 returns nil for absent or malformed values
func MaybeInt64(raw any) (*int64, error) {
	i, err := EnsureInt64(raw)
	if err != nil {
		return nil, nil
	}
	return &i, nil
}

// EnsureInt converts to a platform int
func EnsureInt(raw any) (int, error) {
	i, err := EnsureInt64(raw)
	if err != nil {
		return 0, err
	}
	if i > math.MaxInt || i < math.MinInt {
		return 0, invalid(raw, "integer overflows int")
	}
	return int(i), nil
}

// ToInt is the lenient version of EnsureInt
func ToInt(raw any) (int, error) {
	i, err := EnsureInt(raw)
	if err != nil {
		return 0, nil
	}
	return i, nil
}

// EnsureBigInt converts decimal strings and JSON numbers of any size to an arbitrary-precision integer
func EnsureBigInt(raw any) (sdkmath.Int, error) {
	var s string
	switch v := raw.(type) {
	case nil:
		return sdkmath.Int{}, invalid(raw, "missing integer")
	case sdkmath.Int:
		return v, nil
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
	default:
		i, err := EnsureInt64(raw)
		if err != nil {
			return sdkmath.Int{}, err
		}
		return sdkmath.NewInt(i), nil
	}

	i, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, invalid(raw, "not a decimal integer")
	}
	return i, nil
}

// ToBigInt is the lenient version of EnsureBigInt, returning zero for absent or malformed values
func ToBigInt(raw any) (sdkmath.Int, error) {
	i, err := EnsureBigInt(raw)
	if err != nil {
		return sdkmath.ZeroInt(), nil
	}
	return i, nil
}

// EnsureString accepts strings and JSON numbers
func EnsureString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", invalid(raw, "expected a string, got %T", raw)
	}
}

// EnsureHash accepts a hash as base64 or 0x-prefixed hex and returns it as base64, the form EncodeHash sends
func EnsureHash(raw any) (string, error) {
	s, err := EnsureString(raw)
	if err != nil {
		return "", err
	}
	hash, err := HexToBase64(s)
	if err != nil {
		return "", invalid(raw, "malformed hex hash")
	}
	return hash, nil
}

// ToString renders any scalar as a string, absent values become ""
func ToString(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case []byte:
		return string(v), nil
	default:
		return "", nil
	}
}

// EnsureBool accepts booleans and their string representations
func EnsureBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, invalid(raw, "not a boolean")
		}
		return b, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return false, invalid(raw, "not a boolean")
		}
		return f != 0, nil
	default:
		return false, invalid(raw, "expected a boolean, got %T", raw)
	}
}

// ToBool is the lenient version of EnsureBool
func ToBool(raw any) (bool, error) {
	b, err := EnsureBool(raw)
	if err != nil {
		return false, nil
	}
	return b, nil
}

// EnsureBytesFromHex decodes hex strings with or without a 0x prefix
func EnsureBytesFromHex(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case []byte:
		return v, nil
	case string:
		s := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(v), "0x"), "0X")
		bz, err := hex.DecodeString(s)
		if err != nil {
			return nil, invalid(raw, "not a hex string")
		}
		return bz, nil
	default:
		return nil, invalid(raw, "expected a hex string, got %T", raw)
	}
}

// ToBytesFromHex is the lenient version of EnsureBytesFromHex, returning empty bytes on failure
func ToBytesFromHex(raw any) ([]byte, error) {
	bz, err := EnsureBytesFromHex(raw)
	if err != nil {
		return []byte{}, nil
	}
	return bz, nil
}

// EnsureBytesFromBase64 decodes standard or URL-safe base64, tolerating missing padding
func EnsureBytesFromBase64(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case []byte:
		return v, nil
	case string:
		bz, err := decodeBase64(v)
		if err != nil {
			return nil, invalid(raw, "not a base64 string")
		}
		return bz, nil
	default:
		return nil, invalid(raw, "expected a base64 string, got %T", raw)
	}
}

// ToBytesFromBase64 is the lenient version of EnsureBytesFromBase64, returning empty bytes on failure
func ToBytesFromBase64(raw any) ([]byte, error) {
	bz, err := EnsureBytesFromBase64(raw)
	if err != nil {
		return []byte{}, nil
	}
	return bz, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("=", 4-rem)
	}

	if strings.ContainsAny(s, "-_") {
		return base64.URLEncoding.DecodeString(s)
	}
	return base64.StdEncoding.DecodeString(s)
}

// Time parses RFC 3339 timestamps with optional sub-second precision
func Time(raw any) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, invalid(raw, "expected a timestamp, got %T", raw)
	}

	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid(raw, "not an RFC 3339 timestamp")
	}
	return t, nil
}

// MaybeTime is the lenient version of Time, returning the zero time on failure
func MaybeTime(raw any) (time.Time, error) {
	t, err := Time(raw)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

// Enum maps wire values to the entries of a closed table. Unknown values map to the zero value.
func Enum[V any](table map[string]V) Converter[V] {
	return func(raw any) (V, error) {
		key, _ := ToString(raw)
		return table[key], nil
	}
}

// Array converts every element of a JSON array. Absent or non-array values become an empty slice.
func Array[V any](conv Converter[V]) Converter[[]V] {
	return func(raw any) ([]V, error) {
		items, ok := raw.([]any)
		if !ok {
			return []V{}, nil
		}

		out := make([]V, 0, len(items))
		for i, item := range items {
			v, err := conv(item)
			if err != nil {
				return nil, withPath(err, "["+strconv.Itoa(i)+"]")
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// Ptr turns null into nil and delegates everything else to conv
func Ptr[V any](conv Converter[V]) Converter[*V] {
	return func(raw any) (*V, error) {
		if raw == nil {
			return nil, nil
		}
		v, err := conv(raw)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}

// Nested decodes an embedded object with the given codec
func Nested[T any](c Codec[T]) Converter[T] {
	return c.Create
}

// RawJSON keeps the value as undecoded JSON, e.g. for application specific state
func RawJSON(raw any) (json.RawMessage, error) {
	if raw == nil {
		return nil, nil
	}
	bz, err := json.Marshal(raw)
	if err != nil {
		return nil, invalid(raw, "cannot re-encode value: %v", err)
	}
	return bz, nil
}

// Any passes the raw value through unchanged
func Any(raw any) (any, error) {
	return raw, nil
}
