package adapter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	sdkmath "cosmossdk.io/math"

	"github.com/axelarnetwork/tm-rpc/codec"
)

func decoder[T any](decode func(raw any) (T, error)) decodeFunc {
	return func(raw any) (any, error) {
		v, err := decode(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// encoder accepts P, *P or a generic map that is first decoded into P with the parameter codec
func encoder[P any](c codec.Codec[P], encode func(P) (any, error)) encodeFunc {
	return func(params any) (any, error) {
		switch p := params.(type) {
		case P:
			return encode(p)
		case *P:
			if p == nil {
				var zero P
				return encode(zero)
			}
			return encode(*p)
		case map[string]any:
			typed, err := c.Create(normalizeKeys(c, p))
			if err != nil {
				return nil, asEncodingError(err)
			}
			return encode(typed)
		default:
			return nil, &codec.EncodingError{Value: params, Reason: fmt.Sprintf("expected %s parameters, got %T", c.Name(), params)}
		}
	}
}

// normalizeKeys maps camelCase and snake_case keys onto the wire keys of the codec
func normalizeKeys[P any](c codec.Codec[P], params map[string]any) map[string]any {
	bySnake := make(map[string]any, len(params))
	for key, value := range params {
		bySnake[codec.SnakeCase(key)] = value
	}

	out := make(map[string]any, len(params))
	for _, f := range c.Fields() {
		if value, ok := bySnake[codec.SnakeCase(f.Source())]; ok {
			out[f.Source()] = value
		}
	}
	return out
}

func asEncodingError(err error) error {
	if fieldErr, ok := err.(*codec.InvalidFieldError); ok {
		return &codec.EncodingError{Field: fieldErr.Field, Value: fieldErr.Raw, Reason: fieldErr.Reason}
	}
	return err
}

// encodeGeneric converts parameters of methods without a version specific shape:
// keys become snake_case, 0x-prefixed hashes become base64, tx bytes become base64 and all other bytes hex.
func encodeGeneric(params map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(params))
	for key, value := range params {
		wireKey := codec.SnakeCase(key)

		wire, ok, err := genericValue(wireKey, value)
		if err != nil {
			return nil, err
		}
		if ok {
			out[wireKey] = wire
		}
	}
	return out, nil
}

func genericValue(key string, value any) (any, bool, error) {
	switch v := value.(type) {
	case nil:
		return nil, false, nil
	case string:
		if key != "hash" {
			return v, true, nil
		}
		s, err := codec.HexToBase64(v)
		if err != nil {
			return nil, false, &codec.EncodingError{Field: key, Value: v, Reason: "malformed hex string"}
		}
		return s, true, nil
	case []byte:
		if key == "tx" {
			return codec.EncodeBase64(v)
		}
		return codec.EncodeHex(v)
	case bool:
		return v, true, nil
	case json.Number:
		return v.String(), true, nil
	case int:
		return codec.EncodeInt(v)
	case int32:
		return codec.EncodeInt64(int64(v))
	case int64:
		return codec.EncodeInt64(v)
	case uint32:
		return codec.EncodeInt64(int64(v))
	case uint64:
		return strconv.FormatUint(v, 10), true, nil
	case *int64:
		return codec.EncodeOptional(codec.EncodeInt64)(v)
	case *int:
		return codec.EncodeOptional(codec.EncodeInt)(v)
	case sdkmath.Int:
		return codec.EncodeBigInt(v)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, false, &codec.EncodingError{Field: key, Value: v, Reason: "not an integer"}
		}
		return strconv.FormatFloat(v, 'f', 0, 64), true, nil
	default:
		return nil, false, &codec.EncodingError{Field: key, Value: v, Reason: fmt.Sprintf("unsupported parameter type %T", v)}
	}
}

// unwrap returns the object nested under key, or raw itself if there is none
func unwrap(raw any, key string) any {
	if obj, ok := raw.(map[string]any); ok {
		if inner, ok := obj[key].(map[string]any); ok {
			return inner
		}
	}
	return raw
}

// eventValue extracts the typed event value and the composite event keys from a pushed subscription result
func eventValue(raw any) (value any, events any) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return raw, nil
	}

	value = obj
	if data, ok := obj["data"].(map[string]any); ok {
		value = data
		if v, ok := data["value"].(map[string]any); ok {
			value = v
		}
	}
	return value, obj["events"]
}
