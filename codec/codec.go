package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field describes how one member of T maps to a key of a wire object
type Field[T any] struct {
	name     string
	source   string
	required bool
	// defaults is set if the converter maps an absent value to a default instead of rejecting it
	defaults bool
	decode   func(t *T, raw any) error
	encode   func(t *T) (any, bool, error)
}

// Name returns the domain name of the field
func (f Field[T]) Name() string { return f.name }

// Source returns the wire key of the field
func (f Field[T]) Source() string { return f.source }

// From overrides the wire key, which otherwise is the snake_case form of the field name
func (f Field[T]) From(source string) Field[T] {
	f.source = source
	return f
}

// Required declares a field that must be present on the wire
func Required[T, V any](name string, conv Converter[V], at func(*T) *V) Field[T] {
	return newField(name, true, conv, nil, at)
}

// Optional declares a field that may be absent. An absent value becomes conv(nil) if conv accepts nil,
// otherwise the field keeps its zero value.
func Optional[T, V any](name string, conv Converter[V], at func(*T) *V) Field[T] {
	return newField(name, false, conv, nil, at)
}

// Param declares an optional field that is decoded with conv and encoded with enc
func Param[T, V any](name string, conv Converter[V], enc Encoder[V], at func(*T) *V) Field[T] {
	return newField(name, false, conv, enc, at)
}

// RequiredParam declares a field that is decoded with conv and must be encodable with enc
func RequiredParam[T, V any](name string, conv Converter[V], enc Encoder[V], at func(*T) *V) Field[T] {
	return newField(name, true, conv, enc, at)
}

func newField[T, V any](name string, required bool, conv Converter[V], enc Encoder[V], at func(*T) *V) Field[T] {
	f := Field[T]{
		name:     name,
		source:   SnakeCase(name),
		required: required,
		defaults: acceptsNil(conv),
		decode: func(t *T, raw any) error {
			v, err := conv(raw)
			if err != nil {
				return err
			}
			*at(t) = v
			return nil
		},
	}

	if enc != nil {
		f.encode = func(t *T) (any, bool, error) { return enc(*at(t)) }
	}

	return f
}

func acceptsNil[V any](conv Converter[V]) bool {
	_, err := conv(nil)
	return err == nil
}

// Codec converts between wire objects and T according to an ordered list of fields
type Codec[T any] struct {
	name   string
	fields []Field[T]
}

// New returns a codec for T
func New[T any](name string, fields ...Field[T]) Codec[T] {
	return Codec[T]{name: name, fields: fields}
}

// Name returns the name of the decoded type
func (c Codec[T]) Name() string { return c.name }

// Fields returns the field declarations in order
func (c Codec[T]) Fields() []Field[T] { return c.fields }

// Create decodes a loosely typed wire object into T.
// A missing or null required field, or a converter failure on a present value, returns an *InvalidFieldError.
func (c Codec[T]) Create(raw any) (T, error) {
	var out T

	obj, err := c.asObject(raw)
	if err != nil {
		return out, err
	}

	for _, f := range c.fields {
		value, ok := obj[f.source]
		if !ok || value == nil {
			if f.required {
				return out, &InvalidFieldError{Field: f.source, Reason: fmt.Sprintf("required field of %s is missing", c.name)}
			}
			if f.defaults {
				if err := f.decode(&out, nil); err != nil {
					return out, withPath(err, f.source)
				}
			}
			continue
		}

		if err := f.decode(&out, value); err != nil {
			return out, withPath(err, f.source)
		}
	}

	return out, nil
}

// Decode parses JSON bytes and decodes them into T
func (c Codec[T]) Decode(bz []byte) (T, error) {
	raw, err := Unmarshal(bz)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Create(raw)
}

// Encode produces the wire object for v. Only fields declared with an encoder are emitted.
func (c Codec[T]) Encode(v T) (map[string]any, error) {
	out := make(map[string]any, len(c.fields))
	for _, f := range c.fields {
		if f.encode == nil {
			continue
		}

		wire, ok, err := f.encode(&v)
		if err != nil {
			return nil, encodingPath(err, f.source)
		}
		if !ok {
			if f.required {
				return nil, &EncodingError{Field: f.source, Reason: fmt.Sprintf("required parameter of %s is missing", c.name)}
			}
			continue
		}
		out[f.source] = wire
	}
	return out, nil
}

func (c Codec[T]) asObject(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	default:
		return nil, &InvalidFieldError{Raw: raw, Reason: fmt.Sprintf("%s must be an object, got %T", c.name, raw)}
	}
}

func encodingPath(err error, key string) error {
	switch e := err.(type) {
	case *EncodingError:
		return &EncodingError{Field: joinPath(key, e.Field), Value: e.Value, Reason: e.Reason}
	case *InvalidFieldError:
		return &EncodingError{Field: joinPath(key, e.Field), Value: e.Raw, Reason: e.Reason}
	default:
		return &EncodingError{Field: key, Reason: err.Error()}
	}
}

// Unmarshal decodes JSON into generic values, keeping numbers as json.Number so 64-bit integers stay exact
func Unmarshal(bz []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &InvalidFieldError{Raw: string(bz), Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return raw, nil
}
