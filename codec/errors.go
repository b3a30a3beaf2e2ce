package codec

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

const codespace = "codec"

var (
	// ErrInvalidField is returned when a wire value cannot be converted into its domain type
	ErrInvalidField = errorsmod.Register(codespace, 1, "invalid field")
	// ErrEncoding is returned when a domain value cannot be represented on the wire
	ErrEncoding = errorsmod.Register(codespace, 2, "encoding failed")
)

// InvalidFieldError describes a field whose raw value could not be decoded
type InvalidFieldError struct {
	// Field is the dotted path of wire keys leading to the offending value
	Field  string
	Raw    any
	Reason string
}

func (e *InvalidFieldError) Error() string {
	field := e.Field
	if field == "" {
		field = "<root>"
	}
	return fmt.Sprintf("%s: field %s (raw value %v): %s", ErrInvalidField.Error(), field, e.Raw, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidField) hold
func (e *InvalidFieldError) Unwrap() error {
	return ErrInvalidField
}

// EncodingError describes a parameter value outside the domain its wire field accepts
type EncodingError struct {
	Field  string
	Value  any
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: field %s (value %v): %s", ErrEncoding.Error(), e.Field, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrEncoding) hold
func (e *EncodingError) Unwrap() error {
	return ErrEncoding
}

func invalid(raw any, format string, args ...any) error {
	return &InvalidFieldError{Raw: raw, Reason: fmt.Sprintf(format, args...)}
}

// withPath prefixes the field path of decoding errors raised by nested converters
func withPath(err error, key string) error {
	switch e := err.(type) {
	case *InvalidFieldError:
		return &InvalidFieldError{Field: joinPath(key, e.Field), Raw: e.Raw, Reason: e.Reason}
	case *EncodingError:
		return &EncodingError{Field: joinPath(key, e.Field), Value: e.Value, Reason: e.Reason}
	default:
		return &InvalidFieldError{Field: key, Reason: err.Error()}
	}
}

func joinPath(parent, child string) string {
	switch {
	case child == "":
		return parent
	case child[0] == '[':
		return parent + child
	default:
		return parent + "." + child
	}
}
