package secid

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrMalformedValue indicates a value cannot be serialized by a namespace.
	ErrMalformedValue = errors.New("malformed value")

	// ErrInvalidID indicates a serialized id failed to decode or verify.
	ErrInvalidID = errors.New("invalid id")

	// ErrRegistration indicates a type name maps to an already registered type id.
	ErrRegistration = errors.New("type registration failed")

	// ErrInvalidSecret indicates an empty factory secret.
	ErrInvalidSecret = errors.New("invalid secret")

	// ErrInvalidStyle indicates an unknown rendering style.
	ErrInvalidStyle = errors.New("invalid style")

	// ErrInvalidOption indicates an out of range factory option.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnknownType indicates a type name that is not registered on the factory.
	ErrUnknownType = errors.New("unknown type")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrEncode indicates serializing a tagged field failed.
	ErrEncode = errors.New("encode failed")

	// ErrDecode indicates parsing a tagged field failed.
	ErrDecode = errors.New("decode failed")
)

// Reason classifies a malformed value.
type Reason string

// Malformed value reasons.
const (
	ReasonKind     Reason = "kind"
	ReasonNegative Reason = "negative"
	ReasonFraction Reason = "fraction"
	ReasonTooLarge Reason = "too_large"
	ReasonTooLong  Reason = "too_long"
	ReasonEncoding Reason = "encoding"
)

// MalformedValueError is returned when a value does not fit its namespace.
type MalformedValueError struct {
	Type   string // Namespace type name
	Reason Reason // Why the value was rejected
	Value  any    // Offending value; omitted from the message for strings
}

func (e *MalformedValueError) Error() string {
	switch e.Reason {
	case ReasonKind:
		return fmt.Sprintf("value and value kind mismatch for %q, got %T", e.Type, e.Value)
	case ReasonNegative:
		return "ids can't be negative"
	case ReasonFraction:
		return "ids can't be float numbers"
	case ReasonTooLarge:
		return fmt.Sprintf("ids can't be bigger than %d, got %v", MaxNumber, e.Value)
	case ReasonTooLong:
		return fmt.Sprintf("string value length can't be bigger than %d, got %v", MaxStringBytes, e.Value)
	case ReasonEncoding:
		return "string value is not valid UTF-8"
	default:
		return ErrMalformedValue.Error()
	}
}

func (e *MalformedValueError) Unwrap() error {
	return ErrMalformedValue
}

// InvalidIDError is returned for every decode failure.
// It deliberately carries nothing but the rejected input.
type InvalidIDError struct {
	Input string
}

func (e *InvalidIDError) Error() string {
	return "invalid id: " + e.Input
}

func (e *InvalidIDError) Unwrap() error {
	return ErrInvalidID
}

// RegistrationError is returned when a type name hashes to a taken type id.
type RegistrationError struct {
	TypeName string // Name passed to CreateID or CreateStringID
	TypeID   uint16 // Colliding type id
	Existing string // Name already holding TypeID
}

func (e *RegistrationError) Error() string {
	if e.Existing != "" && e.Existing != e.TypeName {
		return fmt.Sprintf("type collision for %q with %q, please use a different name", e.TypeName, e.Existing)
	}
	return fmt.Sprintf("type collision for %q, please use a different name", e.TypeName)
}

func (e *RegistrationError) Unwrap() error {
	return ErrRegistration
}

// ConfigError represents a factory or processor configuration error.
// It wraps a sentinel error with additional context about the field and value.
type ConfigError struct {
	Err   error  // Underlying sentinel error (ErrUnknownType, etc.)
	Field string // Field name that triggered the error
	Value string // Offending configuration value
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("%s %q (field %s)", e.Err.Error(), e.Value, e.Field)
	}
	if e.Value != "" {
		return fmt.Sprintf("%s %q", e.Err.Error(), e.Value)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents an error during field transformation.
// It wraps a sentinel error with context about which field and operation failed.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrEncode, ErrDecode)
	Field     string // Field name that failed
	Operation string // Operation that failed (encode, decode)
	Cause     error  // Original error from the namespace
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s field %s: %v", e.Operation, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s field %s", e.Operation, e.Field)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newMalformed(typeName string, reason Reason, value any) error {
	return &MalformedValueError{Type: typeName, Reason: reason, Value: value}
}

func newInvalidID(input string) error {
	return &InvalidIDError{Input: input}
}

// newConfigError creates a ConfigError.
func newConfigError(sentinel error, field, value string) error {
	return &ConfigError{
		Err:   sentinel,
		Field: field,
		Value: value,
	}
}

// newTransformError creates a TransformError for field transformation failures.
func newTransformError(sentinel error, operation, field string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Field:     field,
		Operation: operation,
		Cause:     cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
