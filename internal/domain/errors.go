package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Sentinels matched by ValidationError via errors.Is.
var (
	ErrMissingValue       = errors.New("missing value")
	ErrNegativeValue      = errors.New("negative value")
	ErrImplausibleValue   = errors.New("implausible value")
	ErrInvalidBatchFactor = errors.New("invalid batch factor")
	ErrOutOfRange         = errors.New("value out of range")
)

// ErrorKind classifies a validation failure.
type ErrorKind int

const (
	// MissingValue is a blank, non-numeric or non-finite field.
	MissingValue ErrorKind = iota
	// NegativeValue is a field below zero.
	NegativeValue
	// ImplausibleValue is valid input that is probably a typo. Soft.
	ImplausibleValue
	// InvalidBatchFactor is a non-positive batch count or unit weight.
	InvalidBatchFactor
	// OutOfRange is a value past a hard ceiling.
	OutOfRange
)

// String returns a snake_case kind name.
func (k ErrorKind) String() string {
	switch k {
	case MissingValue:
		return "missing_value"
	case NegativeValue:
		return "negative_value"
	case ImplausibleValue:
		return "implausible_value"
	case InvalidBatchFactor:
		return "invalid_batch_factor"
	case OutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingValue:
		return ErrMissingValue
	case NegativeValue:
		return ErrNegativeValue
	case ImplausibleValue:
		return ErrImplausibleValue
	case InvalidBatchFactor:
		return ErrInvalidBatchFactor
	case OutOfRange:
		return ErrOutOfRange
	default:
		return nil
	}
}

// ValidationError names the offending field and why it was rejected.
type ValidationError struct {
	Field string
	Kind  ErrorKind
	Value string // raw or formatted input, may be empty
	Msg   string
}

// NewValidationError builds a ValidationError.
func NewValidationError(field string, kind ErrorKind, value, msg string) *ValidationError {
	return &ValidationError{Field: field, Kind: kind, Value: value, Msg: msg}
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Kind)
}

// Is lets errors.Is match the per-kind sentinels.
func (e *ValidationError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Soft reports whether the condition is a warning the caller may ignore.
func (e *ValidationError) Soft() bool {
	return e.Kind == ImplausibleValue
}

// AsValidation unwraps err into a ValidationError, if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
