// Package errors provides error handling for qgenenc.
//
// It re-exports github.com/cockroachdb/errors so every package wraps and
// inspects errors the same way, and defines the sentinel errors of the
// circuit codec. Callers match them with Is:
//
//	if errors.Is(err, errors.ErrDecodeFormat) {
//	    // malformed token
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors of the codec.
var (
	// ErrUnsupportedInput is returned when encode/decode dispatch receives
	// neither a circuit nor a string.
	ErrUnsupportedInput = New("unsupported input type")

	// ErrDecodeFormat marks a malformed token: wrong field count, or a
	// Pauli-string parse that does not yield exactly one term.
	ErrDecodeFormat = New("malformed circuit string")

	// ErrInvalidGate marks a gate whose qubits or parameters are inconsistent.
	ErrInvalidGate = New("invalid gate")

	// ErrInvalidSymbols marks a separator configuration the grammar cannot carry.
	ErrInvalidSymbols = New("invalid separator configuration")

	// ErrUnsupportedFormat is returned by exporters for an unknown target format
	// or a circuit the format cannot express.
	ErrUnsupportedFormat = New("unsupported export format")
)

// IsDecodeFormatError checks if an error is or wraps ErrDecodeFormat
func IsDecodeFormatError(err error) bool {
	return err != nil && Is(err, ErrDecodeFormat)
}

// IsUnsupportedInputError checks if an error is or wraps ErrUnsupportedInput
func IsUnsupportedInputError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedInput)
}
