package codec

import (
	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/errors"
)

// Input is what Apply accepts: a CircuitInput to encode or a StringInput to
// decode.
type Input interface {
	input()
}

// CircuitInput asks Apply to encode a circuit.
type CircuitInput struct {
	Circuit circuit.Sequence
}

// StringInput asks Apply to decode a circuit string.
type StringInput string

func (CircuitInput) input() {}
func (StringInput) input()  {}

// Result holds the output of Apply: String after encoding, Circuit after
// decoding.
type Result struct {
	String  string
	Circuit *circuit.Circuit
}

// Encoded reports whether the result is a string.
func (r Result) Encoded() bool { return r.Circuit == nil }

// Apply encodes or decodes depending on the kind of input.
func (c *Codec) Apply(in Input, vars angle.Variables) (Result, error) {
	switch v := in.(type) {
	case CircuitInput:
		if v.Circuit == nil {
			return Result{}, errors.Wrap(errors.ErrUnsupportedInput, "circuit input without circuit")
		}
		s, err := c.Encode(v.Circuit, vars)
		return Result{String: s}, err
	case *CircuitInput:
		if v == nil {
			break
		}
		return c.Apply(*v, vars)
	case StringInput:
		circ, err := c.Decode(string(v), vars)
		return Result{Circuit: circ}, err
	}
	return Result{}, errors.Wrapf(errors.ErrUnsupportedInput, "%T", in)
}
