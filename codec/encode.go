package codec

import (
	"strings"

	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/errors"
)

// Encode renders seq as a circuit string. Angles that vars resolves are
// folded into the coefficients; the others are kept by name, a single
// referenced variable as its name and several as "[a,b]".
func (c *Codec) Encode(seq circuit.Sequence, vars angle.Variables) (string, error) {
	tokens, err := c.Tokens(seq, vars)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(c.FormatToken(t))
	}
	return sb.String(), nil
}

// Tokens compiles seq and returns one token per non-trivial generator term,
// in gate order and generator order within a gate. An invalid gate is an
// ErrInvalidGate error.
func (c *Codec) Tokens(seq circuit.Sequence, vars angle.Variables) ([]Token, error) {
	if seq == nil {
		return nil, errors.ErrUnsupportedInput
	}
	compiled := Compile(seq)
	if err := compiled.Validate(); err != nil {
		return nil, err
	}
	var tokens []Token
	for i, op := range compiled.Operations() {
		theta, prefix, numeric := resolveAngle(op.Angle(), vars)
		if !numeric {
			if err := c.checkPrefix(prefix); err != nil {
				return nil, errors.Wrapf(err, "gate %d", i)
			}
		}
		for _, ps := range op.Generator(true) {
			if ps.IsIdentity() {
				// global phase
				continue
			}
			tokens = append(tokens, EncodePauliString(ps, theta, prefix, numeric))
		}
	}
	return tokens, nil
}

// resolveAngle returns the numeric angle when vars resolves a, and the
// symbolic prefix otherwise.
func resolveAngle(a angle.Angle, vars angle.Variables) (theta float64, prefix string, numeric bool) {
	v, err := a.Resolve(vars)
	if err == nil {
		return v, "", true
	}
	names := a.Names()
	if len(names) == 1 {
		return 0, names[0], false
	}
	return 0, angle.FormatNames(names), false
}

func (c *Codec) checkPrefix(prefix string) error {
	if strings.Contains(prefix, c.symbols.GateSeparator) || strings.Contains(prefix, c.symbols.AngleSeparator) {
		return errors.Wrapf(errors.ErrInvalidSymbols, "angle %q contains a separator", prefix)
	}
	return nil
}
